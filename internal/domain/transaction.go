package domain

// TransactionRecord is one entry of a wallet's signature history.
// BlockTime is Unix seconds; 0 means the node did not report a timestamp.
// Records arrive newest-first from the RPC layer.
type TransactionRecord struct {
	Signature string `json:"signature"`
	BlockTime int64  `json:"blockTime"`
	Slot      int64  `json:"slot"`
	Failed    bool   `json:"failed"`
}

// Transfer is a parsed system or token transfer instruction.
// Lamport amounts are already converted to SOL; token amounts are UI amounts.
type Transfer struct {
	Source      string  `json:"source,omitempty"`
	Destination string  `json:"destination,omitempty"`
	Authority   string  `json:"authority,omitempty"`
	Amount      float64 `json:"amount"`
	Mint        string  `json:"mint,omitempty"` // empty for native SOL transfers
}

// Instruction is one instruction of a parsed transaction. Program is the
// invoked program ID; Transfer is non-nil only for parsed transfer types.
type Instruction struct {
	Program  string    `json:"program"`
	Type     string    `json:"type,omitempty"`
	Transfer *Transfer `json:"transfer,omitempty"`
}

// ParsedTransaction is the expanded form of a TransactionRecord.
type ParsedTransaction struct {
	Signature    string        `json:"signature"`
	BlockTime    int64         `json:"blockTime"`
	Slot         int64         `json:"slot"`
	AccountKeys  []string      `json:"accountKeys"`
	Instructions []Instruction `json:"instructions"`
}

// Timestamped returns the subset of records carrying a block time,
// preserving order.
func Timestamped(records []TransactionRecord) []TransactionRecord {
	out := make([]TransactionRecord, 0, len(records))
	for _, r := range records {
		if r.BlockTime > 0 {
			out = append(out, r)
		}
	}
	return out
}

// OldestFirst returns a reversed copy of a newest-first record slice.
func OldestFirst(records []TransactionRecord) []TransactionRecord {
	out := make([]TransactionRecord, len(records))
	for i, r := range records {
		out[len(records)-1-i] = r
	}
	return out
}
