package solana

// SignatureInfo from getSignaturesForAddress.
type SignatureInfo struct {
	Signature string
	Slot      int64
	BlockTime *int64
	Err       interface{}
}

// SignaturesOpts defines optional pagination parameters for getSignaturesForAddress.
type SignaturesOpts struct {
	Before string // Start searching backwards from this signature
	Until  string // Search until this signature
	Limit  int    // Maximum number of signatures to return
}

// TokenAmount mirrors the RPC uiTokenAmount shape.
type TokenAmount struct {
	Amount   string  `json:"amount"`
	Decimals int     `json:"decimals"`
	UIAmount float64 `json:"uiAmount"`
}

// TransferInfo is the parsed info of a transfer-type instruction.
// Lamports is set for native transfers, Mint/TokenAmount for SPL transfers.
type TransferInfo struct {
	Source      string
	Destination string
	Authority   string
	Lamports    uint64
	Mint        string
	TokenAmount *TokenAmount
}

// ParsedInstruction is one instruction of a jsonParsed transaction.
// Transfer is non-nil only when the instruction parsed as a transfer type.
type ParsedInstruction struct {
	ProgramID string
	Type      string
	Transfer  *TransferInfo
}

// ParsedTransaction is a flattened jsonParsed getTransaction result.
type ParsedTransaction struct {
	Signature    string
	Slot         int64
	BlockTime    *int64
	AccountKeys  []string
	Instructions []ParsedInstruction
}

// TokenAccount is one entry of getTokenAccountsByOwner.
type TokenAccount struct {
	Mint     string
	Amount   string
	Decimals int
	UIAmount float64
}
