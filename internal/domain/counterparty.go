package domain

// CounterpartyType classifies an address seen alongside the analyzed wallet.
type CounterpartyType string

const (
	CounterpartyDEX      CounterpartyType = "dex"
	CounterpartyNFT      CounterpartyType = "nft"
	CounterpartyCEX      CounterpartyType = "cex"
	CounterpartyContract CounterpartyType = "contract"
	CounterpartyWallet   CounterpartyType = "wallet"
	CounterpartyUnknown  CounterpartyType = "unknown"
)

// CounterpartyRecord aggregates interactions with one non-subject address.
type CounterpartyRecord struct {
	Address         string           `json:"address"`
	TxCount         int              `json:"txCount"`
	LastInteraction int64            `json:"lastInteraction"` // Unix seconds
	Type            CounterpartyType `json:"type"`
}
