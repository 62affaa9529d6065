package analyze

import (
	"testing"

	"solana-exposure/internal/domain"
	"solana-exposure/internal/labels"
)

// Known labeled accounts from the default registry.
const (
	cexWallet      = "H8sMJSCQxfKiFTCfDR3DUMLPwcRbM61LGFJ8N4dK3WjS"
	dexProgram     = "JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4"
	privacyProgram = "2VvQ11q8xrn5tkPNyeraRKLzMjz6tYP4M4UdXY3t8xCN"
	usdcMint       = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	wsolMint       = "So11111111111111111111111111111111111111112"

	subjectWallet = "7vfCXTUXx5WJV5JADk17DUJ4ksgau7utNKj4b963voxs"
)

func testAddr(t *testing.T, raw string) domain.Address {
	t.Helper()
	addr, err := domain.ParseAddress(raw)
	if err != nil {
		t.Fatalf("parse address %q: %v", raw, err)
	}
	return addr
}

func testRegistry(t *testing.T) *labels.Registry {
	t.Helper()
	return labels.Default()
}

func nativeTransfer(source, dest string, amount float64) domain.Instruction {
	return domain.Instruction{
		Program: "11111111111111111111111111111111",
		Type:    "transfer",
		Transfer: &domain.Transfer{
			Source:      source,
			Destination: dest,
			Amount:      amount,
		},
	}
}

func tokenTransfer(mint, source, dest string, amount float64) domain.Instruction {
	return domain.Instruction{
		Program: "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA",
		Type:    "transferChecked",
		Transfer: &domain.Transfer{
			Source:      source,
			Destination: dest,
			Mint:        mint,
			Amount:      amount,
		},
	}
}

func parsedTx(blockTime int64, keys []string, instructions ...domain.Instruction) domain.ParsedTransaction {
	return domain.ParsedTransaction{
		Signature:    "sig",
		Slot:         1,
		BlockTime:    blockTime,
		AccountKeys:  keys,
		Instructions: instructions,
	}
}
