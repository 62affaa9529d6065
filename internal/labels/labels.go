// Package labels holds the static address and mint classification tables
// used by the analyzers. The tables ship as embedded defaults and can be
// replaced at startup from a JSON file, so updates do not need a rebuild.
package labels

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"solana-exposure/internal/domain"
)

//go:embed registry.json
var defaultRegistry []byte

// registryFile is the on-disk / embedded JSON shape.
type registryFile struct {
	Version         string            `json:"version"`
	Programs        map[string]string `json:"programs"`
	CEXWallets      []string          `json:"cexWallets"`
	PrivacyPrograms []string          `json:"privacyPrograms"`
	AirdropPrograms []string          `json:"airdropPrograms"`
	StakingPrograms []string          `json:"stakingPrograms"`
	Stablecoins     []string          `json:"stablecoins"`
	Bluechips       []string          `json:"bluechips"`
}

// Registry resolves addresses and mints against the classification tables.
// It is immutable after construction and safe for concurrent use.
type Registry struct {
	version  string
	programs map[string]domain.CounterpartyType
	cex      map[string]struct{}
	privacy  map[string]struct{}
	airdrop  map[string]struct{}
	staking  map[string]struct{}
	stable   map[string]struct{}
	bluechip map[string]struct{}
}

// Default returns the registry built from the embedded tables.
func Default() *Registry {
	r, err := parse(defaultRegistry)
	if err != nil {
		// The embedded file is validated by tests; failing here means a
		// broken build, not a runtime condition.
		panic(fmt.Sprintf("labels: embedded registry invalid: %v", err))
	}
	return r
}

// Load reads a registry from a JSON file, replacing the embedded defaults.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry %s: %w", path, err)
	}
	r, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return r, nil
}

func parse(data []byte) (*Registry, error) {
	var f registryFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if f.Version == "" {
		return nil, fmt.Errorf("missing version")
	}

	r := &Registry{
		version:  f.Version,
		programs: make(map[string]domain.CounterpartyType, len(f.Programs)),
		cex:      toSet(f.CEXWallets),
		privacy:  toSet(f.PrivacyPrograms),
		airdrop:  toSet(f.AirdropPrograms),
		staking:  toSet(f.StakingPrograms),
		stable:   toSet(f.Stablecoins),
		bluechip: toSet(f.Bluechips),
	}
	for addr, typ := range f.Programs {
		ct := domain.CounterpartyType(typ)
		switch ct {
		case domain.CounterpartyDEX, domain.CounterpartyNFT, domain.CounterpartyCEX,
			domain.CounterpartyContract, domain.CounterpartyWallet:
			r.programs[addr] = ct
		default:
			return nil, fmt.Errorf("program %s: unknown type %q", addr, typ)
		}
	}
	return r, nil
}

func toSet(entries []string) map[string]struct{} {
	set := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		set[e] = struct{}{}
	}
	return set
}

// Version returns the registry version string.
func (r *Registry) Version() string {
	return r.version
}

// ClassifyAccount resolves an address to a counterparty type: known program
// map first, then the CEX hot-wallet set, else a regular wallet.
func (r *Registry) ClassifyAccount(address string) domain.CounterpartyType {
	if t, ok := r.programs[address]; ok {
		return t
	}
	if _, ok := r.cex[address]; ok {
		return domain.CounterpartyCEX
	}
	return domain.CounterpartyWallet
}

// ProgramType returns the known-program classification, if any.
func (r *Registry) ProgramType(address string) (domain.CounterpartyType, bool) {
	t, ok := r.programs[address]
	return t, ok
}

// IsCEX reports whether the address is a known exchange hot wallet.
func (r *Registry) IsCEX(address string) bool {
	_, ok := r.cex[address]
	return ok
}

// IsPrivacyProgram reports whether the address is a known privacy protocol.
func (r *Registry) IsPrivacyProgram(address string) bool {
	_, ok := r.privacy[address]
	return ok
}

// IsAirdrop reports whether the address is a known airdrop/claim program.
func (r *Registry) IsAirdrop(address string) bool {
	_, ok := r.airdrop[address]
	return ok
}

// IsStaking reports whether the address is a known staking program.
func (r *Registry) IsStaking(address string) bool {
	_, ok := r.staking[address]
	return ok
}

// IsStablecoin reports whether the mint is a known stablecoin.
func (r *Registry) IsStablecoin(mint string) bool {
	_, ok := r.stable[mint]
	return ok
}

// IsBluechip reports whether the mint is a known blue-chip token.
func (r *Registry) IsBluechip(mint string) bool {
	_, ok := r.bluechip[mint]
	return ok
}
