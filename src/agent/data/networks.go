package data

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Network describes one supported chain: token scaling for display,
// the Subscan base URL for the indexed API, and the RPC endpoint used
// for direct storage queries.
type Network struct {
	ID         uint8  `gorm:"primaryKey"`
	Name       string `gorm:"size:32;uniqueIndex;not null"`
	Symbol     string `gorm:"size:8;not null"`
	Decimals   uint8  `gorm:"not null"`
	SS58Prefix uint16 `gorm:"not null"`
	SubscanURL string `gorm:"size:128;not null"`
	RPCURL     string `gorm:"size:128;not null"`
}

// Networks is the immutable network table loaded once at startup.
type Networks struct {
	byName map[string]Network
}

// DefaultNetworkName is used when a request omits the network field.
const DefaultNetworkName = "polkadot"

func defaultNetworks() []Network {
	return []Network{
		{ID: 1, Name: "polkadot", Symbol: "DOT", Decimals: 10, SS58Prefix: 0,
			SubscanURL: "https://polkadot.api.subscan.io",
			RPCURL:     "wss://polkadot-asset-hub-rpc.polkadot.io"},
		{ID: 2, Name: "kusama", Symbol: "KSM", Decimals: 12, SS58Prefix: 2,
			SubscanURL: "https://kusama.api.subscan.io",
			RPCURL:     "wss://kusama-asset-hub-rpc.polkadot.io"},
		{ID: 3, Name: "westend", Symbol: "WND", Decimals: 12, SS58Prefix: 42,
			SubscanURL: "https://westend.api.subscan.io",
			RPCURL:     "wss://westend-asset-hub-rpc.polkadot.io"},
	}
}

// DefaultNetworks returns the built-in network table, used when no
// database is configured.
func DefaultNetworks() *Networks {
	return newNetworks(defaultNetworks())
}

// LoadNetworks seeds missing defaults and returns the full network table
// from the database.
func LoadNetworks(db *gorm.DB) (*Networks, error) {
	for _, n := range defaultNetworks() {
		if err := db.FirstOrCreate(&Network{}, n).Error; err != nil {
			return nil, fmt.Errorf("seed network %s: %w", n.Name, err)
		}
	}

	var rows []Network
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}
	return newNetworks(rows), nil
}

func newNetworks(rows []Network) *Networks {
	byName := make(map[string]Network, len(rows))
	for _, n := range rows {
		byName[strings.ToLower(n.Name)] = n
	}
	return &Networks{byName: byName}
}

// Get returns the network config for a (case-insensitive) name.
func (n *Networks) Get(name string) (Network, bool) {
	net, ok := n.byName[strings.ToLower(strings.TrimSpace(name))]
	return net, ok
}

// Names returns the supported network names, for error messages.
func (n *Networks) Names() []string {
	names := make([]string, 0, len(n.byName))
	for name := range n.byName {
		names = append(names, name)
	}
	return names
}
