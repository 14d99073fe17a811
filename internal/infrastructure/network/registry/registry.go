package registry

import (
	"sort"
	"strconv"
	"strings"

	"github.com/souvik0908/sei-sense/internal/app/port"
	"github.com/souvik0908/sei-sense/internal/domain/entity"
)

// Predefined network descriptors
var ( //nolint:gochecknoglobals // Global for definitions
	Mainnet = entity.NetworkDescriptor{
		ChainID:      1329,
		Name:         "Sei Network",
		Identifier:   "sei",
		NativeSymbol: "SEI",
		Decimals:     18,
		RPCURLs: []string{
			"https://evm-rpc.sei-apis.com",
			"https://sei-evm-rpc.publicnode.com",
			"https://seievm-rpc.polkachu.com",
		},
		WSURLs: []string{
			"wss://evm-ws.sei-apis.com",
		},
		BlockExplorerURL: "https://seitrace.com",
	}
	Testnet = entity.NetworkDescriptor{
		ChainID:      1328,
		Name:         "Sei Testnet",
		Identifier:   "sei-testnet",
		NativeSymbol: "SEI",
		Decimals:     18,
		RPCURLs: []string{
			"https://evm-rpc-testnet.sei-apis.com",
			"https://seievm-testnet-rpc.polkachu.com",
		},
		WSURLs: []string{
			"wss://evm-ws-testnet.sei-apis.com",
		},
		BlockExplorerURL: "https://seitrace.com/?chain=atlantic-2",
	}
	Devnet = entity.NetworkDescriptor{
		ChainID:      713715,
		Name:         "Sei Devnet",
		Identifier:   "sei-devnet",
		NativeSymbol: "SEI",
		Decimals:     18,
		RPCURLs: []string{
			"https://evm-rpc-arctic-1.sei-apis.com",
		},
		WSURLs: []string{
			"wss://evm-ws-arctic-1.sei-apis.com",
		},
		BlockExplorerURL: "https://seitrace.com/?chain=arctic-1",
	}
)

// allKnownDescriptors is a helper to quickly access all hardcoded descriptors.
var allKnownDescriptors = map[uint64]entity.NetworkDescriptor{
	Mainnet.ChainID: Mainnet,
	Testnet.ChainID: Testnet,
	Devnet.ChainID:  Devnet,
}

// networkAliases maps every accepted identifier to its chain id. Hyphenless
// aliases are the user-facing names; hyphenated ones (chain identifiers and
// upstream network names) are accepted for compatibility but kept out of the
// supported-networks listing.
var networkAliases = map[string]uint64{
	"sei":         Mainnet.ChainID,
	"mainnet":     Mainnet.ChainID,
	"pacific-1":   Mainnet.ChainID,
	"testnet":     Testnet.ChainID,
	"sei-testnet": Testnet.ChainID,
	"atlantic-2":  Testnet.ChainID,
	"devnet":      Devnet.ChainID,
	"sei-devnet":  Devnet.ChainID,
	"arctic-1":    Devnet.ChainID,
}

// Registry resolves network identifiers to descriptors. It implements
// port.NetworkRegistry.
type Registry struct {
	logger         port.Logger
	descriptors    map[uint64]entity.NetworkDescriptor
	aliases        map[string]uint64
	defaultChainID uint64
}

// NewRegistry creates a Registry with the hardcoded descriptor set. The
// default network name must resolve strictly; endpoint overrides replace a
// network's RPC pool wholesale when present.
func NewRegistry(log port.Logger, defaultNetwork string, rpcOverrides map[string][]string) (*Registry, error) {
	r := &Registry{
		logger:      log,
		descriptors: make(map[uint64]entity.NetworkDescriptor, len(allKnownDescriptors)),
		aliases:     networkAliases,
	}
	for id, d := range allKnownDescriptors {
		if urls, ok := rpcOverrides[d.Identifier]; ok && len(urls) > 0 {
			d.RPCURLs = append([]string(nil), urls...)
			log.Info("RPC endpoint pool overridden", "network", d.Identifier, "endpoints", len(urls))
		}
		r.descriptors[id] = d
	}

	chainID, ok := r.lookup(defaultNetwork)
	if !ok {
		return nil, &entity.UnsupportedNetworkError{Network: defaultNetwork}
	}
	r.defaultChainID = chainID
	log.Info("Network registry initialized",
		"networks", len(r.descriptors), "default", r.descriptors[chainID].Identifier)
	return r, nil
}

// lookup resolves an identifier via the alias table or as a numeric chain id.
func (r *Registry) lookup(identifier string) (uint64, bool) {
	name := strings.ToLower(strings.TrimSpace(identifier))
	if chainID, ok := r.aliases[name]; ok {
		return chainID, true
	}
	if chainID, err := strconv.ParseUint(name, 10, 64); err == nil {
		if _, ok := r.descriptors[chainID]; ok {
			return chainID, true
		}
	}
	return 0, false
}

// ResolveChainID maps an identifier to a chain id. The method is total:
// unknown identifiers resolve to the default network rather than failing.
// Callers of the lenient request paths depend on this fallback; use
// DescriptorByName when an unknown name must be an error.
func (r *Registry) ResolveChainID(identifier string) uint64 {
	if strings.TrimSpace(identifier) == "" {
		return r.defaultChainID
	}
	if chainID, ok := r.lookup(identifier); ok {
		return chainID
	}
	r.logger.Debug("Unknown network identifier, falling back to default",
		"identifier", identifier, "defaultChainId", r.defaultChainID)
	return r.defaultChainID
}

// DescriptorByName resolves a name strictly. Unknown names return
// entity.UnsupportedNetworkError instead of falling back.
func (r *Registry) DescriptorByName(name string) (entity.NetworkDescriptor, error) {
	chainID, ok := r.lookup(name)
	if !ok {
		return entity.NetworkDescriptor{}, &entity.UnsupportedNetworkError{Network: name}
	}
	return r.descriptors[chainID], nil
}

// Descriptor returns the descriptor for a known chain id.
func (r *Registry) Descriptor(chainID uint64) (entity.NetworkDescriptor, error) {
	d, ok := r.descriptors[chainID]
	if !ok {
		return entity.NetworkDescriptor{}, &entity.UnsupportedNetworkError{Network: strconv.FormatUint(chainID, 10)}
	}
	return d, nil
}

// DefaultChainID returns the chain id of the configured default network.
func (r *Registry) DefaultChainID() uint64 {
	return r.defaultChainID
}

// SupportedNetworks lists the user-facing aliases, sorted. Hyphenated
// aliases are excluded.
func (r *Registry) SupportedNetworks() []string {
	names := make([]string, 0, len(r.aliases))
	for alias := range r.aliases {
		if strings.Contains(alias, "-") {
			continue
		}
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}

// AllDescriptors returns every known descriptor, ordered by chain id.
func (r *Registry) AllDescriptors() []entity.NetworkDescriptor {
	out := make([]entity.NetworkDescriptor, 0, len(r.descriptors))
	for _, d := range r.descriptors {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChainID < out[j].ChainID })
	return out
}
