package port

import "github.com/souvik0908/sei-sense/internal/domain/entity"

// NetworkRegistry resolves user-supplied network identifiers to descriptors.
//
// Two resolution paths exist on purpose. ResolveChainID is total: any
// unrecognized identifier falls back to the default network, which callers
// of the lenient request paths rely on. DescriptorByName is strict and
// returns entity.UnsupportedNetworkError for unknown names.
type NetworkRegistry interface {
	// ResolveChainID maps an alias, identifier or numeric chain id string to
	// a chain id. Unknown inputs resolve to the default network's chain id.
	ResolveChainID(identifier string) uint64

	// DescriptorByName resolves a name strictly, failing on unknown input.
	DescriptorByName(name string) (entity.NetworkDescriptor, error)

	// Descriptor returns the descriptor for a known chain id.
	Descriptor(chainID uint64) (entity.NetworkDescriptor, error)

	// DefaultChainID returns the chain id of the configured default network.
	DefaultChainID() uint64

	// SupportedNetworks lists the user-facing network aliases. Aliases
	// containing a hyphen are internal and excluded from the list.
	SupportedNetworks() []string

	// AllDescriptors returns every known network descriptor.
	AllDescriptors() []entity.NetworkDescriptor
}
