package entity

// NetworkDescriptor holds the static configuration for a supported network.
// The structure is defined at the domain level so application and
// infrastructure layers can share it.
type NetworkDescriptor struct {
	ChainID          uint64   `json:"chainId" yaml:"chainId"`
	Name             string   `json:"name" yaml:"name"`
	Identifier       string   `json:"identifier" yaml:"identifier"`
	NativeSymbol     string   `json:"nativeSymbol" yaml:"nativeSymbol"`
	Decimals         uint8    `json:"decimals" yaml:"decimals"`
	RPCURLs          []string `json:"rpcUrls" yaml:"rpcUrls"`
	WSURLs           []string `json:"wsUrls,omitempty" yaml:"wsUrls,omitempty"`
	BlockExplorerURL string   `json:"blockExplorerUrl,omitempty" yaml:"blockExplorerUrl,omitempty"`
}

// PrimaryRPCURL returns the first endpoint of the pool, which is tried first
// when dialing.
func (d NetworkDescriptor) PrimaryRPCURL() string {
	if len(d.RPCURLs) == 0 {
		return ""
	}
	return d.RPCURLs[0]
}
