package entity

// Balance represents the native currency held by an account on a network.
type Balance struct {
	Address   string  `json:"address"`
	Network   string  `json:"network"`
	ChainID   uint64  `json:"chainId"`
	Wei       *BigInt `json:"wei"`
	Formatted string  `json:"formatted"`
	Symbol    string  `json:"symbol"`
	Decimals  uint8   `json:"decimals"`
}
