package entity

// TokenMetadata holds the ERC-20 descriptor fields of a token contract.
type TokenMetadata struct {
	Address     string  `json:"address"`
	Network     string  `json:"network"`
	Name        string  `json:"name"`
	Symbol      string  `json:"symbol"`
	Decimals    uint8   `json:"decimals"`
	TotalSupply *BigInt `json:"totalSupply,omitempty"`
}

// TokenAmount carries a token quantity in raw units together with its
// human-readable form.
type TokenAmount struct {
	Raw       *BigInt `json:"raw"`
	Decimals  uint8   `json:"decimals"`
	Formatted string  `json:"formatted"`
}

// TokenBalance is an account's holding of a specific ERC-20 token.
type TokenBalance struct {
	Address string         `json:"address"`
	Token   *TokenMetadata `json:"token"`
	Amount  *TokenAmount   `json:"amount"`
}

// NFTCollection holds the descriptor fields of an ERC-721 contract.
type NFTCollection struct {
	Address string `json:"address"`
	Network string `json:"network"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

// NFTToken describes a single ERC-721 token: its owner and metadata URI.
type NFTToken struct {
	Contract string  `json:"contract"`
	TokenID  *BigInt `json:"tokenId"`
	Owner    string  `json:"owner,omitempty"`
	TokenURI string  `json:"tokenUri,omitempty"`
}

// MultiTokenBalance is an account's holding of a specific ERC-1155 token id.
type MultiTokenBalance struct {
	Contract string  `json:"contract"`
	TokenID  *BigInt `json:"tokenId"`
	Address  string  `json:"address"`
	Amount   *BigInt `json:"amount"`
}
