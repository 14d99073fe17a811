package entity

// TransferReceipt acknowledges a submitted transaction. It is returned as
// soon as the node accepted the transaction; inclusion is not awaited.
type TransferReceipt struct {
	TxHash  string         `json:"txHash"`
	Network string         `json:"network"`
	ChainID uint64         `json:"chainId"`
	From    string         `json:"from"`
	To      string         `json:"to"`
	Amount  *TokenAmount   `json:"amount,omitempty"`
	TokenID *BigInt        `json:"tokenId,omitempty"`
	Token   *TokenMetadata `json:"token,omitempty"`
}
