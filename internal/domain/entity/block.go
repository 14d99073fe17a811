package entity

// Block is the normalized view of a chain block returned by the read
// services. Transactions are populated only when the caller asked for them.
type Block struct {
	Number       uint64               `json:"number"`
	Hash         string               `json:"hash"`
	ParentHash   string               `json:"parentHash"`
	Timestamp    uint64               `json:"timestamp"`
	Miner        string               `json:"miner,omitempty"`
	GasUsed      uint64               `json:"gasUsed"`
	GasLimit     uint64               `json:"gasLimit"`
	BaseFee      *BigInt              `json:"baseFeePerGas,omitempty"`
	TxCount      int                  `json:"transactionCount"`
	Transactions []*TransactionRecord `json:"transactions,omitempty"`
}
