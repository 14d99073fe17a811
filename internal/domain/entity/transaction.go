package entity

// Transaction status values as reported after receipt lookup.
const (
	TxStatusSuccess = "success"
	TxStatusFailed  = "failed"
	TxStatusPending = "pending"
)

// Transaction categories assigned by calldata-selector classification.
const (
	TxCategoryTransfer = "transfer"
	TxCategorySwap     = "swap"
	TxCategoryContract = "contract"
	TxCategoryOther    = "other"
)

// TransactionHistory is the result of a windowed history scan: the matches
// found in the window, newest first, capped at the requested limit.
type TransactionHistory struct {
	Address      string               `json:"address"`
	Network      string               `json:"network"`
	FromBlock    uint64               `json:"fromBlock"`
	ToBlock      uint64               `json:"toBlock"`
	TotalCount   int                  `json:"totalCount"`
	Transactions []*TransactionRecord `json:"transactions"`
}

// TransactionRecord is the normalized view of a single transaction,
// optionally enriched with receipt data (status, gasUsed, fee).
type TransactionRecord struct {
	Hash        string  `json:"hash"`
	BlockNumber uint64  `json:"blockNumber"`
	Timestamp   uint64  `json:"timestamp,omitempty"`
	From        string  `json:"from"`
	To          string  `json:"to,omitempty"`
	Value       *BigInt `json:"value"`
	Nonce       uint64  `json:"nonce"`
	GasLimit    uint64  `json:"gasLimit,omitempty"`
	GasUsed     uint64  `json:"gasUsed,omitempty"`
	GasPrice    *BigInt `json:"gasPrice,omitempty"`
	Fee         *BigInt `json:"fee,omitempty"`
	Status      string  `json:"status,omitempty"`
	Category    string  `json:"category,omitempty"`
}
