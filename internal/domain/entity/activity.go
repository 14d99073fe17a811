package entity

import "time"

// WalletActivity summarizes on-chain activity for an account. TxCount is
// authoritative (the account nonce); LastActivity is exact when a recent
// transaction was found in the scan window and an estimate otherwise, in
// which case LastActivityEstimated is set.
type WalletActivity struct {
	Address               string               `json:"address"`
	Network               string               `json:"network"`
	TxCount               uint64               `json:"transactionCount"`
	LastActivity          *time.Time           `json:"lastActivity"`
	LastActivityEstimated bool                 `json:"lastActivityEstimated,omitempty"`
	RecentTransactions    []*TransactionRecord `json:"recentTransactions"`
}

// WalletAnalysis combines balance and activity with a heuristic risk score
// in [0.05, 0.85]. The score is deterministic for identical chain state.
type WalletAnalysis struct {
	Address      string     `json:"address"`
	Network      string     `json:"network"`
	Balance      *Balance   `json:"balance"`
	TxCount      uint64     `json:"transactionCount"`
	LastActivity *time.Time `json:"lastActivity"`
	IsContract   bool       `json:"isContract"`
	RiskScore    float64    `json:"riskScore"`
	Observations []string   `json:"observations,omitempty"`
}
