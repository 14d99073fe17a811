package port

import (
	"context"

	"github.com/souvik0908/sei-sense/internal/domain/entity"
)

// HistoryService defines the interface for reconstructing wallet history
// from recent blocks. Without an indexer the scan is bounded to a window of
// newest blocks, so results cover recent activity only.
type HistoryService interface {
	// GetTransactionHistory returns up to limit transactions involving the
	// address found in the scan window, newest first.
	GetTransactionHistory(ctx context.Context, address, network string, limit int) (*entity.TransactionHistory, error)

	// GetWalletActivity returns the authoritative transaction count plus a
	// small sample of recent transactions and a last-activity timestamp.
	GetWalletActivity(ctx context.Context, address, network string) (*entity.WalletActivity, error)
}

// AnalysisService defines the interface for composite wallet analysis.
type AnalysisService interface {
	// AnalyzeWallet combines balance, activity and contract detection into a
	// single report with a heuristic risk score.
	AnalyzeWallet(ctx context.Context, address, network string) (*entity.WalletAnalysis, error)
}
