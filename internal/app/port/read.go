package port

import (
	"context"

	"github.com/souvik0908/sei-sense/internal/domain/entity"
)

// ChainReadService defines the interface for core chain reads: balances,
// blocks, transactions and arbitrary contract calls.
type ChainReadService interface {
	// GetBalance returns the native balance of an account. Accounts the
	// chain has never seen report a zero balance, not an error.
	GetBalance(ctx context.Context, address, network string) (*entity.Balance, error)

	// GetLatestBlock returns the current head block, with full transaction
	// records when includeTxs is set.
	GetLatestBlock(ctx context.Context, network string, includeTxs bool) (*entity.Block, error)

	// GetBlockByNumber returns the block at the given height.
	GetBlockByNumber(ctx context.Context, number uint64, network string, includeTxs bool) (*entity.Block, error)

	// GetBlockByHash returns the block with the given hash.
	GetBlockByHash(ctx context.Context, hash, network string, includeTxs bool) (*entity.Block, error)

	// GetTransaction returns a transaction by hash, enriched with receipt
	// data when a receipt could be retrieved.
	GetTransaction(ctx context.Context, hash, network string) (*entity.TransactionRecord, error)

	// IsContract reports whether bytecode is deployed at the address.
	IsContract(ctx context.Context, address, network string) (bool, error)

	// ReadContract executes a read-only contract function described by an
	// ABI fragment and returns the decoded result.
	ReadContract(ctx context.Context, contract, abiJSON, function string, args []any, network string) (any, error)

	// WriteContract submits a state-changing contract call and returns the
	// transaction hash without waiting for inclusion.
	WriteContract(ctx context.Context, contract, abiJSON, function string, args []any, network string) (string, error)
}
