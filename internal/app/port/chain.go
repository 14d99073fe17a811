package port

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/souvik0908/sei-sense/internal/domain/entity"
)

// ChainReader is the read surface of a network node. Services depend on this
// interface rather than a concrete client so tests can substitute fakes.
type ChainReader interface {
	// BlockNumber returns the current chain head height.
	BlockNumber(ctx context.Context) (uint64, error)

	// BlockByNumber fetches a full block. A nil number means the latest block.
	BlockByNumber(ctx context.Context, number *big.Int) (*types.Block, error)

	// BlockByHash fetches a full block by its hash.
	BlockByHash(ctx context.Context, hash common.Hash) (*types.Block, error)

	// HeaderByNumber fetches only a block header, nil for the latest.
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)

	// TransactionByHash returns the transaction and whether it is still pending.
	TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error)

	// TransactionReceipt returns the receipt of a mined transaction.
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)

	// BalanceAt returns the native balance of an account. A nil block number
	// means the latest state.
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)

	// NonceAt returns the confirmed transaction count of an account.
	NonceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (uint64, error)

	// CodeAt returns the bytecode deployed at an address, empty for
	// externally owned accounts.
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)

	// CallContract executes a read-only contract call against latest state.
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)

	// TokenMetadata fetches the ERC-20 descriptor fields of a contract in a
	// single JSON-RPC batch.
	TokenMetadata(ctx context.Context, token common.Address) (entity.TokenMetadata, error)

	// EVMAddress resolves a native bech32 account to its associated EVM
	// address using the node's association table.
	EVMAddress(ctx context.Context, bech32Addr string) (common.Address, error)

	// Descriptor returns the network this client is connected to.
	Descriptor() entity.NetworkDescriptor
}

// ChainSigner submits transactions signed with the configured account key.
type ChainSigner interface {
	// Address returns the account address derived from the signing key.
	Address() common.Address

	// SuggestGasPrice returns the node's current gas price suggestion.
	SuggestGasPrice(ctx context.Context) (*big.Int, error)

	// SendTransaction builds, signs and submits a transaction and returns its
	// hash. It does not wait for inclusion.
	SendTransaction(ctx context.Context, to *common.Address, value *big.Int, data []byte) (common.Hash, error)

	// Descriptor returns the network this signer submits to.
	Descriptor() entity.NetworkDescriptor
}

// ChainClientProvider hands out per-network clients. An empty network name
// selects the configured default network.
type ChainClientProvider interface {
	Reader(ctx context.Context, network string) (ChainReader, error)
	Signer(ctx context.Context, network string) (ChainSigner, error)
}
