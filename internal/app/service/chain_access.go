package service

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/souvik0908/sei-sense/internal/app/port"
	"github.com/souvik0908/sei-sense/internal/domain/entity"
	"github.com/souvik0908/sei-sense/internal/pkg/validation"
)

// nodeErr wraps a node interaction failure, keeping the node's own message
// reachable through Unwrap.
func nodeErr(network, op string, cause error) error {
	return &entity.NodeCommunicationError{Network: network, Op: op, Cause: cause}
}

// dialReader resolves a network name to a connected read client. Connection
// failures are reported as node communication errors under the requested
// network name.
func dialReader(ctx context.Context, provider port.ChainClientProvider, network string) (port.ChainReader, error) {
	reader, err := provider.Reader(ctx, network)
	if err != nil {
		return nil, nodeErr(networkLabel(network), "connect", err)
	}
	return reader, nil
}

// dialSigner resolves a network name to a connected signing client. A bad
// signing key surfaces as is; everything else is a node communication error.
func dialSigner(ctx context.Context, provider port.ChainClientProvider, network string) (port.ChainSigner, error) {
	signer, err := provider.Signer(ctx, network)
	if err != nil {
		var keyErr *entity.InvalidKeyError
		if errors.As(err, &keyErr) {
			return nil, err
		}
		return nil, nodeErr(networkLabel(network), "connect", err)
	}
	return signer, nil
}

func networkLabel(network string) string {
	if network == "" {
		return "default"
	}
	return network
}

// resolveAccount turns a validated address of either form into an EVM
// address. Hex addresses convert locally; bech32 addresses go through the
// node's association lookup.
func resolveAccount(ctx context.Context, reader port.ChainReader, address string) (common.Address, error) {
	if validation.IsHexAddress(address) {
		return validation.RequireHexAddress(address)
	}
	if validation.IsBech32Address(address) {
		evmAddr, err := reader.EVMAddress(ctx, address)
		if err != nil {
			return common.Address{}, nodeErr(reader.Descriptor().Identifier, "resolve account "+address, err)
		}
		return evmAddr, nil
	}
	return common.Address{}, &entity.InvalidAddressError{Address: address}
}

// txRecord maps a raw transaction into the normalized record. Block context
// is zero for transactions fetched outside a block.
func txRecord(tx *types.Transaction, blockNumber, blockTime uint64) *entity.TransactionRecord {
	rec := &entity.TransactionRecord{
		Hash:        tx.Hash().Hex(),
		BlockNumber: blockNumber,
		Timestamp:   blockTime,
		Value:       entity.NewBigInt(tx.Value()),
		Nonce:       tx.Nonce(),
		GasLimit:    tx.Gas(),
		GasPrice:    entity.NewBigInt(tx.GasPrice()),
	}
	if sender, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx); err == nil {
		rec.From = sender.Hex()
	}
	if to := tx.To(); to != nil {
		rec.To = to.Hex()
	}
	return rec
}

// blockRecord maps a raw block into the normalized view, with nested
// transaction records when requested.
func blockRecord(block *types.Block, includeTxs bool) *entity.Block {
	b := &entity.Block{
		Number:     block.NumberU64(),
		Hash:       block.Hash().Hex(),
		ParentHash: block.ParentHash().Hex(),
		Timestamp:  block.Time(),
		Miner:      block.Coinbase().Hex(),
		GasUsed:    block.GasUsed(),
		GasLimit:   block.GasLimit(),
		TxCount:    len(block.Transactions()),
	}
	if block.BaseFee() != nil {
		b.BaseFee = entity.NewBigInt(block.BaseFee())
	}
	if includeTxs {
		b.Transactions = make([]*entity.TransactionRecord, 0, len(block.Transactions()))
		for _, tx := range block.Transactions() {
			b.Transactions = append(b.Transactions, txRecord(tx, block.NumberU64(), block.Time()))
		}
	}
	return b
}

// computeFee returns gasUsed multiplied by the gas price actually paid.
func computeFee(gasUsed uint64, gasPrice *big.Int) *big.Int {
	if gasPrice == nil {
		return new(big.Int)
	}
	return new(big.Int).Mul(new(big.Int).SetUint64(gasUsed), gasPrice)
}
