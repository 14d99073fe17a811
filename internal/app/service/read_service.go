package service

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/souvik0908/sei-sense/internal/app/port"
	"github.com/souvik0908/sei-sense/internal/domain/entity"
	"github.com/souvik0908/sei-sense/internal/pkg/utils"
	"github.com/souvik0908/sei-sense/internal/pkg/validation"
)

// ChainReadServiceImpl implements port.ChainReadService.
type ChainReadServiceImpl struct {
	clientProvider port.ChainClientProvider
	logger         port.Logger
}

// NewChainReadService creates a new instance of ChainReadServiceImpl.
func NewChainReadService(cp port.ChainClientProvider, l port.Logger) port.ChainReadService {
	return &ChainReadServiceImpl{
		clientProvider: cp,
		logger:         l,
	}
}

// GetBalance returns the native balance of an account. The chain reports
// zero for accounts it has never seen, which is a valid answer, not an
// error.
func (s *ChainReadServiceImpl) GetBalance(ctx context.Context, address, network string) (*entity.Balance, error) {
	if _, err := validation.ValidateAddress(address); err != nil {
		return nil, err
	}
	reader, err := dialReader(ctx, s.clientProvider, network)
	if err != nil {
		return nil, err
	}
	account, err := resolveAccount(ctx, reader, address)
	if err != nil {
		return nil, err
	}

	netDef := reader.Descriptor()
	wei, err := reader.BalanceAt(ctx, account, nil)
	if err != nil {
		return nil, nodeErr(netDef.Identifier, "fetch balance of "+address, err)
	}
	s.logger.Debug("Fetched native balance", "address", address, "network", netDef.Identifier, "wei", wei.String())

	return &entity.Balance{
		Address:   address,
		Network:   netDef.Identifier,
		ChainID:   netDef.ChainID,
		Wei:       entity.NewBigInt(wei),
		Formatted: utils.FormatUnits(wei, netDef.Decimals),
		Symbol:    netDef.NativeSymbol,
		Decimals:  netDef.Decimals,
	}, nil
}

// GetLatestBlock returns the current head block.
func (s *ChainReadServiceImpl) GetLatestBlock(ctx context.Context, network string, includeTxs bool) (*entity.Block, error) {
	reader, err := dialReader(ctx, s.clientProvider, network)
	if err != nil {
		return nil, err
	}
	block, err := reader.BlockByNumber(ctx, nil)
	if err != nil {
		return nil, nodeErr(reader.Descriptor().Identifier, "fetch latest block", err)
	}
	return blockRecord(block, includeTxs), nil
}

// GetBlockByNumber returns the block at the given height.
func (s *ChainReadServiceImpl) GetBlockByNumber(ctx context.Context, number uint64, network string, includeTxs bool) (*entity.Block, error) {
	reader, err := dialReader(ctx, s.clientProvider, network)
	if err != nil {
		return nil, err
	}
	block, err := reader.BlockByNumber(ctx, new(big.Int).SetUint64(number))
	if err != nil {
		return nil, nodeErr(reader.Descriptor().Identifier, "fetch block by number", err)
	}
	return blockRecord(block, includeTxs), nil
}

// GetBlockByHash returns the block with the given hash.
func (s *ChainReadServiceImpl) GetBlockByHash(ctx context.Context, hash, network string, includeTxs bool) (*entity.Block, error) {
	blockHash, err := validation.ValidateHash(hash)
	if err != nil {
		return nil, err
	}
	reader, err := dialReader(ctx, s.clientProvider, network)
	if err != nil {
		return nil, err
	}
	block, err := reader.BlockByHash(ctx, blockHash)
	if err != nil {
		return nil, nodeErr(reader.Descriptor().Identifier, "fetch block by hash", err)
	}
	return blockRecord(block, includeTxs), nil
}

// GetTransaction returns a transaction by hash. Mined transactions are
// enriched with receipt data; when the receipt cannot be retrieved the
// record is returned with the default success status.
func (s *ChainReadServiceImpl) GetTransaction(ctx context.Context, hash, network string) (*entity.TransactionRecord, error) {
	txHash, err := validation.ValidateHash(hash)
	if err != nil {
		return nil, err
	}
	reader, err := dialReader(ctx, s.clientProvider, network)
	if err != nil {
		return nil, err
	}

	netDef := reader.Descriptor()
	tx, pending, err := reader.TransactionByHash(ctx, txHash)
	if err != nil {
		return nil, nodeErr(netDef.Identifier, "fetch transaction "+hash, err)
	}

	rec := txRecord(tx, 0, 0)
	if pending {
		rec.Status = entity.TxStatusPending
		return rec, nil
	}

	rec.Status = entity.TxStatusSuccess
	receipt, err := reader.TransactionReceipt(ctx, txHash)
	if err != nil {
		s.logger.Warn("Receipt unavailable, reporting default status", "hash", hash, "network", netDef.Identifier, "error", err)
		return rec, nil
	}

	rec.BlockNumber = receipt.BlockNumber.Uint64()
	rec.GasUsed = receipt.GasUsed
	if receipt.Status == types.ReceiptStatusFailed {
		rec.Status = entity.TxStatusFailed
	}
	gasPrice := receipt.EffectiveGasPrice
	if gasPrice == nil {
		gasPrice = tx.GasPrice()
	}
	rec.GasPrice = entity.NewBigInt(gasPrice)
	rec.Fee = entity.NewBigInt(computeFee(receipt.GasUsed, gasPrice))

	if header, err := reader.HeaderByNumber(ctx, receipt.BlockNumber); err == nil {
		rec.Timestamp = header.Time
	} else {
		s.logger.Debug("Block header unavailable for timestamp", "hash", hash, "error", err)
	}
	return rec, nil
}

// IsContract reports whether bytecode is deployed at the address.
func (s *ChainReadServiceImpl) IsContract(ctx context.Context, address, network string) (bool, error) {
	if _, err := validation.ValidateAddress(address); err != nil {
		return false, err
	}
	reader, err := dialReader(ctx, s.clientProvider, network)
	if err != nil {
		return false, err
	}
	account, err := resolveAccount(ctx, reader, address)
	if err != nil {
		return false, err
	}
	code, err := reader.CodeAt(ctx, account, nil)
	if err != nil {
		return false, nodeErr(reader.Descriptor().Identifier, "fetch code at "+address, err)
	}
	return len(code) > 0, nil
}

// ReadContract executes a read-only contract function described by an ABI
// fragment and returns the decoded result. Single-value results are
// unwrapped; multi-value results come back as a list.
func (s *ChainReadServiceImpl) ReadContract(ctx context.Context, contract, abiJSON, function string, args []any, network string) (any, error) {
	contractAddr, err := validation.RequireHexAddress(contract)
	if err != nil {
		return nil, err
	}
	parsed, data, err := packCallData(abiJSON, function, args)
	if err != nil {
		return nil, err
	}
	reader, err := dialReader(ctx, s.clientProvider, network)
	if err != nil {
		return nil, err
	}

	netDef := reader.Descriptor()
	out, err := reader.CallContract(ctx, ethereum.CallMsg{To: &contractAddr, Data: data}, nil)
	if err != nil {
		return nil, nodeErr(netDef.Identifier, "call "+function+" on "+contract, err)
	}

	results, err := parsed.Unpack(function, out)
	if err != nil {
		return nil, nodeErr(netDef.Identifier, "decode result of "+function, err)
	}
	s.logger.Debug("Contract read succeeded", "contract", contract, "function", function, "network", netDef.Identifier)

	if len(results) == 1 {
		return utils.NormalizeValue(results[0]), nil
	}
	return utils.NormalizeValues(results), nil
}

// WriteContract submits a state-changing contract call signed with the
// configured key and returns the transaction hash without waiting for
// inclusion. Gas estimation failures, including reverts and insufficient
// balance, surface with the node's message intact.
func (s *ChainReadServiceImpl) WriteContract(ctx context.Context, contract, abiJSON, function string, args []any, network string) (string, error) {
	contractAddr, err := validation.RequireHexAddress(contract)
	if err != nil {
		return "", err
	}
	_, data, err := packCallData(abiJSON, function, args)
	if err != nil {
		return "", err
	}
	signer, err := dialSigner(ctx, s.clientProvider, network)
	if err != nil {
		return "", err
	}

	netDef := signer.Descriptor()
	hash, err := signer.SendTransaction(ctx, &contractAddr, new(big.Int), data)
	if err != nil {
		return "", nodeErr(netDef.Identifier, "submit "+function+" to "+contract, err)
	}
	s.logger.Info("Contract write submitted", "contract", contract, "function", function, "network", netDef.Identifier, "hash", hash.Hex())
	return hash.Hex(), nil
}
