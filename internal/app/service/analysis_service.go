package service

import (
	"context"
	"hash/fnv"
	"math/big"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/souvik0908/sei-sense/internal/app/port"
	"github.com/souvik0908/sei-sense/internal/domain/entity"
	"github.com/souvik0908/sei-sense/internal/pkg/validation"
)

// significantBalanceWei is 100 whole native units at 18 decimals.
var significantBalanceWei = new(big.Int).Mul(big.NewInt(100), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))

// AnalysisServiceImpl implements port.AnalysisService.
type AnalysisServiceImpl struct {
	readSvc    port.ChainReadService
	historySvc port.HistoryService
	logger     port.Logger
}

// NewAnalysisService creates a new instance of AnalysisServiceImpl.
func NewAnalysisService(rs port.ChainReadService, hs port.HistoryService, l port.Logger) port.AnalysisService {
	return &AnalysisServiceImpl{
		readSvc:    rs,
		historySvc: hs,
		logger:     l,
	}
}

// AnalyzeWallet combines balance, activity and contract detection into one
// report. The three lookups run concurrently; any failure fails the whole
// analysis since a partial report would skew the score.
func (s *AnalysisServiceImpl) AnalyzeWallet(ctx context.Context, address, network string) (*entity.WalletAnalysis, error) {
	if _, err := validation.ValidateAddress(address); err != nil {
		return nil, err
	}

	var (
		balance    *entity.Balance
		activity   *entity.WalletActivity
		isContract bool
	)
	eg, childCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		balance, err = s.readSvc.GetBalance(childCtx, address, network)
		return err
	})
	eg.Go(func() error {
		var err error
		activity, err = s.historySvc.GetWalletActivity(childCtx, address, network)
		return err
	})
	eg.Go(func() error {
		var err error
		isContract, err = s.readSvc.IsContract(childCtx, address, network)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	score, observations := scoreWallet(activity.TxCount, activity.LastActivity, balance.Wei.Int(), address, isContract)
	s.logger.Debug("Wallet analysis complete", "address", address, "network", balance.Network, "riskScore", score)

	return &entity.WalletAnalysis{
		Address:      address,
		Network:      balance.Network,
		Balance:      balance,
		TxCount:      activity.TxCount,
		LastActivity: activity.LastActivity,
		IsContract:   isContract,
		RiskScore:    score,
		Observations: observations,
	}, nil
}

// scoreWallet computes the heuristic risk score. Volume and age lower it,
// emptiness and silence raise it, and a per-address jitter term spreads
// otherwise identical wallets apart. The result always lands in
// [0.05, 0.85] and repeats exactly for identical chain state.
func scoreWallet(txCount uint64, lastActivity *time.Time, balanceWei *big.Int, address string, isContract bool) (float64, []string) {
	score := 0.30
	var observations []string

	switch {
	case txCount > 1000:
		score -= 0.10
		observations = append(observations, "heavily used wallet")
	case txCount > 100:
		score -= 0.05
	case txCount < 10:
		score += 0.15
		observations = append(observations, "fresh wallet with little history")
	}

	now := time.Now().UTC()
	switch {
	case lastActivity == nil:
		score += 0.10
		observations = append(observations, "no activity found")
	case now.Sub(*lastActivity) <= 7*24*time.Hour:
		score -= 0.05
		observations = append(observations, "active within the last week")
	case now.Sub(*lastActivity) > 180*24*time.Hour:
		score += 0.10
		observations = append(observations, "dormant for over six months")
	}

	if balanceWei.Sign() == 0 {
		score += 0.05
		observations = append(observations, "holds no native balance")
	} else if balanceWei.Cmp(significantBalanceWei) >= 0 {
		score -= 0.05
		observations = append(observations, "holds a significant native balance")
	}

	if isContract {
		observations = append(observations, "address is a contract")
	}

	score += addressJitter(address)
	if score < 0.05 {
		score = 0.05
	}
	if score > 0.85 {
		score = 0.85
	}
	return score, observations
}

// addressJitter maps the trailing four hex digits of an address onto
// [0, 0.10]. Bech32 addresses have no hex tail, they hash instead.
func addressJitter(address string) float64 {
	addr := strings.ToLower(strings.TrimPrefix(address, "0x"))
	if len(addr) >= 4 {
		if v, err := strconv.ParseUint(addr[len(addr)-4:], 16, 32); err == nil {
			return float64(v) / 65535.0 * 0.10
		}
	}
	h := fnv.New32a()
	h.Write([]byte(addr))
	return float64(h.Sum32()%65536) / 65535.0 * 0.10
}
