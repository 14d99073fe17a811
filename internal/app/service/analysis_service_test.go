package service

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souvik0908/sei-sense/internal/app/port"
	"github.com/souvik0908/sei-sense/internal/domain/entity"
)

type fakeReadService struct {
	port.ChainReadService
	balance    *entity.Balance
	balanceErr error
	isContract bool
}

func (f *fakeReadService) GetBalance(ctx context.Context, address, network string) (*entity.Balance, error) {
	if f.balanceErr != nil {
		return nil, f.balanceErr
	}
	return f.balance, nil
}

func (f *fakeReadService) IsContract(ctx context.Context, address, network string) (bool, error) {
	return f.isContract, nil
}

type fakeHistoryService struct {
	port.HistoryService
	activity *entity.WalletActivity
}

func (f *fakeHistoryService) GetWalletActivity(ctx context.Context, address, network string) (*entity.WalletActivity, error) {
	return f.activity, nil
}

func TestScoreWalletStaysInBounds(t *testing.T) {
	now := time.Now().UTC()
	recent := now.Add(-time.Hour)
	dormant := now.Add(-365 * 24 * time.Hour)

	counts := []uint64{0, 5, 50, 500, 5000}
	activities := []*time.Time{nil, &recent, &dormant}
	balances := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		new(big.Int).Mul(big.NewInt(500), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)),
	}
	addresses := []string{
		"0x0000000000000000000000000000000000000000",
		"0x000000000000000000000000000000000000ffff",
		testAddressHex,
	}

	for _, count := range counts {
		for _, activity := range activities {
			for _, balance := range balances {
				for _, addr := range addresses {
					score, _ := scoreWallet(count, activity, balance, addr, false)
					assert.GreaterOrEqual(t, score, 0.05)
					assert.LessOrEqual(t, score, 0.85)

					again, _ := scoreWallet(count, activity, balance, addr, false)
					assert.Equal(t, score, again)
				}
			}
		}
	}
}

func TestScoreWalletObservations(t *testing.T) {
	now := time.Now().UTC()
	recent := now.Add(-time.Hour)
	zeroJitter := "0x0000000000000000000000000000000000000000"

	t.Run("busy funded wallet scores low", func(t *testing.T) {
		whale := new(big.Int).Mul(big.NewInt(500), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
		score, obs := scoreWallet(5000, &recent, whale, zeroJitter, false)
		assert.InDelta(t, 0.10, score, 1e-9)
		assert.Contains(t, obs, "heavily used wallet")
		assert.Contains(t, obs, "active within the last week")
		assert.Contains(t, obs, "holds a significant native balance")
	})

	t.Run("empty fresh wallet scores high", func(t *testing.T) {
		score, obs := scoreWallet(0, nil, big.NewInt(0), zeroJitter, false)
		assert.InDelta(t, 0.60, score, 1e-9)
		assert.Contains(t, obs, "fresh wallet with little history")
		assert.Contains(t, obs, "no activity found")
		assert.Contains(t, obs, "holds no native balance")
	})

	t.Run("contract addresses are flagged", func(t *testing.T) {
		_, obs := scoreWallet(50, &recent, big.NewInt(1), zeroJitter, true)
		assert.Contains(t, obs, "address is a contract")
	})
}

func TestAddressJitter(t *testing.T) {
	assert.InDelta(t, 0.10, addressJitter("0x000000000000000000000000000000000000ffff"), 1e-9)
	assert.InDelta(t, 0.0, addressJitter("0x0000000000000000000000000000000000000000"), 1e-9)

	// bech32 addresses fall back to hashing but stay in range
	j := addressJitter("sei1hafptm4zxy5nw8rd2pxyg83c5tdwzfrsqyjyg8")
	assert.GreaterOrEqual(t, j, 0.0)
	assert.LessOrEqual(t, j, 0.10)
}

func TestAnalyzeWallet(t *testing.T) {
	last := time.Now().UTC().Add(-2 * time.Hour)
	readSvc := &fakeReadService{
		balance: &entity.Balance{
			Address:   testAddressHex,
			Network:   "sei",
			ChainID:   1329,
			Wei:       entity.NewBigInt(big.NewInt(5000000000000000000)),
			Formatted: "5",
			Symbol:    "SEI",
			Decimals:  18,
		},
		isContract: false,
	}
	historySvc := &fakeHistoryService{
		activity: &entity.WalletActivity{
			Address:      testAddressHex,
			Network:      "sei",
			TxCount:      250,
			LastActivity: &last,
		},
	}

	svc := NewAnalysisService(readSvc, historySvc, nopLogger{})
	analysis, err := svc.AnalyzeWallet(context.Background(), testAddressHex, "sei")
	require.NoError(t, err)

	assert.Equal(t, testAddressHex, analysis.Address)
	assert.Equal(t, "sei", analysis.Network)
	assert.Equal(t, uint64(250), analysis.TxCount)
	assert.False(t, analysis.IsContract)
	require.NotNil(t, analysis.LastActivity)
	assert.Equal(t, last, *analysis.LastActivity)

	expected, _ := scoreWallet(250, &last, readSvc.balance.Wei.Int(), testAddressHex, false)
	assert.Equal(t, expected, analysis.RiskScore)
}

func TestAnalyzeWalletPropagatesFailures(t *testing.T) {
	readSvc := &fakeReadService{balanceErr: errors.New("node unreachable")}
	historySvc := &fakeHistoryService{activity: &entity.WalletActivity{}}

	svc := NewAnalysisService(readSvc, historySvc, nopLogger{})
	_, err := svc.AnalyzeWallet(context.Background(), testAddressHex, "sei")
	assert.Error(t, err)
}

func TestAnalyzeWalletInvalidAddress(t *testing.T) {
	svc := NewAnalysisService(&fakeReadService{}, &fakeHistoryService{}, nopLogger{})
	_, err := svc.AnalyzeWallet(context.Background(), "0x123", "sei")

	var addrErr *entity.InvalidAddressError
	assert.True(t, errors.As(err, &addrErr))
}
