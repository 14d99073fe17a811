package service

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souvik0908/sei-sense/internal/domain/entity"
)

func newTestReadService(reader *fakeReader) *ChainReadServiceImpl {
	return &ChainReadServiceImpl{
		clientProvider: &fakeProvider{reader: reader},
		logger:         nopLogger{},
	}
}

func TestGetBalance(t *testing.T) {
	reader := newFakeReader()
	funded := common.HexToAddress(testAddressHex)
	reader.balances[funded] = big.NewInt(2500000000000000000)

	svc := newTestReadService(reader)

	t.Run("funded account", func(t *testing.T) {
		balance, err := svc.GetBalance(context.Background(), testAddressHex, "sei")
		require.NoError(t, err)

		assert.Equal(t, testAddressHex, balance.Address)
		assert.Equal(t, "sei", balance.Network)
		assert.Equal(t, uint64(1329), balance.ChainID)
		assert.Equal(t, "2500000000000000000", balance.Wei.String())
		assert.Equal(t, "2.5", balance.Formatted)
		assert.Equal(t, "SEI", balance.Symbol)
		assert.Equal(t, uint8(18), balance.Decimals)
	})

	t.Run("unseen account reports zero", func(t *testing.T) {
		balance, err := svc.GetBalance(context.Background(), "0x000000000000000000000000000000000000dEaD", "sei")
		require.NoError(t, err)

		assert.Equal(t, "0", balance.Wei.String())
		assert.Equal(t, "0", balance.Formatted)
	})

	t.Run("invalid address", func(t *testing.T) {
		_, err := svc.GetBalance(context.Background(), "0x1234", "sei")
		var addrErr *entity.InvalidAddressError
		assert.True(t, errors.As(err, &addrErr))
	})
}

func TestGetBalanceProviderFailure(t *testing.T) {
	svc := &ChainReadServiceImpl{
		clientProvider: &fakeProvider{readerErr: errors.New("dial tcp: connection refused")},
		logger:         nopLogger{},
	}
	_, err := svc.GetBalance(context.Background(), testAddressHex, "sei")

	var nodeCommErr *entity.NodeCommunicationError
	require.True(t, errors.As(err, &nodeCommErr))
	assert.Equal(t, "sei", nodeCommErr.Network)
}

func TestGetLatestBlock(t *testing.T) {
	reader := newFakeReader()
	tx := legacyTx(1, common.HexToAddress(testAddressHex), big.NewInt(10), nil)
	reader.addBlock(99, 1700000990, tx)

	svc := newTestReadService(reader)

	t.Run("header only", func(t *testing.T) {
		block, err := svc.GetLatestBlock(context.Background(), "sei", false)
		require.NoError(t, err)

		assert.Equal(t, uint64(99), block.Number)
		assert.Equal(t, uint64(1700000990), block.Timestamp)
		assert.Equal(t, 1, block.TxCount)
		assert.Nil(t, block.Transactions)
	})

	t.Run("with transactions", func(t *testing.T) {
		block, err := svc.GetLatestBlock(context.Background(), "sei", true)
		require.NoError(t, err)

		require.Len(t, block.Transactions, 1)
		rec := block.Transactions[0]
		assert.Equal(t, tx.Hash().Hex(), rec.Hash)
		assert.Equal(t, common.HexToAddress(testAddressHex).Hex(), rec.To)
		assert.Equal(t, uint64(99), rec.BlockNumber)
		assert.Equal(t, "10", rec.Value.String())
	})
}

func TestGetBlockByNumber(t *testing.T) {
	reader := newFakeReader()
	reader.addBlock(7, 1700000070)
	svc := newTestReadService(reader)

	block, err := svc.GetBlockByNumber(context.Background(), 7, "sei", false)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), block.Number)

	_, err = svc.GetBlockByNumber(context.Background(), 8, "sei", false)
	var nodeCommErr *entity.NodeCommunicationError
	assert.True(t, errors.As(err, &nodeCommErr))
}

func TestGetBlockByHash(t *testing.T) {
	reader := newFakeReader()
	stored := reader.addBlock(7, 1700000070)
	svc := newTestReadService(reader)

	block, err := svc.GetBlockByHash(context.Background(), stored.Hash().Hex(), "sei", false)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), block.Number)

	_, err = svc.GetBlockByHash(context.Background(), "not-a-hash", "sei", false)
	var valErr *entity.ValidationError
	assert.True(t, errors.As(err, &valErr))
}

func TestGetTransaction(t *testing.T) {
	reader := newFakeReader()
	tx := legacyTx(4, common.HexToAddress(testAddressHex), big.NewInt(77), nil)
	reader.addBlock(12, 1700000120, tx)
	reader.addReceipt(tx, 12, 21000, big.NewInt(2000000000))

	svc := newTestReadService(reader)
	rec, err := svc.GetTransaction(context.Background(), tx.Hash().Hex(), "sei")
	require.NoError(t, err)

	assert.Equal(t, tx.Hash().Hex(), rec.Hash)
	assert.Equal(t, entity.TxStatusSuccess, rec.Status)
	assert.Equal(t, uint64(12), rec.BlockNumber)
	assert.Equal(t, uint64(21000), rec.GasUsed)
	assert.Equal(t, "42000000000000", rec.Fee.String())
	assert.Equal(t, uint64(1700000120), rec.Timestamp)
}

func TestGetTransactionNotFound(t *testing.T) {
	svc := newTestReadService(newFakeReader())
	_, err := svc.GetTransaction(context.Background(),
		"0x00000000000000000000000000000000000000000000000000000000000000ff", "sei")

	var nodeCommErr *entity.NodeCommunicationError
	assert.True(t, errors.As(err, &nodeCommErr))
}

func TestIsContract(t *testing.T) {
	reader := newFakeReader()
	deployed := common.HexToAddress("0x00000000000000000000000000000000000000cc")
	reader.code[deployed] = []byte{0x60, 0x80}

	svc := newTestReadService(reader)

	isContract, err := svc.IsContract(context.Background(), deployed.Hex(), "sei")
	require.NoError(t, err)
	assert.True(t, isContract)

	isContract, err = svc.IsContract(context.Background(), testAddressHex, "sei")
	require.NoError(t, err)
	assert.False(t, isContract)
}

func TestReadContract(t *testing.T) {
	reader := newFakeReader()
	// a uint256 result of 42, ABI-encoded
	reader.callResult = common.LeftPadBytes(big.NewInt(42).Bytes(), 32)

	svc := newTestReadService(reader)
	abiJSON := `[{"name":"totalSupply","type":"function","inputs":[],"outputs":[{"name":"","type":"uint256"}]}]`

	out, err := svc.ReadContract(context.Background(),
		"0x00000000000000000000000000000000000000cc", abiJSON, "totalSupply", nil, "sei")
	require.NoError(t, err)
	assert.Equal(t, "42", out)
}

func TestReadContractBadABI(t *testing.T) {
	svc := newTestReadService(newFakeReader())
	_, err := svc.ReadContract(context.Background(),
		"0x00000000000000000000000000000000000000cc", `{"broken`, "totalSupply", nil, "sei")

	var valErr *entity.ValidationError
	assert.True(t, errors.As(err, &valErr))
}
