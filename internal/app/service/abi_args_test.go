package service

import (
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souvik0908/sei-sense/internal/domain/entity"
)

func mustABIType(t *testing.T, solidity string) abi.Type {
	t.Helper()
	typ, err := abi.NewType(solidity, "", nil)
	require.NoError(t, err)
	return typ
}

const erc20TransferABI = `[{"name":"transfer","type":"function","inputs":[` +
	`{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],` +
	`"outputs":[{"name":"","type":"bool"}]}]`

func TestPackCallDataTransfer(t *testing.T) {
	_, data, err := packCallData(erc20TransferABI, "transfer",
		[]any{"0x000000000000000000000000000000000000dEaD", "1000000"})
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(data), 4)
	assert.Equal(t, "a9059cbb", hex.EncodeToString(data[:4]))
	assert.Len(t, data, 4+32+32)
}

func TestPackCallDataRejectsBadInput(t *testing.T) {
	tests := []struct {
		name     string
		abiJSON  string
		function string
		args     []any
	}{
		{
			name:     "malformed ABI JSON",
			abiJSON:  `[{"name":"transfer","type":`,
			function: "transfer",
			args:     []any{},
		},
		{
			name:     "unknown function",
			abiJSON:  erc20TransferABI,
			function: "approve",
			args:     []any{"0x000000000000000000000000000000000000dEaD", "1"},
		},
		{
			name:     "wrong argument count",
			abiJSON:  erc20TransferABI,
			function: "transfer",
			args:     []any{"0x000000000000000000000000000000000000dEaD"},
		},
		{
			name:     "argument of the wrong shape",
			abiJSON:  erc20TransferABI,
			function: "transfer",
			args:     []any{"not-an-address", "1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := packCallData(tt.abiJSON, tt.function, tt.args)
			var valErr *entity.ValidationError
			assert.True(t, errors.As(err, &valErr), "expected a validation error, got %v", err)
		})
	}
}

func TestCoerceABIArgNumbers(t *testing.T) {
	uint256Type := mustABIType(t, "uint256")
	uint8Type := mustABIType(t, "uint8")
	int64Type := mustABIType(t, "int64")

	t.Run("json number", func(t *testing.T) {
		v, err := coerceABIArg(uint256Type, float64(42))
		require.NoError(t, err)
		assert.Equal(t, 0, v.(*big.Int).Cmp(big.NewInt(42)))
	})

	t.Run("decimal string", func(t *testing.T) {
		v, err := coerceABIArg(uint256Type, "115792089237316195423570985008687907853269984665640564039457584007913129639935")
		require.NoError(t, err)
		assert.Equal(t, 256, v.(*big.Int).BitLen())
	})

	t.Run("hex string", func(t *testing.T) {
		v, err := coerceABIArg(uint256Type, "0xff")
		require.NoError(t, err)
		assert.Equal(t, 0, v.(*big.Int).Cmp(big.NewInt(255)))
	})

	t.Run("small uint narrows", func(t *testing.T) {
		v, err := coerceABIArg(uint8Type, float64(200))
		require.NoError(t, err)
		assert.Equal(t, uint8(200), v)
	})

	t.Run("uint8 overflow", func(t *testing.T) {
		_, err := coerceABIArg(uint8Type, float64(300))
		assert.Error(t, err)
	})

	t.Run("negative uint", func(t *testing.T) {
		_, err := coerceABIArg(uint256Type, float64(-1))
		assert.Error(t, err)
	})

	t.Run("fractional number", func(t *testing.T) {
		_, err := coerceABIArg(uint256Type, float64(1.5))
		assert.Error(t, err)
	})

	t.Run("signed range", func(t *testing.T) {
		v, err := coerceABIArg(int64Type, float64(-7))
		require.NoError(t, err)
		assert.Equal(t, int64(-7), v)
	})
}

func TestCoerceABIArgOtherTypes(t *testing.T) {
	t.Run("bool", func(t *testing.T) {
		v, err := coerceABIArg(mustABIType(t, "bool"), true)
		require.NoError(t, err)
		assert.Equal(t, true, v)
	})

	t.Run("string", func(t *testing.T) {
		v, err := coerceABIArg(mustABIType(t, "string"), "hello")
		require.NoError(t, err)
		assert.Equal(t, "hello", v)
	})

	t.Run("bytes", func(t *testing.T) {
		v, err := coerceABIArg(mustABIType(t, "bytes"), "0xdeadbeef")
		require.NoError(t, err)
		assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, v)
	})

	t.Run("bytes4", func(t *testing.T) {
		v, err := coerceABIArg(mustABIType(t, "bytes4"), "0xa9059cbb")
		require.NoError(t, err)
		assert.Equal(t, [4]byte{0xa9, 0x05, 0x9c, 0xbb}, v)
	})

	t.Run("bytes4 length mismatch", func(t *testing.T) {
		_, err := coerceABIArg(mustABIType(t, "bytes4"), "0xa9")
		assert.Error(t, err)
	})

	t.Run("address slice", func(t *testing.T) {
		v, err := coerceABIArg(mustABIType(t, "address[]"),
			[]any{"0x000000000000000000000000000000000000dEaD"})
		require.NoError(t, err)
		assert.Len(t, v, 1)
	})

	t.Run("slice wants an array", func(t *testing.T) {
		_, err := coerceABIArg(mustABIType(t, "address[]"), "0x000000000000000000000000000000000000dEaD")
		assert.Error(t, err)
	})
}
