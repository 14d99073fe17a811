package service

import (
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/souvik0908/sei-sense/internal/domain/entity"
	"github.com/souvik0908/sei-sense/internal/pkg/validation"
)

// packCallData parses an ABI fragment, coerces JSON-decoded arguments into
// the representations the ABI encoder expects and packs the calldata. Every
// failure here is bad caller input, never a node problem.
func packCallData(abiJSON, function string, args []any) (*abi.ABI, []byte, error) {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, nil, &entity.ValidationError{Field: "abi", Msg: "malformed ABI JSON", Cause: err}
	}
	method, ok := parsed.Methods[function]
	if !ok {
		return nil, nil, &entity.ValidationError{Field: "function", Msg: fmt.Sprintf("function %q not found in ABI", function)}
	}
	if len(args) != len(method.Inputs) {
		return nil, nil, &entity.ValidationError{
			Field: "args",
			Msg:   fmt.Sprintf("function %q expects %d arguments, got %d", function, len(method.Inputs), len(args)),
		}
	}

	coerced := make([]any, len(args))
	for i, input := range method.Inputs {
		v, err := coerceABIArg(input.Type, args[i])
		if err != nil {
			return nil, nil, &entity.ValidationError{Field: fmt.Sprintf("args[%d]", i), Msg: err.Error()}
		}
		coerced[i] = v
	}

	data, err := parsed.Pack(function, coerced...)
	if err != nil {
		return nil, nil, &entity.ValidationError{Field: "args", Msg: "arguments do not match the ABI", Cause: err}
	}
	return &parsed, data, nil
}

// coerceABIArg converts one JSON-decoded value to the Go type the ABI
// encoder expects for the given Solidity type.
func coerceABIArg(t abi.Type, v any) (any, error) {
	switch t.T {
	case abi.AddressTy:
		s, ok := v.(string)
		if !ok || !validation.IsHexAddress(s) {
			return nil, fmt.Errorf("expected a hex address, got %v", v)
		}
		return common.HexToAddress(s), nil

	case abi.UintTy:
		n, err := toBigInt(v)
		if err != nil {
			return nil, err
		}
		if n.Sign() < 0 {
			return nil, fmt.Errorf("negative value %s for uint%d", n, t.Size)
		}
		if n.BitLen() > t.Size {
			return nil, fmt.Errorf("value %s overflows uint%d", n, t.Size)
		}
		switch t.Size {
		case 8:
			return uint8(n.Uint64()), nil
		case 16:
			return uint16(n.Uint64()), nil
		case 32:
			return uint32(n.Uint64()), nil
		case 64:
			return n.Uint64(), nil
		default:
			return n, nil
		}

	case abi.IntTy:
		n, err := toBigInt(v)
		if err != nil {
			return nil, err
		}
		limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
		if n.Cmp(new(big.Int).Neg(limit)) < 0 || n.Cmp(limit) >= 0 {
			return nil, fmt.Errorf("value %s overflows int%d", n, t.Size)
		}
		switch t.Size {
		case 8:
			return int8(n.Int64()), nil
		case 16:
			return int16(n.Int64()), nil
		case 32:
			return int32(n.Int64()), nil
		case 64:
			return n.Int64(), nil
		default:
			return n, nil
		}

	case abi.BoolTy:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("expected a boolean, got %v", v)
		}
		return b, nil

	case abi.StringTy:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected a string, got %v", v)
		}
		return s, nil

	case abi.BytesTy:
		raw, err := toBytes(v)
		if err != nil {
			return nil, err
		}
		return raw, nil

	case abi.FixedBytesTy:
		raw, err := toBytes(v)
		if err != nil {
			return nil, err
		}
		if len(raw) != t.Size {
			return nil, fmt.Errorf("expected %d bytes, got %d", t.Size, len(raw))
		}
		arr := reflect.New(t.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(raw))
		return arr.Interface(), nil

	case abi.SliceTy:
		items, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("expected an array, got %v", v)
		}
		out := reflect.MakeSlice(t.GetType(), len(items), len(items))
		for i, item := range items {
			elem, err := coerceABIArg(*t.Elem, item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %v", i, err)
			}
			out.Index(i).Set(reflect.ValueOf(elem))
		}
		return out.Interface(), nil

	case abi.ArrayTy:
		items, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("expected an array, got %v", v)
		}
		if len(items) != t.Size {
			return nil, fmt.Errorf("expected %d elements, got %d", t.Size, len(items))
		}
		out := reflect.New(t.GetType()).Elem()
		for i, item := range items {
			elem, err := coerceABIArg(*t.Elem, item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %v", i, err)
			}
			out.Index(i).Set(reflect.ValueOf(elem))
		}
		return out.Interface(), nil

	default:
		return nil, fmt.Errorf("solidity type %s is not supported as a call argument", t.String())
	}
}

// toBigInt accepts the numeric shapes JSON decoding produces: float64 from
// number literals and strings for values beyond float precision.
func toBigInt(v any) (*big.Int, error) {
	switch n := v.(type) {
	case float64:
		f := new(big.Float).SetFloat64(n)
		if !f.IsInt() {
			return nil, fmt.Errorf("expected an integer, got %v", n)
		}
		i, _ := f.Int(nil)
		return i, nil
	case string:
		s := strings.TrimSpace(n)
		base := 10
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			s, base = s[2:], 16
		}
		i, ok := new(big.Int).SetString(s, base)
		if !ok {
			return nil, fmt.Errorf("expected an integer, got %q", n)
		}
		return i, nil
	case int:
		return big.NewInt(int64(n)), nil
	case int64:
		return big.NewInt(n), nil
	case uint64:
		return new(big.Int).SetUint64(n), nil
	case *big.Int:
		return n, nil
	default:
		return nil, fmt.Errorf("expected an integer, got %T", v)
	}
}

func toBytes(v any) ([]byte, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("expected a 0x-prefixed hex string, got %v", v)
	}
	raw, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("expected a 0x-prefixed hex string: %v", err)
	}
	return raw, nil
}
