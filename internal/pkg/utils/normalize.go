package utils

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// NormalizeValue converts a decoded contract-call result into a form that
// serializes cleanly: big integers become decimal strings, addresses and
// hashes become hex strings, byte slices become 0x-prefixed hex. Slices,
// arrays, maps and tuple structs are converted recursively.
func NormalizeValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case *big.Int:
		if val == nil {
			return nil
		}
		return val.String()
	case big.Int:
		return val.String()
	case common.Address:
		return val.Hex()
	case *common.Address:
		if val == nil {
			return nil
		}
		return val.Hex()
	case common.Hash:
		return val.Hex()
	case []byte:
		return hexutil.Encode(val)
	case bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return val
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return nil
		}
		return NormalizeValue(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		// Fixed-size byte arrays (bytes32 and friends) read better as hex.
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			for i := 0; i < rv.Len(); i++ {
				b[i] = byte(rv.Index(i).Uint())
			}
			return hexutil.Encode(b)
		}
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = NormalizeValue(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		for _, key := range rv.MapKeys() {
			out[fmt.Sprintf("%v", key.Interface())] = NormalizeValue(rv.MapIndex(key).Interface())
		}
		return out
	case reflect.Struct:
		// ABI tuples decode into anonymous structs.
		out := make(map[string]any, rv.NumField())
		for i := 0; i < rv.NumField(); i++ {
			field := rv.Type().Field(i)
			if !field.IsExported() {
				continue
			}
			out[field.Name] = NormalizeValue(rv.Field(i).Interface())
		}
		return out
	}
	return v
}

// NormalizeValues applies NormalizeValue to every element of a result set.
func NormalizeValues(values []any) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = NormalizeValue(v)
	}
	return out
}
