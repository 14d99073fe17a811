package validation

import (
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/souvik0908/sei-sense/internal/domain/entity"
)

// Accounts are addressable in two forms: the EVM hex form and the native
// bech32 account form. Only the hex form can be used for EVM calls.
var (
	hexAddressPattern    = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	bech32AddressPattern = regexp.MustCompile(`^sei1[ac-hj-np-z02-9]{38}$`)
)

// ValidateAddress checks that addr is a well-formed account address in
// either supported form and returns it unchanged.
func ValidateAddress(addr string) (string, error) {
	if IsHexAddress(addr) || IsBech32Address(addr) {
		return addr, nil
	}
	return "", &entity.InvalidAddressError{Address: addr}
}

// IsHexAddress reports whether addr is a 0x-prefixed 20-byte hex address.
func IsHexAddress(addr string) bool {
	return hexAddressPattern.MatchString(addr)
}

// IsBech32Address reports whether addr is a native bech32 account address.
func IsBech32Address(addr string) bool {
	return bech32AddressPattern.MatchString(strings.ToLower(addr))
}

// RequireHexAddress validates addr and returns it as a checksummed EVM
// address. Bech32 addresses are rejected here: they cannot be used in EVM
// calls without an association lookup.
func RequireHexAddress(addr string) (common.Address, error) {
	if !IsHexAddress(addr) {
		return common.Address{}, &entity.InvalidAddressError{Address: addr}
	}
	return common.HexToAddress(addr), nil
}

// ValidateHash checks that h is a well-formed 32-byte transaction or block
// hash.
func ValidateHash(h string) (common.Hash, error) {
	if !hashPattern.MatchString(h) {
		return common.Hash{}, &entity.ValidationError{Field: "hash", Msg: "expected a 0x-prefixed 32-byte hex hash"}
	}
	return common.HexToHash(h), nil
}

var hashPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)
