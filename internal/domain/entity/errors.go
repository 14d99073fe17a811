package entity

import "fmt"

// InvalidAddressError is returned when an account or contract address fails
// validation before any network call is made.
type InvalidAddressError struct {
	Address string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid address: %s", e.Address)
}

// InvalidKeyError is returned when the configured signing key cannot be
// parsed into a usable private key.
type InvalidKeyError struct {
	Cause error
}

func (e *InvalidKeyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid signing key: %v", e.Cause)
	}
	return "invalid signing key"
}

func (e *InvalidKeyError) Unwrap() error { return e.Cause }

// UnsupportedNetworkError is returned by the strict network lookup path when
// a name resolves to no known network.
type UnsupportedNetworkError struct {
	Network string
}

func (e *UnsupportedNetworkError) Error() string {
	return fmt.Sprintf("unsupported network: %s", e.Network)
}

// NodeCommunicationError wraps any failure of an RPC node interaction,
// preserving the node's message and the operation that triggered it.
type NodeCommunicationError struct {
	Network string
	Op      string
	Cause   error
}

func (e *NodeCommunicationError) Error() string {
	return fmt.Sprintf("node communication failed on %s during %s: %v", e.Network, e.Op, e.Cause)
}

func (e *NodeCommunicationError) Unwrap() error { return e.Cause }

// ValidationError is returned when request input other than an address is
// malformed: unparseable amounts, bad ABI fragments, out-of-range arguments.
type ValidationError struct {
	Field string
	Msg   string
	Cause error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Msg)
	}
	return fmt.Sprintf("validation failed: %s", e.Msg)
}

func (e *ValidationError) Unwrap() error { return e.Cause }
