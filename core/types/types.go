package types

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// AddressLength is the expected length of an account address in bytes.
const AddressLength = 20

// LockReasonLength is the expected length of a lock reason tag in bytes.
const LockReasonLength = 32

// AddressPrefix is prepended to the hex form of an address.
const AddressPrefix = "Vx"

// LockReasonPrefix is prepended to the hex form of a lock reason.
const LockReasonPrefix = "Vr"

// Address represents the 20-byte identifier of an account.
type Address [AddressLength]byte

// BytesToAddress converts given byte slice to Address
func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

// HexToAddress converts given hex string with Vx prefix to Address
func HexToAddress(s string) Address {
	return BytesToAddress(fromHex(s, AddressPrefix))
}

// StringToAddress converts given string to Address
func StringToAddress(s string) Address {
	return BytesToAddress([]byte(s))
}

// SetBytes sets the address to the value of b, keeping the rightmost
// 20 bytes if b is longer.
func (a *Address) SetBytes(b []byte) {
	if len(b) > len(a) {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
}

// Bytes returns the raw bytes of the address
func (a Address) Bytes() []byte { return a[:] }

// String implements fmt.Stringer.
func (a Address) String() string {
	return AddressPrefix + hex.EncodeToString(a[:])
}

// Compare returns an integer comparing two addresses lexicographically.
func (a Address) Compare(a2 Address) int {
	return bytes.Compare(a.Bytes(), a2.Bytes())
}

// IsZero reports whether the address is the null identifier.
func (a Address) IsZero() bool {
	return a == Address{}
}

// MarshalJSON encodes the address as a prefixed hex string.
func (a Address) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", a.String())), nil
}

// UnmarshalJSON parses an address from its prefixed hex form.
func (a *Address) UnmarshalJSON(input []byte) error {
	b, err := unmarshalFixedJSON(input, AddressPrefix, AddressLength)
	if err != nil {
		return err
	}

	a.SetBytes(b)
	return nil
}

// LockReason is an opaque 32-byte tag distinguishing independent locks
// placed on the same account.
type LockReason [LockReasonLength]byte

// BytesToLockReason converts given byte slice to LockReason
func BytesToLockReason(b []byte) LockReason {
	var r LockReason
	if len(b) > len(r) {
		b = b[len(b)-LockReasonLength:]
	}
	copy(r[LockReasonLength-len(b):], b)
	return r
}

// HexToLockReason converts given hex string with Vr prefix to LockReason
func HexToLockReason(s string) LockReason {
	return BytesToLockReason(fromHex(s, LockReasonPrefix))
}

// StrToLockReason constructs a reason tag from an ASCII label,
// padding with zero bytes.
func StrToLockReason(s string) LockReason {
	var r LockReason
	copy(r[:], s)
	return r
}

// Bytes returns the raw bytes of the reason
func (r LockReason) Bytes() []byte { return r[:] }

// String implements fmt.Stringer.
func (r LockReason) String() string {
	return LockReasonPrefix + hex.EncodeToString(r[:])
}

// Compare returns an integer comparing two reasons lexicographically.
func (r LockReason) Compare(r2 LockReason) int {
	return bytes.Compare(r.Bytes(), r2.Bytes())
}

// MarshalJSON encodes the reason as a prefixed hex string.
func (r LockReason) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", r.String())), nil
}

// UnmarshalJSON parses a reason from its prefixed hex form.
func (r *LockReason) UnmarshalJSON(input []byte) error {
	b, err := unmarshalFixedJSON(input, LockReasonPrefix, LockReasonLength)
	if err != nil {
		return err
	}

	*r = BytesToLockReason(b)
	return nil
}

func fromHex(s string, prefix string) []byte {
	if len(s) >= len(prefix) && s[:len(prefix)] == prefix {
		s = s[len(prefix):]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, _ := hex.DecodeString(s)
	return b
}

func unmarshalFixedJSON(input []byte, prefix string, length int) ([]byte, error) {
	if len(input) < 2 || input[0] != '"' || input[len(input)-1] != '"' {
		return nil, fmt.Errorf("non-string value %s", input)
	}

	s := string(input[1 : len(input)-1])
	if len(s) < len(prefix) || s[:len(prefix)] != prefix {
		return nil, fmt.Errorf("missing %s prefix in %q", prefix, s)
	}

	b, err := hex.DecodeString(s[len(prefix):])
	if err != nil {
		return nil, err
	}
	if len(b) != length {
		return nil, fmt.Errorf("wrong length %d, want %d", len(b), length)
	}

	return b, nil
}
