package helpers

import (
	"fmt"
	"math/big"
)

// TokensToUnits converts whole tokens to base units (multiplies input by 1e18)
func TokensToUnits(tokens *big.Int) *big.Int {
	u := big.NewInt(10)
	u.Exp(u, big.NewInt(18), nil)
	u.Mul(u, tokens)

	return u
}

// StringToBigInt converts string to BigInt, panics on empty strings and errors
func StringToBigInt(s string) *big.Int {
	b, err := stringToBigInt(s)
	if err != nil {
		panic(err)
	}

	return b
}

func stringToBigInt(s string) (*big.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("string is empty")
	}

	b, success := big.NewInt(0).SetString(s, 10)
	if !success {
		return nil, fmt.Errorf("cannot decode %s into big.Int", s)
	}

	return b, nil
}

// IsValidBigInt verifies that string is a valid non-negative int
func IsValidBigInt(s string) bool {
	if s == "" {
		return false
	}

	b, success := big.NewInt(0).SetString(s, 10)
	if !success {
		return false
	}

	if b.Cmp(big.NewInt(0)) == -1 {
		return false
	}

	return true
}
