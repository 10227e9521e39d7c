package code

import (
	"strconv"
)

// Codes for operation check and deliver responses
const (
	// general
	OK                    uint32 = 0
	Unauthorized          uint32 = 101
	SystemPaused          uint32 = 102
	AccountFrozen         uint32 = 103
	NullAddress           uint32 = 104
	ZeroAmount            uint32 = 105
	InsufficientFunds     uint32 = 106
	InsufficientAllowance uint32 = 107
	InvalidBatchLength    uint32 = 108
	UnknownOperation      uint32 = 109

	// locks
	LockAlreadyActive uint32 = 201
	NoActiveLock      uint32 = 202

	// token emission
	TokenNotMintable uint32 = 301
	TokenNotBurnable uint32 = 302
	SupplyOverflow   uint32 = 303
)

// Roles of an address within a transfer, used to parameterize
// AccountFrozen errors.
const (
	RoleSender   = "sender"
	RoleReceiver = "receiver"
	RoleSpender  = "spender"
)

type unauthorized struct {
	Code   string `json:"code,omitempty"`
	Caller string `json:"caller,omitempty"`
	Owner  string `json:"owner,omitempty"`
}

func NewUnauthorized(caller, owner string) *unauthorized {
	return &unauthorized{Code: strconv.Itoa(int(Unauthorized)), Caller: caller, Owner: owner}
}

type systemPaused struct {
	Code string `json:"code,omitempty"`
}

func NewSystemPaused() *systemPaused {
	return &systemPaused{Code: strconv.Itoa(int(SystemPaused))}
}

type accountFrozen struct {
	Code    string `json:"code,omitempty"`
	Address string `json:"address,omitempty"`
	Role    string `json:"role,omitempty"`
}

func NewAccountFrozen(address, role string) *accountFrozen {
	return &accountFrozen{Code: strconv.Itoa(int(AccountFrozen)), Address: address, Role: role}
}

type nullAddress struct {
	Code string `json:"code,omitempty"`
}

func NewNullAddress() *nullAddress {
	return &nullAddress{Code: strconv.Itoa(int(NullAddress))}
}

type zeroAmount struct {
	Code string `json:"code,omitempty"`
}

func NewZeroAmount() *zeroAmount {
	return &zeroAmount{Code: strconv.Itoa(int(ZeroAmount))}
}

type insufficientFunds struct {
	Code        string `json:"code,omitempty"`
	Address     string `json:"address,omitempty"`
	NeededValue string `json:"needed_value,omitempty"`
	Available   string `json:"available,omitempty"`
}

func NewInsufficientFunds(address, neededValue, available string) *insufficientFunds {
	return &insufficientFunds{Code: strconv.Itoa(int(InsufficientFunds)), Address: address, NeededValue: neededValue, Available: available}
}

type insufficientAllowance struct {
	Code        string `json:"code,omitempty"`
	Owner       string `json:"owner,omitempty"`
	Spender     string `json:"spender,omitempty"`
	NeededValue string `json:"needed_value,omitempty"`
	Allowance   string `json:"allowance,omitempty"`
}

func NewInsufficientAllowance(owner, spender, neededValue, allowance string) *insufficientAllowance {
	return &insufficientAllowance{Code: strconv.Itoa(int(InsufficientAllowance)), Owner: owner, Spender: spender, NeededValue: neededValue, Allowance: allowance}
}

type invalidBatchLength struct {
	Code string `json:"code,omitempty"`
}

func NewInvalidBatchLength() *invalidBatchLength {
	return &invalidBatchLength{Code: strconv.Itoa(int(InvalidBatchLength))}
}

type unknownOperation struct {
	Code string `json:"code,omitempty"`
	Type string `json:"type,omitempty"`
}

func NewUnknownOperation(opType string) *unknownOperation {
	return &unknownOperation{Code: strconv.Itoa(int(UnknownOperation)), Type: opType}
}

type lockAlreadyActive struct {
	Code    string `json:"code,omitempty"`
	Address string `json:"address,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Index   string `json:"index,omitempty"`
}

func NewLockAlreadyActive(address, reason string) *lockAlreadyActive {
	return &lockAlreadyActive{Code: strconv.Itoa(int(LockAlreadyActive)), Address: address, Reason: reason}
}

// NewBatchLockAlreadyActive carries the index of the failing batch element.
func NewBatchLockAlreadyActive(address, reason string, index int) *lockAlreadyActive {
	return &lockAlreadyActive{Code: strconv.Itoa(int(LockAlreadyActive)), Address: address, Reason: reason, Index: strconv.Itoa(index)}
}

type noActiveLock struct {
	Code    string `json:"code,omitempty"`
	Address string `json:"address,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

func NewNoActiveLock(address, reason string) *noActiveLock {
	return &noActiveLock{Code: strconv.Itoa(int(NoActiveLock)), Address: address, Reason: reason}
}

type tokenNotMintable struct {
	Code   string `json:"code,omitempty"`
	Symbol string `json:"symbol,omitempty"`
}

func NewTokenNotMintable(symbol string) *tokenNotMintable {
	return &tokenNotMintable{Code: strconv.Itoa(int(TokenNotMintable)), Symbol: symbol}
}

type tokenNotBurnable struct {
	Code   string `json:"code,omitempty"`
	Symbol string `json:"symbol,omitempty"`
}

func NewTokenNotBurnable(symbol string) *tokenNotBurnable {
	return &tokenNotBurnable{Code: strconv.Itoa(int(TokenNotBurnable)), Symbol: symbol}
}

type supplyOverflow struct {
	Code      string `json:"code,omitempty"`
	Value     string `json:"value,omitempty"`
	Volume    string `json:"volume,omitempty"`
	MaxSupply string `json:"max_supply,omitempty"`
}

func NewSupplyOverflow(value, volume, maxSupply string) *supplyOverflow {
	return &supplyOverflow{Code: strconv.Itoa(int(SupplyOverflow)), Value: value, Volume: volume, MaxSupply: maxSupply}
}
