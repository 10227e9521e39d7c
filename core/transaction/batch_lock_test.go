package transaction

import (
	"math/big"
	"strings"
	"testing"

	"github.com/tokenvault/tokenvault-go/core/code"
	"github.com/tokenvault/tokenvault-go/core/types"
)

func TestBatchLockTx(t *testing.T) {
	t.Parallel()
	cState := getState()

	a, b := types.Address{1}, types.Address{2}
	cState.Accounts.SubBalance(holder, big.NewInt(600))
	cState.Accounts.AddBalance(a, big.NewInt(300))
	cState.Accounts.AddBalance(b, big.NewInt(300))

	tx := NewTransaction(owner, BatchLockData{
		Addresses: []types.Address{a, b},
		Reasons:   []types.LockReason{types.StrToLockReason("v1"), types.StrToLockReason("v2")},
		Values:    []*big.Int{big.NewInt(100), big.NewInt(200)},
		Releases:  []uint64{1000, 2000},
	})

	response := NewExecutor().RunTx(cState, tx, 0)
	if response.Code != 0 {
		t.Fatalf("response code is not 0. Error: %s", response.Log)
	}

	if cState.Accounts.GetBalance(a).Cmp(big.NewInt(200)) != 0 {
		t.Fatal("first account balance is not correct")
	}
	if cState.Accounts.GetBalance(b).Cmp(big.NewInt(100)) != 0 {
		t.Fatal("second account balance is not correct")
	}
	if cState.Locks.TokensLocked(a, types.StrToLockReason("v1")).Cmp(big.NewInt(100)) != 0 {
		t.Fatal("first lock is not correct")
	}
	if cState.Locks.TokensLocked(b, types.StrToLockReason("v2")).Cmp(big.NewInt(200)) != 0 {
		t.Fatal("second lock is not correct")
	}

	if err := checkState(cState); err != nil {
		t.Error(err)
	}
}

func TestBatchLockLengthMismatch(t *testing.T) {
	t.Parallel()
	cState := getState()

	tx := NewTransaction(owner, BatchLockData{
		Addresses: []types.Address{holder},
		Reasons:   []types.LockReason{types.StrToLockReason("v1"), types.StrToLockReason("v2")},
		Values:    []*big.Int{big.NewInt(100)},
		Releases:  []uint64{1000},
	})
	if response := NewExecutor().RunTx(cState, tx, 0); response.Code != code.InvalidBatchLength {
		t.Fatalf("response code is not %d, got %d", code.InvalidBatchLength, response.Code)
	}

	empty := NewTransaction(owner, BatchLockData{})
	if response := NewExecutor().RunTx(cState, empty, 0); response.Code != code.InvalidBatchLength {
		t.Fatalf("response code is not %d, got %d", code.InvalidBatchLength, response.Code)
	}
}

// one bad element fails the whole batch; nothing moves and the log names
// the failing index
func TestBatchLockAtomicity(t *testing.T) {
	t.Parallel()
	cState := getState()

	a := types.Address{1}
	cState.Accounts.AddBalance(a, big.NewInt(100))
	cState.Token.AddVolume(big.NewInt(100))

	tx := NewTransaction(owner, BatchLockData{
		Addresses: []types.Address{a, a},
		Reasons:   []types.LockReason{types.StrToLockReason("v1"), types.StrToLockReason("v2")},
		Values:    []*big.Int{big.NewInt(80), big.NewInt(80)},
		Releases:  []uint64{1000, 1000},
	})

	// the second element exceeds what remains after the first
	response := NewExecutor().RunTx(cState, tx, 0)
	if response.Code != code.InsufficientFunds {
		t.Fatalf("response code is not %d, got %d", code.InsufficientFunds, response.Code)
	}
	if !strings.Contains(response.Log, "at index 1") {
		t.Fatalf("log must name the failing index, got %q", response.Log)
	}

	if cState.Accounts.GetBalance(a).Cmp(big.NewInt(100)) != 0 {
		t.Fatal("failed batch must not move funds")
	}
	if cState.Locks.TokensLocked(a, types.StrToLockReason("v1")).Sign() != 0 {
		t.Fatal("failed batch must not create locks")
	}
}

func TestBatchLockDuplicateReason(t *testing.T) {
	t.Parallel()
	cState := getState()

	reason := types.StrToLockReason("v1")
	tx := NewTransaction(owner, BatchLockData{
		Addresses: []types.Address{holder, holder},
		Reasons:   []types.LockReason{reason, reason},
		Values:    []*big.Int{big.NewInt(10), big.NewInt(10)},
		Releases:  []uint64{1000, 2000},
	})

	response := NewExecutor().RunTx(cState, tx, 0)
	if response.Code != code.LockAlreadyActive {
		t.Fatalf("response code is not %d, got %d", code.LockAlreadyActive, response.Code)
	}
	if !strings.Contains(response.Log, "at index 1") {
		t.Fatalf("log must name the failing index, got %q", response.Log)
	}
	if !strings.Contains(response.Info, `"index":"1"`) {
		t.Fatalf("error detail must carry the failing index, got %q", response.Info)
	}
}

func TestBatchLockFrozenTarget(t *testing.T) {
	t.Parallel()
	cState := getState()

	frozen := types.Address{3}
	cState.Accounts.AddBalance(frozen, big.NewInt(100))
	cState.Token.AddVolume(big.NewInt(100))
	cState.Accounts.SetFrozen(frozen, true)

	tx := NewTransaction(owner, BatchLockData{
		Addresses: []types.Address{holder, frozen},
		Reasons:   []types.LockReason{types.StrToLockReason("v1"), types.StrToLockReason("v2")},
		Values:    []*big.Int{big.NewInt(10), big.NewInt(10)},
		Releases:  []uint64{1000, 1000},
	})

	response := NewExecutor().RunTx(cState, tx, 0)
	if response.Code != code.AccountFrozen {
		t.Fatalf("response code is not %d, got %d", code.AccountFrozen, response.Code)
	}
	if cState.Locks.TokensLocked(holder, types.StrToLockReason("v1")).Sign() != 0 {
		t.Fatal("failed batch must not create locks")
	}
}

func TestBatchTransferWithLockTx(t *testing.T) {
	t.Parallel()
	cState := getState()

	a, b := types.Address{1}, types.Address{2}
	tx := NewTransaction(holder, BatchTransferWithLockData{
		Tos:      []types.Address{a, b},
		Reasons:  []types.LockReason{types.StrToLockReason("v1"), types.StrToLockReason("v2")},
		Values:   []*big.Int{big.NewInt(100), big.NewInt(200)},
		Releases: []uint64{1000, 2000},
	})

	response := NewExecutor().RunTx(cState, tx, 0)
	if response.Code != 0 {
		t.Fatalf("response code is not 0. Error: %s", response.Log)
	}

	if cState.Accounts.GetBalance(holder).Cmp(big.NewInt(4700)) != 0 {
		t.Fatal("sender balance is not correct")
	}
	if cState.Locks.TokensLocked(a, types.StrToLockReason("v1")).Cmp(big.NewInt(100)) != 0 {
		t.Fatal("first lock is not correct")
	}
	if cState.Locks.TokensLocked(b, types.StrToLockReason("v2")).Cmp(big.NewInt(200)) != 0 {
		t.Fatal("second lock is not correct")
	}

	if err := checkState(cState); err != nil {
		t.Error(err)
	}
}

// the sender must cover the sum of the whole batch
func TestBatchTransferWithLockTotalOverBalance(t *testing.T) {
	t.Parallel()
	cState := getState()

	tx := NewTransaction(holder, BatchTransferWithLockData{
		Tos:      []types.Address{{1}, {2}},
		Reasons:  []types.LockReason{types.StrToLockReason("v1"), types.StrToLockReason("v2")},
		Values:   []*big.Int{big.NewInt(3000), big.NewInt(3000)},
		Releases: []uint64{1000, 1000},
	})

	response := NewExecutor().RunTx(cState, tx, 0)
	if response.Code != code.InsufficientFunds {
		t.Fatalf("response code is not %d, got %d", code.InsufficientFunds, response.Code)
	}
	if cState.Locks.TokensLocked(types.Address{1}, types.StrToLockReason("v1")).Sign() != 0 {
		t.Fatal("failed batch must not create locks")
	}
}

func TestBatchTransferWithLockFrozenSender(t *testing.T) {
	t.Parallel()
	cState := getState()
	cState.Accounts.SetFrozen(holder, true)

	tx := NewTransaction(holder, BatchTransferWithLockData{
		Tos:      []types.Address{{1}},
		Reasons:  []types.LockReason{types.StrToLockReason("v1")},
		Values:   []*big.Int{big.NewInt(1)},
		Releases: []uint64{1000},
	})

	response := NewExecutor().RunTx(cState, tx, 0)
	if response.Code != code.AccountFrozen {
		t.Fatalf("response code is not %d, got %d", code.AccountFrozen, response.Code)
	}
}
