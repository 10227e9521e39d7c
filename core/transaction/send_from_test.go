package transaction

import (
	"math/big"
	"testing"

	"github.com/tokenvault/tokenvault-go/core/code"
	"github.com/tokenvault/tokenvault-go/core/types"
)

func TestSendFromTx(t *testing.T) {
	t.Parallel()
	cState := getState()

	spender := types.Address{5}
	to := types.Address{6}

	approve := NewTransaction(holder, ApproveData{Spender: spender, Value: big.NewInt(100)})
	if response := NewExecutor().RunTx(cState, approve, 0); response.Code != 0 {
		t.Fatalf("response code is not 0. Error: %s", response.Log)
	}

	tx := NewTransaction(spender, SendFromData{From: holder, To: to, Value: big.NewInt(60)})
	if response := NewExecutor().RunTx(cState, tx, 0); response.Code != 0 {
		t.Fatalf("response code is not 0. Error: %s", response.Log)
	}

	if cState.Accounts.GetBalance(holder).Cmp(big.NewInt(4940)) != 0 {
		t.Fatal("sender balance is not correct")
	}
	if cState.Accounts.GetBalance(to).Cmp(big.NewInt(60)) != 0 {
		t.Fatal("receiver balance is not correct")
	}
	if cState.Accounts.GetAllowance(holder, spender).Cmp(big.NewInt(40)) != 0 {
		t.Fatal("allowance is not correct")
	}

	if err := checkState(cState); err != nil {
		t.Error(err)
	}
}

func TestSendFromInsufficientAllowance(t *testing.T) {
	t.Parallel()
	cState := getState()

	spender := types.Address{5}

	approve := NewTransaction(holder, ApproveData{Spender: spender, Value: big.NewInt(10)})
	if response := NewExecutor().RunTx(cState, approve, 0); response.Code != 0 {
		t.Fatalf("response code is not 0. Error: %s", response.Log)
	}

	tx := NewTransaction(spender, SendFromData{From: holder, To: types.Address{6}, Value: big.NewInt(11)})
	response := NewExecutor().RunTx(cState, tx, 0)
	if response.Code != code.InsufficientAllowance {
		t.Fatalf("response code is not %d, got %d", code.InsufficientAllowance, response.Code)
	}
}

func TestSendFromFrozenSpender(t *testing.T) {
	t.Parallel()
	cState := getState()

	spender := types.Address{5}
	cState.Accounts.SetAllowance(holder, spender, big.NewInt(100))
	cState.Accounts.SetFrozen(spender, true)

	tx := NewTransaction(spender, SendFromData{From: holder, To: types.Address{6}, Value: big.NewInt(10)})
	response := NewExecutor().RunTx(cState, tx, 0)
	if response.Code != code.AccountFrozen {
		t.Fatalf("response code is not %d, got %d", code.AccountFrozen, response.Code)
	}
}

func TestSendFromRealizesReceiverLocks(t *testing.T) {
	t.Parallel()
	cState := getState()

	spender := types.Address{5}
	to := types.Address{6}
	cState.Accounts.SetAllowance(holder, spender, big.NewInt(100))

	reason := types.StrToLockReason("grant")
	cState.Accounts.SubBalance(holder, big.NewInt(50))
	cState.Locks.Lock(to, reason, big.NewInt(50), 10)

	tx := NewTransaction(spender, SendFromData{From: holder, To: to, Value: big.NewInt(10)})
	if response := NewExecutor().RunTx(cState, tx, 20); response.Code != 0 {
		t.Fatalf("response code is not 0. Error: %s", response.Log)
	}

	if cState.Locks.TokensLocked(to, reason).Sign() != 0 {
		t.Fatal("receiver's matured lock must be claimed by the transfer")
	}
	if cState.Accounts.GetBalance(to).Cmp(big.NewInt(60)) != 0 {
		t.Fatal("receiver balance is not correct")
	}

	if err := checkState(cState); err != nil {
		t.Error(err)
	}
}

func TestApproveZeroRevokes(t *testing.T) {
	t.Parallel()
	cState := getState()

	spender := types.Address{5}
	cState.Accounts.SetAllowance(holder, spender, big.NewInt(100))

	tx := NewTransaction(holder, ApproveData{Spender: spender, Value: big.NewInt(0)})
	if response := NewExecutor().RunTx(cState, tx, 0); response.Code != 0 {
		t.Fatalf("response code is not 0. Error: %s", response.Log)
	}

	if cState.Accounts.GetAllowance(holder, spender).Sign() != 0 {
		t.Fatal("allowance must be revoked")
	}

	if err := checkState(cState); err != nil {
		t.Error(err)
	}
}
