package state

import (
	"encoding/json"
	"math/big"
	"testing"

	db "github.com/tendermint/tm-db"

	eventsdb "github.com/tokenvault/tokenvault-go/core/events"
	"github.com/tokenvault/tokenvault-go/core/types"
)

func getState() *State {
	s, err := NewState(0, db.NewMemDB(), eventsdb.MockEvents{}, 1, 1, 0)
	if err != nil {
		panic(err)
	}

	return s
}

func checkState(cState *State) error {
	if _, err := cState.Commit(); err != nil {
		return err
	}

	exportedState := cState.Export()
	if err := exportedState.Verify(); err != nil {
		return err
	}

	return nil
}

func testGenesis() types.AppState {
	return types.AppState{
		Owner: types.Address{10},
		Token: types.Token{
			Name:      "Vault Token",
			Symbol:    "VAULT",
			Volume:    "300",
			MaxSupply: "1000",
			Mintable:  true,
			Burnable:  true,
		},
		Accounts: []types.Account{
			{Address: types.Address{1}, Balance: "100"},
			{Address: types.Address{2}, Balance: "150", Frozen: true},
		},
		Locks: []types.Lock{
			{Address: types.Address{1}, Reason: types.StrToLockReason("vesting"), Value: "50", Release: 1000},
		},
	}
}

func TestStateImportExportRoundTrip(t *testing.T) {
	t.Parallel()
	s := getState()

	genesis := testGenesis()
	if err := genesis.Verify(); err != nil {
		t.Fatal(err)
	}
	if err := s.Import(genesis); err != nil {
		t.Fatal(err)
	}

	// the snapshot conserves funds: 100 + 150 + 50 == 300
	if err := s.Check(); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Commit(); err != nil {
		t.Fatal(err)
	}

	exported := s.Export()

	got, err := json.Marshal(exported)
	if err != nil {
		t.Fatal(err)
	}
	want, err := json.Marshal(genesis)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(want) {
		t.Fatalf("exported state differs:\n%s\n%s", got, want)
	}
}

func TestStateBalanceProjections(t *testing.T) {
	t.Parallel()
	s := getState()
	cState := NewCheckState(s)

	addr := types.Address{1}
	reason := types.StrToLockReason("vesting")

	s.App.SetOwner(types.Address{9})
	s.Token.Create("Vault Token", "VAULT", big.NewInt(0), big.NewInt(0), true, true)
	s.Token.AddVolume(big.NewInt(200))
	s.Accounts.AddBalance(addr, big.NewInt(200))

	s.Accounts.SubBalance(addr, big.NewInt(100))
	s.Locks.Lock(addr, reason, big.NewInt(100), 3600)

	// before release the locked share is invisible to the spendable view
	if cState.BalanceOf(addr, 0).Cmp(big.NewInt(100)) != 0 {
		t.Fatal("spendable balance must exclude locked funds")
	}
	if cState.TotalBalanceOf(addr).Cmp(big.NewInt(200)) != 0 {
		t.Fatal("total balance must include locked funds")
	}

	// past release the projection includes the matured lock without any
	// explicit unlock call and without mutating state
	if cState.BalanceOf(addr, 3600).Cmp(big.NewInt(200)) != 0 {
		t.Fatal("spendable balance must include matured locks")
	}
	if s.Accounts.GetBalance(addr).Cmp(big.NewInt(100)) != 0 {
		t.Fatal("projection must not mutate the raw balance")
	}
	if cState.TotalBalanceOf(addr).Cmp(big.NewInt(200)) != 0 {
		t.Fatal("total balance is time-independent")
	}

	if err := s.Check(); err != nil {
		t.Fatal(err)
	}
	if err := checkState(s); err != nil {
		t.Error(err)
	}
}

func TestStatePersistsAcrossReload(t *testing.T) {
	t.Parallel()
	memDB := db.NewMemDB()

	s, err := NewState(0, memDB, eventsdb.MockEvents{}, 1024, 10, 0)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Import(testGenesis()); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Commit(); err != nil {
		t.Fatal(err)
	}

	height := uint64(s.Tree().Version())

	reloaded, err := NewState(height, memDB, eventsdb.MockEvents{}, 1024, 10, 0)
	if err != nil {
		t.Fatal(err)
	}

	cState := NewCheckState(reloaded)
	if cState.Accounts().GetBalance(types.Address{1}).Cmp(big.NewInt(100)) != 0 {
		t.Fatal("balance lost on reload")
	}
	if !cState.Accounts().IsFrozen(types.Address{2}) {
		t.Fatal("frozen flag lost on reload")
	}
	if cState.Locks().TokensLocked(types.Address{1}, types.StrToLockReason("vesting")).Cmp(big.NewInt(50)) != 0 {
		t.Fatal("lock lost on reload")
	}
	if cState.Token().Volume().Cmp(big.NewInt(300)) != 0 {
		t.Fatal("token volume lost on reload")
	}
	if cState.App().Owner() != (types.Address{10}) {
		t.Fatal("owner lost on reload")
	}
}

func TestCheckStateAtHeight(t *testing.T) {
	t.Parallel()
	memDB := db.NewMemDB()

	s, err := NewState(0, memDB, eventsdb.MockEvents{}, 1024, 10, 0)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Import(testGenesis()); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Commit(); err != nil {
		t.Fatal(err)
	}

	cState, err := NewCheckStateAtHeight(uint64(s.Tree().Version()), memDB)
	if err != nil {
		t.Fatal(err)
	}

	if cState.Accounts().GetBalance(types.Address{2}).Cmp(big.NewInt(150)) != 0 {
		t.Fatal("balance not visible at committed height")
	}
}
