package types

import (
	"encoding/json"
	"testing"
)

func TestHexToAddress(t *testing.T) {
	t.Parallel()
	str := "Vx04bea23efb5f2f98822e7f6350103eb7f038b358"

	address := HexToAddress(str)
	if address.String() != str {
		t.Fatalf("address is not correct: %s", address.String())
	}
	if address.IsZero() {
		t.Fatal("address must not be zero")
	}
	if !(Address{}).IsZero() {
		t.Fatal("empty address must be zero")
	}
}

func TestAddressJSONRoundTrip(t *testing.T) {
	t.Parallel()
	address := HexToAddress("Vx04bea23efb5f2f98822e7f6350103eb7f038b358")

	data, err := json.Marshal(address)
	if err != nil {
		t.Fatal(err)
	}

	var decoded Address
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded != address {
		t.Fatal("decoded address differs")
	}

	if err := json.Unmarshal([]byte(`"04bea23efb5f2f98822e7f6350103eb7f038b358"`), &decoded); err == nil {
		t.Fatal("missing prefix must fail")
	}
	if err := json.Unmarshal([]byte(`"Vxff"`), &decoded); err == nil {
		t.Fatal("wrong length must fail")
	}
}

func TestStrToLockReason(t *testing.T) {
	t.Parallel()
	reason := StrToLockReason("vesting")
	same := StrToLockReason("vesting")
	other := StrToLockReason("grant")

	if reason.Compare(same) != 0 {
		t.Fatal("equal labels must compare equal")
	}
	if reason.Compare(other) == 0 {
		t.Fatal("different labels must differ")
	}
	if HexToLockReason(reason.String()) != reason {
		t.Fatal("hex round trip failed")
	}
}

func TestLockReasonJSONRoundTrip(t *testing.T) {
	t.Parallel()
	reason := StrToLockReason("vesting")

	data, err := json.Marshal(reason)
	if err != nil {
		t.Fatal(err)
	}

	var decoded LockReason
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded != reason {
		t.Fatal("decoded reason differs")
	}
}
