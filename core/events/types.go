package events

import (
	"github.com/tokenvault/tokenvault-go/core/types"
)

// Event type names
const (
	TypeLockedEvent               = "tokenvault/LockedEvent"
	TypeUnlockedEvent             = "tokenvault/UnlockedEvent"
	TypeFrozenEvent               = "tokenvault/FrozenEvent"
	TypeUnfrozenEvent             = "tokenvault/UnfrozenEvent"
	TypePausedEvent               = "tokenvault/PausedEvent"
	TypeUnpausedEvent             = "tokenvault/UnpausedEvent"
	TypeOwnershipTransferredEvent = "tokenvault/OwnershipTransferredEvent"
)

type Event interface {
	Type() string
}

type Events []Event

// LockedEvent records creation or modification of a lock. Amount is the
// full locked amount after the change, Release the effective release time.
type LockedEvent struct {
	Address types.Address    `json:"address"`
	Reason  types.LockReason `json:"reason"`
	Amount  string           `json:"amount"`
	Release uint64           `json:"release"`
}

func (e *LockedEvent) Type() string {
	return TypeLockedEvent
}

func (e *LockedEvent) AddressString() string {
	return e.Address.String()
}

// UnlockedEvent records the realization of a matured lock.
type UnlockedEvent struct {
	Address types.Address    `json:"address"`
	Reason  types.LockReason `json:"reason"`
	Amount  string           `json:"amount"`
}

func (e *UnlockedEvent) Type() string {
	return TypeUnlockedEvent
}

func (e *UnlockedEvent) AddressString() string {
	return e.Address.String()
}

type FrozenEvent struct {
	Address types.Address `json:"address"`
}

func (e *FrozenEvent) Type() string {
	return TypeFrozenEvent
}

func (e *FrozenEvent) AddressString() string {
	return e.Address.String()
}

type UnfrozenEvent struct {
	Address types.Address `json:"address"`
}

func (e *UnfrozenEvent) Type() string {
	return TypeUnfrozenEvent
}

func (e *UnfrozenEvent) AddressString() string {
	return e.Address.String()
}

type PausedEvent struct{}

func (e *PausedEvent) Type() string {
	return TypePausedEvent
}

type UnpausedEvent struct{}

func (e *UnpausedEvent) Type() string {
	return TypeUnpausedEvent
}

type OwnershipTransferredEvent struct {
	PreviousOwner types.Address `json:"previous_owner"`
	NewOwner      types.Address `json:"new_owner"`
}

func (e *OwnershipTransferredEvent) Type() string {
	return TypeOwnershipTransferredEvent
}
