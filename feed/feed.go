package feed

import (
	"github.com/clinsync/triage-api/schema"
)

// EntityKind names one watched remote collection. Change notifications carry
// the kind only, never a payload: subscribers are expected to refetch.
type EntityKind string

const (
	KindConfiguration EntityKind = "configuration"
	KindCases         EntityKind = "cases"
	KindUsers         EntityKind = "users"
)

// ConnState is the per-connection subscription state.
type ConnState int32

const (
	Disconnected ConnState = iota
	Connecting
	Subscribed
)

func (s ConnState) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Subscribed:
		return "subscribed"
	default:
		return "disconnected"
	}
}

// Snapshot is one consistent read of all three remote collections.
type Snapshot struct {
	WeightTable schema.WeightTable
	Cases       []schema.CaseRecord
	Users       []schema.UserAccount
}

// Channel abstracts the durable remote store together with its push
// notification feed. Writes are not cancellable once issued; timeout handling
// lives inside the channel.
//
// Subscribe delivers change notifications through onChange. After a transport
// loss the channel reconnects on its own; every re-entry into the Subscribed
// state invokes onResubscribe, because the feed keeps no backlog and the
// subscriber must reload to cover notifications missed while disconnected.
type Channel interface {
	FetchSnapshot() (*Snapshot, error)

	WriteCase(record schema.CaseRecord) error
	WriteCases(records []schema.CaseRecord) error
	DeleteCases(ids []string) error
	WriteWeightTable(table schema.WeightTable) error

	Subscribe(onChange func(EntityKind), onResubscribe func()) error
	Unsubscribe()
	State() ConnState
}
