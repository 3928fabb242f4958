package repo

import (
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/clinsync/triage-api/feed"
	"github.com/clinsync/triage-api/schema"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "repo")
}

// Repository is the process-wide in-memory copy of the weight table, the
// case collection and the user roster. It applies mutations locally first,
// then writes through the sync channel; remote failures never roll the local
// state back. One instance is constructed at process start and injected into
// consumers.
type Repository struct {
	channel feed.Channel

	mu    sync.RWMutex
	table schema.WeightTable
	cases []schema.CaseRecord
	users []schema.UserAccount
}

func New(channel feed.Channel) *Repository {
	return &Repository{
		channel: channel,
		table:   schema.DefaultWeightTable(),
		cases:   make([]schema.CaseRecord, 0),
		users:   make([]schema.UserAccount, 0),
	}
}

// Start subscribes to the change feed and performs the initial load.
// Notifications carry the entity kind only, so every notification resolves to
// a fresh snapshot fetch; so does every resubscribe after a transport drop,
// because the feed replays nothing.
func (r *Repository) Start() error {
	if err := r.channel.Subscribe(r.onChange, r.onResubscribe); err != nil {
		return err
	}
	return r.Load()
}

// Stop tears the subscription down.
func (r *Repository) Stop() {
	r.channel.Unsubscribe()
}

// SyncState reports the current channel connection state.
func (r *Repository) SyncState() string {
	return r.channel.State().String()
}

func (r *Repository) onChange(kind feed.EntityKind) {
	if err := r.Load(); err != nil {
		log.WithError(err).WithField("kind", string(kind)).Warn("refresh after notification")
	}
}

func (r *Repository) onResubscribe() {
	if err := r.Load(); err != nil {
		log.WithError(err).Warn("reload after resubscribe")
	}
}

// Load replaces all three collections with a fresh remote snapshot. On
// failure the cached data stays untouched and a SyncFetchError is returned.
func (r *Repository) Load() error {
	snapshot, err := r.channel.FetchSnapshot()
	if err != nil {
		return &SyncFetchError{Err: err}
	}

	cases := make([]schema.CaseRecord, len(snapshot.Cases))
	copy(cases, snapshot.Cases)
	sortCases(cases)

	users := make([]schema.UserAccount, len(snapshot.Users))
	copy(users, snapshot.Users)

	r.mu.Lock()
	r.table = snapshot.WeightTable.Clone()
	r.cases = cases
	r.users = users
	r.mu.Unlock()

	return nil
}

// WeightTable returns a deep copy of the cached weight table.
func (r *Repository) WeightTable() schema.WeightTable {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table.Clone()
}

// Cases returns the cached case collection in created_at descending order.
func (r *Repository) Cases() []schema.CaseRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schema.CaseRecord, len(r.cases))
	copy(out, r.cases)
	return out
}

// Case returns one cached record by id.
func (r *Repository) Case(id string) (schema.CaseRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.cases {
		if c.ID == id {
			return c, true
		}
	}
	return schema.CaseRecord{}, false
}

// Users returns the cached user roster.
func (r *Repository) Users() []schema.UserAccount {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schema.UserAccount, len(r.users))
	copy(out, r.users)
	return out
}

// PutCase inserts the record locally and issues the remote write. The
// returned channel reports the write outcome once; callers may ignore it and
// keep using the locally updated view.
func (r *Repository) PutCase(record schema.CaseRecord) <-chan error {
	r.mu.Lock()
	r.cases = append(r.cases, record)
	sortCases(r.cases)
	r.mu.Unlock()

	return r.asyncWrite("case", func() error {
		return r.channel.WriteCase(record)
	})
}

// UpdateCase replaces the record with the given id wholesale. An id that is
// not cached yet is treated as an insert, matching the upsert semantics of
// the remote store.
func (r *Repository) UpdateCase(id string, record schema.CaseRecord) <-chan error {
	record.ID = id

	r.mu.Lock()
	replaced := false
	for i, c := range r.cases {
		if c.ID == id {
			r.cases[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		r.cases = append(r.cases, record)
	}
	sortCases(r.cases)
	r.mu.Unlock()

	return r.asyncWrite("case", func() error {
		return r.channel.WriteCase(record)
	})
}

// DeleteCases removes the given ids locally and issues the remote delete.
func (r *Repository) DeleteCases(ids []string) <-chan error {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	r.mu.Lock()
	kept := r.cases[:0]
	for _, c := range r.cases {
		if _, ok := drop[c.ID]; !ok {
			kept = append(kept, c)
		}
	}
	r.cases = kept
	r.mu.Unlock()

	return r.asyncWrite("case delete", func() error {
		return r.channel.DeleteCases(ids)
	})
}

// MergeIncoming inserts only records whose id is not cached yet, returns the
// number inserted and forwards the accepted subset as inserts. A colliding id
// is silently discarded in favor of the existing record, which makes the
// merge idempotent.
func (r *Repository) MergeIncoming(records []schema.CaseRecord) (int, <-chan error) {
	r.mu.Lock()
	existing := make(map[string]struct{}, len(r.cases))
	for _, c := range r.cases {
		existing[c.ID] = struct{}{}
	}

	accepted := make([]schema.CaseRecord, 0, len(records))
	for _, rec := range records {
		if _, ok := existing[rec.ID]; ok {
			continue
		}
		existing[rec.ID] = struct{}{}
		accepted = append(accepted, rec)
	}

	r.cases = append(r.cases, accepted...)
	sortCases(r.cases)
	r.mu.Unlock()

	if len(accepted) == 0 {
		done := make(chan error, 1)
		done <- nil
		return 0, done
	}

	return len(accepted), r.asyncWrite("case batch", func() error {
		return r.channel.WriteCases(accepted)
	})
}

// ReplaceWeightTable swaps the cached table and writes the replacement
// through the channel. Concurrent administrator edits are last-writer-wins;
// the notification path converges every client onto whichever write the
// store observed last.
func (r *Repository) ReplaceWeightTable(table schema.WeightTable) <-chan error {
	clone := table.Clone()

	r.mu.Lock()
	r.table = clone
	r.mu.Unlock()

	return r.asyncWrite("weight table", func() error {
		return r.channel.WriteWeightTable(table)
	})
}

func (r *Repository) asyncWrite(op string, write func() error) <-chan error {
	done := make(chan error, 1)

	go func() {
		if err := write(); err != nil {
			log.WithError(err).WithField("op", op).Warn("remote write failed, local state kept")
			done <- &SyncWriteError{Op: op, Err: err}
			return
		}
		done <- nil
	}()

	return done
}

func sortCases(cases []schema.CaseRecord) {
	sort.SliceStable(cases, func(i, j int) bool {
		return cases[i].CreatedAt > cases[j].CreatedAt
	})
}
