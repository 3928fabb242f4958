package repo_test

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/clinsync/triage-api/feed"
	"github.com/clinsync/triage-api/interchange"
	"github.com/clinsync/triage-api/repo"
	"github.com/clinsync/triage-api/schema"
)

// fakeRemote simulates the durable store shared by every connected channel.
type fakeRemote struct {
	mu       sync.Mutex
	table    schema.WeightTable
	cases    map[string]schema.CaseRecord
	users    []schema.UserAccount
	channels []*fakeChannel
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		table: schema.DefaultWeightTable(),
		cases: make(map[string]schema.CaseRecord),
	}
}

func (r *fakeRemote) connect() *fakeChannel {
	ch := &fakeChannel{remote: r, connected: true}
	r.channels = append(r.channels, ch)
	return ch
}

// upsert applied directly, as another deployment's writer would
func (r *fakeRemote) upsertCase(rec schema.CaseRecord) {
	r.mu.Lock()
	r.cases[rec.ID] = rec
	r.mu.Unlock()
	r.broadcast(feed.KindCases)
}

func (r *fakeRemote) putTable(t schema.WeightTable) {
	r.mu.Lock()
	r.table = t.Clone()
	r.mu.Unlock()
	r.broadcast(feed.KindConfiguration)
}

func (r *fakeRemote) broadcast(kind feed.EntityKind) {
	for _, ch := range r.channels {
		ch.notify(kind)
	}
}

// fakeChannel implements feed.Channel against the fake remote. Notifications
// are dropped while the channel is disconnected, like a real feed with no
// backlog.
type fakeChannel struct {
	remote *fakeRemote

	mu            sync.Mutex
	connected     bool
	failWrites    bool
	failFetch     bool
	onChange      func(feed.EntityKind)
	onResubscribe func()
}

func (c *fakeChannel) FetchSnapshot() (*feed.Snapshot, error) {
	c.mu.Lock()
	failFetch := c.failFetch
	c.mu.Unlock()
	if failFetch {
		return nil, errors.New("fetch refused")
	}

	c.remote.mu.Lock()
	defer c.remote.mu.Unlock()

	cases := make([]schema.CaseRecord, 0, len(c.remote.cases))
	for _, rec := range c.remote.cases {
		cases = append(cases, rec)
	}
	users := make([]schema.UserAccount, len(c.remote.users))
	copy(users, c.remote.users)

	return &feed.Snapshot{
		WeightTable: c.remote.table.Clone(),
		Cases:       cases,
		Users:       users,
	}, nil
}

func (c *fakeChannel) WriteCase(rec schema.CaseRecord) error {
	if err := c.writeErr(); err != nil {
		return err
	}
	c.remote.upsertCase(rec)
	return nil
}

func (c *fakeChannel) WriteCases(recs []schema.CaseRecord) error {
	if err := c.writeErr(); err != nil {
		return err
	}
	for _, rec := range recs {
		c.remote.mu.Lock()
		c.remote.cases[rec.ID] = rec
		c.remote.mu.Unlock()
	}
	c.remote.broadcast(feed.KindCases)
	return nil
}

func (c *fakeChannel) DeleteCases(ids []string) error {
	if err := c.writeErr(); err != nil {
		return err
	}
	c.remote.mu.Lock()
	for _, id := range ids {
		delete(c.remote.cases, id)
	}
	c.remote.mu.Unlock()
	c.remote.broadcast(feed.KindCases)
	return nil
}

func (c *fakeChannel) WriteWeightTable(t schema.WeightTable) error {
	if err := c.writeErr(); err != nil {
		return err
	}
	c.remote.putTable(t)
	return nil
}

func (c *fakeChannel) Subscribe(onChange func(feed.EntityKind), onResubscribe func()) error {
	c.mu.Lock()
	c.onChange = onChange
	c.onResubscribe = onResubscribe
	c.mu.Unlock()
	return nil
}

func (c *fakeChannel) Unsubscribe() {
	c.mu.Lock()
	c.onChange = nil
	c.onResubscribe = nil
	c.mu.Unlock()
}

func (c *fakeChannel) State() feed.ConnState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.connected {
		return feed.Subscribed
	}
	return feed.Disconnected
}

func (c *fakeChannel) writeErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failWrites {
		return errors.New("write refused")
	}
	return nil
}

func (c *fakeChannel) notify(kind feed.EntityKind) {
	c.mu.Lock()
	handler := c.onChange
	connected := c.connected
	c.mu.Unlock()
	if connected && handler != nil {
		handler(kind)
	}
}

func (c *fakeChannel) setConnected(connected bool) {
	c.mu.Lock()
	wasConnected := c.connected
	hook := c.onResubscribe
	c.connected = connected
	c.mu.Unlock()

	if connected && !wasConnected && hook != nil {
		hook()
	}
}

func testRecord(id string, createdAt int64) schema.CaseRecord {
	return schema.CaseRecord{
		ID:        id,
		Subject:   schema.Subject{Age: 40, Sex: "f", HeightCM: 165, WeightKG: 60},
		Score:     12,
		Category:  "low",
		CreatorID: "op-1",
		CreatedAt: createdAt,
	}
}

func await(t *testing.T, done <-chan error) error {
	select {
	case err := <-done:
		return err
	case <-time.After(time.Second):
		t.Fatal("write result not reported")
		return nil
	}
}

func TestPutCaseOptimisticApply(t *testing.T) {
	remote := newFakeRemote()
	r := repo.New(remote.connect())
	assert.NoError(t, r.Start(), "wrong start")

	done := r.PutCase(testRecord("c1", 100))

	// local view updated before the remote write settles
	assert.Len(t, r.Cases(), 1, "wrong optimistic case count")

	assert.NoError(t, await(t, done), "wrong write result")
	assert.Contains(t, remote.cases, "c1", "wrong remote state")
}

func TestPutCaseWriteFailureKeepsLocalState(t *testing.T) {
	remote := newFakeRemote()
	ch := remote.connect()
	r := repo.New(ch)
	assert.NoError(t, r.Start(), "wrong start")

	ch.failWrites = true
	err := await(t, r.PutCase(testRecord("c1", 100)))

	var syncErr *repo.SyncWriteError
	assert.True(t, errors.As(err, &syncErr), "wrong error type")

	// no rollback: the optimistic mutation survives the failed write
	assert.Len(t, r.Cases(), 1, "wrong local case count")
	assert.NotContains(t, remote.cases, "c1", "wrong remote state")
}

func TestLoadFailureKeepsStaleData(t *testing.T) {
	remote := newFakeRemote()
	ch := remote.connect()
	r := repo.New(ch)
	assert.NoError(t, r.Start(), "wrong start")
	assert.NoError(t, await(t, r.PutCase(testRecord("c1", 100))), "wrong write")

	ch.failFetch = true
	err := r.Load()

	var fetchErr *repo.SyncFetchError
	assert.True(t, errors.As(err, &fetchErr), "wrong error type")
	assert.Len(t, r.Cases(), 1, "stale data must stay readable")
}

func TestCasesOrderedByRecency(t *testing.T) {
	remote := newFakeRemote()
	r := repo.New(remote.connect())
	assert.NoError(t, r.Start(), "wrong start")

	assert.NoError(t, await(t, r.PutCase(testRecord("old", 100))), "wrong write")
	assert.NoError(t, await(t, r.PutCase(testRecord("new", 300))), "wrong write")
	assert.NoError(t, await(t, r.PutCase(testRecord("mid", 200))), "wrong write")

	cases := r.Cases()
	assert.Equal(t, []string{"new", "mid", "old"}, []string{cases[0].ID, cases[1].ID, cases[2].ID}, "wrong order")
}

func TestUpdateCaseReplacesWholesale(t *testing.T) {
	remote := newFakeRemote()
	r := repo.New(remote.connect())
	assert.NoError(t, r.Start(), "wrong start")
	assert.NoError(t, await(t, r.PutCase(testRecord("c1", 100))), "wrong write")

	edited := testRecord("c1", 100)
	edited.Score = 55
	edited.Category = "high"
	edited.Advisory = nil
	assert.NoError(t, await(t, r.UpdateCase("c1", edited)), "wrong update")

	got, ok := r.Case("c1")
	assert.True(t, ok, "wrong lookup")
	assert.Equal(t, edited, got, "wrong replaced record")
	assert.Equal(t, edited, remote.cases["c1"], "wrong remote record")
}

func TestDeleteCases(t *testing.T) {
	remote := newFakeRemote()
	r := repo.New(remote.connect())
	assert.NoError(t, r.Start(), "wrong start")
	assert.NoError(t, await(t, r.PutCase(testRecord("c1", 100))), "wrong write")
	assert.NoError(t, await(t, r.PutCase(testRecord("c2", 200))), "wrong write")

	assert.NoError(t, await(t, r.DeleteCases([]string{"c1", "missing"})), "wrong delete")

	assert.Len(t, r.Cases(), 1, "wrong local count")
	assert.NotContains(t, remote.cases, "c1", "wrong remote state")
	assert.Contains(t, remote.cases, "c2", "wrong remote state")
}

func TestMergeIncomingIdempotent(t *testing.T) {
	remote := newFakeRemote()
	r := repo.New(remote.connect())
	assert.NoError(t, r.Start(), "wrong start")

	batch := []schema.CaseRecord{testRecord("c1", 100), testRecord("c2", 200)}

	inserted, done := r.MergeIncoming(batch)
	assert.Equal(t, 2, inserted, "wrong first insert count")
	assert.NoError(t, await(t, done), "wrong first merge write")

	inserted, done = r.MergeIncoming(batch)
	assert.Equal(t, 0, inserted, "wrong second insert count")
	assert.NoError(t, await(t, done), "wrong second merge write")

	assert.Len(t, r.Cases(), 2, "wrong merged count")
	assert.Len(t, remote.cases, 2, "wrong remote count")
}

func TestMergeIncomingKeepsExistingOnCollision(t *testing.T) {
	remote := newFakeRemote()
	r := repo.New(remote.connect())
	assert.NoError(t, r.Start(), "wrong start")
	assert.NoError(t, await(t, r.PutCase(testRecord("c1", 100))), "wrong write")

	colliding := testRecord("c1", 100)
	colliding.Score = 99

	inserted, done := r.MergeIncoming([]schema.CaseRecord{colliding, testRecord("c2", 200)})
	assert.Equal(t, 1, inserted, "wrong insert count")
	assert.NoError(t, await(t, done), "wrong merge write")

	got, _ := r.Case("c1")
	assert.Equal(t, 12, got.Score, "colliding record must not replace the existing one")
}

func TestNotificationTriggersRefetch(t *testing.T) {
	remote := newFakeRemote()
	r := repo.New(remote.connect())
	assert.NoError(t, r.Start(), "wrong start")

	// another client writes; the echo arrives as a kind-only notification
	remote.upsertCase(testRecord("c9", 900))

	assert.Len(t, r.Cases(), 1, "wrong refreshed count")
	got, ok := r.Case("c9")
	assert.True(t, ok, "wrong refreshed lookup")
	assert.Equal(t, int64(900), got.CreatedAt, "wrong refreshed record")
}

func TestReconnectReloadConverges(t *testing.T) {
	remote := newFakeRemote()
	ch := remote.connect()
	r := repo.New(ch)
	assert.NoError(t, r.Start(), "wrong start")

	ch.setConnected(false)

	// writes land while this client is offline; their notifications are lost
	remote.upsertCase(testRecord("c1", 100))
	remote.putTable(schema.WeightTable{
		Categories: map[schema.Category]schema.LabelWeights{
			schema.CategorySymptom: {"fever": 7},
		},
		Thresholds: []schema.Threshold{{ID: "t0", Label: "minimal", MinScore: 0}},
	})
	assert.Len(t, r.Cases(), 0, "offline repository must not see the write")

	ch.setConnected(true)

	assert.Len(t, r.Cases(), 1, "wrong converged case count")
	assert.Equal(t, 7, r.WeightTable().Categories[schema.CategorySymptom]["fever"], "wrong converged table")
}

func TestDumpRoundTripIntoEmptyRepository(t *testing.T) {
	source := repo.New(newFakeRemote().connect())
	assert.NoError(t, source.Start(), "wrong start")
	assert.NoError(t, await(t, source.PutCase(testRecord("c1", 100))), "wrong write")
	assert.NoError(t, await(t, source.PutCase(testRecord("c2", 200))), "wrong write")

	var dump bytes.Buffer
	assert.NoError(t, interchange.WriteDump(&dump, source.Cases()), "wrong export")

	parsed, err := interchange.ParseDump(&dump)
	assert.NoError(t, err, "wrong parse")

	target := repo.New(newFakeRemote().connect())
	assert.NoError(t, target.Start(), "wrong start")

	inserted, done := target.MergeIncoming(parsed)
	assert.Equal(t, 2, inserted, "wrong insert count")
	assert.NoError(t, await(t, done), "wrong merge write")

	assert.Equal(t, source.Cases(), target.Cases(), "wrong reproduced collection")
}

func TestWeightTableLastWriterWins(t *testing.T) {
	remote := newFakeRemote()
	first := repo.New(remote.connect())
	second := repo.New(remote.connect())
	assert.NoError(t, first.Start(), "wrong start")
	assert.NoError(t, second.Start(), "wrong start")

	tableA := schema.DefaultWeightTable()
	tableA.Categories[schema.CategorySymptom]["fever"] = 11
	tableB := schema.DefaultWeightTable()
	tableB.Categories[schema.CategorySymptom]["fever"] = 22

	assert.NoError(t, await(t, first.ReplaceWeightTable(tableA)), "wrong first replace")
	assert.NoError(t, await(t, second.ReplaceWeightTable(tableB)), "wrong second replace")

	// no version check: the second write silently overwrites the first, and
	// the notification path converges both clients onto it
	assert.Equal(t, 22, first.WeightTable().Categories[schema.CategorySymptom]["fever"], "wrong converged table on first client")
	assert.Equal(t, 22, second.WeightTable().Categories[schema.CategorySymptom]["fever"], "wrong converged table on second client")
}
