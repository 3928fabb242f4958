package feed

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clinsync/triage-api/schema"
	"github.com/clinsync/triage-api/store"
)

const (
	feedLogPrefix  = "feed"
	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second
)

type mongoChannel struct {
	store    store.TriageStore
	client   *mongo.Client
	database string

	state int32

	mu          sync.Mutex
	cancelWatch context.CancelFunc
	done        chan struct{}
	subscribed  bool
}

// NewMongoChannel returns a Channel backed by mongo collections and a
// database-level change stream.
func NewMongoChannel(client *mongo.Client, database string) Channel {
	return &mongoChannel{
		store:    store.NewMongoStore(client, database),
		client:   client,
		database: database,
	}
}

// FetchSnapshot reads all three collections. A missing weight table document
// resolves to the built-in defaults, so a fresh deployment is usable before
// any administrator edit.
func (m *mongoChannel) FetchSnapshot() (*Snapshot, error) {
	table, err := m.store.GetWeightTable()
	if err == store.ErrNoWeightTable {
		t := schema.DefaultWeightTable()
		table = &t
	} else if err != nil {
		return nil, err
	}

	cases, err := m.store.ListCases()
	if err != nil {
		return nil, err
	}

	users, err := m.store.ListAccounts()
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		WeightTable: *table,
		Cases:       cases,
		Users:       users,
	}, nil
}

func (m *mongoChannel) WriteCase(record schema.CaseRecord) error {
	return m.store.UpsertCase(record)
}

func (m *mongoChannel) WriteCases(records []schema.CaseRecord) error {
	return m.store.UpsertCases(records)
}

func (m *mongoChannel) DeleteCases(ids []string) error {
	return m.store.DeleteCases(ids)
}

func (m *mongoChannel) WriteWeightTable(table schema.WeightTable) error {
	return m.store.PutWeightTable(table)
}

func (m *mongoChannel) State() ConnState {
	return ConnState(atomic.LoadInt32(&m.state))
}

func (m *mongoChannel) setState(s ConnState) {
	atomic.StoreInt32(&m.state, int32(s))
}

// Subscribe opens one change stream over the whole database and dispatches
// per-collection notifications until Unsubscribe is called.
func (m *mongoChannel) Subscribe(onChange func(EntityKind), onResubscribe func()) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.subscribed {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelWatch = cancel
	m.done = make(chan struct{})
	m.subscribed = true

	go m.watchLoop(ctx, onChange, onResubscribe)

	return nil
}

func (m *mongoChannel) Unsubscribe() {
	m.mu.Lock()
	if !m.subscribed {
		m.mu.Unlock()
		return
	}
	m.subscribed = false
	cancel := m.cancelWatch
	done := m.done
	m.mu.Unlock()

	cancel()
	<-done
	m.setState(Disconnected)
}

func (m *mongoChannel) watchLoop(ctx context.Context, onChange func(EntityKind), onResubscribe func()) {
	logger := log.WithField("prefix", feedLogPrefix)
	defer close(m.done)

	backoff := initialBackoff
	first := true

	for {
		if ctx.Err() != nil {
			return
		}

		m.setState(Connecting)

		cs, err := m.client.Database(m.database).Watch(ctx, mongo.Pipeline{})
		if err != nil {
			m.setState(Disconnected)
			logger.WithError(err).Warn("open change stream")

			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			if backoff *= 2; backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}

		backoff = initialBackoff
		m.setState(Subscribed)

		if first {
			first = false
		} else {
			// the stream keeps no backlog across the gap; the subscriber
			// must reload
			onResubscribe()
		}

		for cs.Next(ctx) {
			var event struct {
				NS struct {
					Coll string `bson:"coll"`
				} `bson:"ns"`
			}
			if err := cs.Decode(&event); err != nil {
				logger.WithError(err).Warn("decode change event")
				continue
			}

			if kind, ok := kindForCollection(event.NS.Coll); ok {
				onChange(kind)
			}
		}

		if err := cs.Err(); err != nil && ctx.Err() == nil {
			logger.WithError(err).Warn("change stream dropped")
		}
		_ = cs.Close(context.Background())
		m.setState(Disconnected)
	}
}

func kindForCollection(coll string) (EntityKind, bool) {
	switch coll {
	case schema.ConfigurationCollection:
		return KindConfiguration, true
	case schema.CaseCollection:
		return KindCases, true
	case schema.UserCollection:
		return KindUsers, true
	}
	return "", false
}
