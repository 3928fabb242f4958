package api

import (
	"github.com/clinsync/triage-api/feed"
	"github.com/clinsync/triage-api/repo"
	"github.com/clinsync/triage-api/schema"
)

// stubChannel is a feed.Channel whose remote always accepts writes and whose
// snapshot is fixed; enough for handler tests that exercise the repository
// in front of it.
type stubChannel struct {
	snapshot feed.Snapshot
}

func (c *stubChannel) FetchSnapshot() (*feed.Snapshot, error) {
	s := c.snapshot
	return &s, nil
}

func (c *stubChannel) WriteCase(schema.CaseRecord) error             { return nil }
func (c *stubChannel) WriteCases([]schema.CaseRecord) error          { return nil }
func (c *stubChannel) DeleteCases([]string) error                    { return nil }
func (c *stubChannel) WriteWeightTable(schema.WeightTable) error     { return nil }
func (c *stubChannel) Subscribe(func(feed.EntityKind), func()) error { return nil }
func (c *stubChannel) Unsubscribe()                                  {}
func (c *stubChannel) State() feed.ConnState                         { return feed.Subscribed }

func testRepository(cases ...schema.CaseRecord) *repo.Repository {
	r := repo.New(&stubChannel{
		snapshot: feed.Snapshot{
			WeightTable: schema.DefaultWeightTable(),
			Cases:       cases,
		},
	})
	if err := r.Start(); err != nil {
		panic(err)
	}
	return r
}
