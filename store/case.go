package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clinsync/triage-api/schema"
)

type Case interface {
	ListCases() ([]schema.CaseRecord, error)
	UpsertCase(record schema.CaseRecord) error
	UpsertCases(records []schema.CaseRecord) error
	DeleteCases(ids []string) error
}

// ListCases returns the full case collection ordered by recency.
func (m *mongoDB) ListCases() ([]schema.CaseRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.CaseCollection)

	cursor, err := c.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := make([]schema.CaseRecord, 0)
	for cursor.Next(ctx) {
		var r schema.CaseRecord
		if err := cursor.Decode(&r); err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	return records, cursor.Err()
}

// UpsertCase writes one whole record keyed by its id. Edits are whole-record
// replacements, so a plain replace with upsert covers create and update.
func (m *mongoDB) UpsertCase(record schema.CaseRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.CaseCollection)

	_, err := c.ReplaceOne(ctx,
		bson.M{"id": record.ID},
		record,
		options.Replace().SetUpsert(true))
	return err
}

func (m *mongoDB) UpsertCases(records []schema.CaseRecord) error {
	if len(records) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.CaseCollection)

	models := make([]mongo.WriteModel, 0, len(records))
	for _, r := range records {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"id": r.ID}).
			SetReplacement(r).
			SetUpsert(true))
	}

	_, err := c.BulkWrite(ctx, models)
	return err
}

func (m *mongoDB) DeleteCases(ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.CaseCollection)

	_, err := c.DeleteMany(ctx, bson.M{"id": bson.M{"$in": ids}})
	return err
}
