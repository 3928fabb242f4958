package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clinsync/triage-api/schema"
)

// ErrNoWeightTable is returned when the configuration collection holds no
// weight table document yet.
var ErrNoWeightTable = errors.New("weight table not configured")

type Configuration interface {
	GetWeightTable() (*schema.WeightTable, error)
	PutWeightTable(table schema.WeightTable) error
}

type weightTableDocument struct {
	Key   string             `bson:"key"`
	Table schema.WeightTable `bson:"table"`
}

func (m *mongoDB) GetWeightTable() (*schema.WeightTable, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.ConfigurationCollection)

	var doc weightTableDocument
	err := c.FindOne(ctx, bson.M{"key": schema.WeightTableKey}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNoWeightTable
	}
	if err != nil {
		return nil, err
	}

	return &doc.Table, nil
}

// PutWeightTable replaces the singleton weight table document wholesale.
// No version check: concurrent administrator edits are last-writer-wins.
func (m *mongoDB) PutWeightTable(table schema.WeightTable) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.ConfigurationCollection)

	_, err := c.ReplaceOne(ctx,
		bson.M{"key": schema.WeightTableKey},
		weightTableDocument{Key: schema.WeightTableKey, Table: table},
		options.Replace().SetUpsert(true))
	return err
}
