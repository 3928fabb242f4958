package schema

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBIndexer struct {
	ctx      context.Context
	dbName   string
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDBIndexer(connectionString, dbName string) *MongoDBIndexer {
	ctx := context.Background()
	opts := options.Client().ApplyURI(connectionString)
	client, err := mongo.NewClient(opts)
	if err != nil {
		panic(err)
	}
	if err := client.Connect(ctx); err != nil {
		panic(err)
	}

	return &MongoDBIndexer{
		ctx:      ctx,
		dbName:   dbName,
		Client:   client,
		Database: client.Database(dbName),
	}
}

func (m *MongoDBIndexer) createIndex(collection string, index mongo.IndexModel) error {
	c := m.Database.Collection(collection)
	_, err := c.Indexes().CreateOne(m.ctx, index)
	return err
}

func panicIfError(err error) {
	if err != nil {
		panic(err)
	}
}

func (m *MongoDBIndexer) IndexAll() {
	panicIfError(m.IndexConfigurationCollection())
	panicIfError(m.IndexCaseCollection())
	panicIfError(m.IndexUserCollection())
}

func (m *MongoDBIndexer) IndexConfigurationCollection() error {
	return m.createIndex(ConfigurationCollection, mongo.IndexModel{
		Keys: bson.M{
			"key": 1,
		},
		Options: options.Index().SetUnique(true),
	})
}

func (m *MongoDBIndexer) IndexCaseCollection() error {
	if err := m.createIndex(CaseCollection, mongo.IndexModel{
		Keys: bson.M{
			"id": 1,
		},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	if err := m.createIndex(CaseCollection, mongo.IndexModel{
		Keys: bson.M{
			"created_at": -1,
		},
	}); err != nil {
		return err
	}

	// denormalized creator column for filtering
	return m.createIndex(CaseCollection, mongo.IndexModel{
		Keys: bson.M{
			"creator_id": 1,
		},
	})
}

func (m *MongoDBIndexer) IndexUserCollection() error {
	if err := m.createIndex(UserCollection, mongo.IndexModel{
		Keys: bson.M{
			"id": 1,
		},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	return m.createIndex(UserCollection, mongo.IndexModel{
		Keys: bson.M{
			"username": 1,
		},
		Options: options.Index().SetUnique(true),
	})
}
