package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clinsync/triage-api/schema"
)

// DuplicateKeyCode - mongo duplicate key error code
const DuplicateKeyCode = 11000

var (
	ErrUsernameTaken   = errors.New("username has been taken")
	ErrAccountNotFound = errors.New("account not found")
)

type Account interface {
	CreateAccount(account schema.UserAccount) error
	GetAccount(id string) (*schema.UserAccount, error)
	GetAccountByUsername(username string) (*schema.UserAccount, error)
	ListAccounts() ([]schema.UserAccount, error)
	UpdateAccount(account schema.UserAccount) error
	DeleteAccount(id string) error
}

func (m *mongoDB) CreateAccount(account schema.UserAccount) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.UserCollection)

	if _, err := c.InsertOne(ctx, &account); err != nil {
		if we, hasErr := err.(mongo.WriteException); hasErr {
			if 1 == len(we.WriteErrors) && DuplicateKeyCode == we.WriteErrors[0].Code {
				return ErrUsernameTaken
			}
		}
		return err
	}

	return nil
}

func (m *mongoDB) GetAccount(id string) (*schema.UserAccount, error) {
	return m.findAccount(bson.M{"id": id})
}

func (m *mongoDB) GetAccountByUsername(username string) (*schema.UserAccount, error) {
	return m.findAccount(bson.M{"username": username})
}

func (m *mongoDB) findAccount(query bson.M) (*schema.UserAccount, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.UserCollection)

	var a schema.UserAccount
	err := c.FindOne(ctx, query).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (m *mongoDB) ListAccounts() ([]schema.UserAccount, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.UserCollection)

	cursor, err := c.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"username": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	accounts := make([]schema.UserAccount, 0)
	for cursor.Next(ctx) {
		var a schema.UserAccount
		if err := cursor.Decode(&a); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}

	return accounts, cursor.Err()
}

// UpdateAccount replaces the whole account document keyed by id.
func (m *mongoDB) UpdateAccount(account schema.UserAccount) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.UserCollection)

	result, err := c.ReplaceOne(ctx, bson.M{"id": account.ID}, &account)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrAccountNotFound
	}

	return nil
}

func (m *mongoDB) DeleteAccount(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.UserCollection)

	result, err := c.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrAccountNotFound
	}

	return nil
}
