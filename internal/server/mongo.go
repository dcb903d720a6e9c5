package server

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/printforge/printboard/pkg/cache"
	"github.com/printforge/printboard/pkg/errors"
)

// MongoStore persists boards in MongoDB, for deployments where generated
// boards must survive restarts and be shared across instances.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection with a
// ping. Boards live in the "boards" collection of the given database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongodb")
	}
	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection("boards"),
	}, nil
}

// Put upserts a board. Transient write failures are retried with backoff.
func (s *MongoStore) Put(ctx context.Context, board *Board) error {
	return cache.RetryWithBackoff(ctx, func() error {
		_, err := s.collection.ReplaceOne(ctx,
			bson.M{"_id": board.ID},
			board,
			options.Replace().SetUpsert(true))
		if err != nil {
			return cache.Retryable(err)
		}
		return nil
	})
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Board, error) {
	var board Board
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&board)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeNotFound, "board %q not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load board %q", id)
	}
	return &board, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete board %q", id)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
