package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 5 * time.Second

// PuzzleDbClient wraps the Mongo connection and the puzzle collection
// handle shared by the repositories.
type PuzzleDbClient struct {
	client           *mongo.Client
	PuzzleCollection *mongo.Collection
}

func (c *PuzzleDbClient) Close() error {
	return c.client.Disconnect(context.TODO())
}

// NewDbClient connects to Mongo, pings it, and resolves the puzzle
// collection.
func NewDbClient(address, database, collection string) (*PuzzleDbClient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(address))
	if err != nil {
		return nil, err
	}
	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	coll := client.Database(database).Collection(collection)
	if coll == nil {
		return nil, fmt.Errorf("can't resolve collection %s.%s", database, collection)
	}
	return &PuzzleDbClient{
		client:           client,
		PuzzleCollection: coll,
	}, nil
}
