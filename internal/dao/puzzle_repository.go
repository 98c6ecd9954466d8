package dao

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/doublestrike/puzzle-backend/internal/db"
	"github.com/doublestrike/puzzle-backend/pkg/puzgen"
)

const queryTimeout = time.Second

// PuzzleRepository stores and serves pre-generated Double Strike puzzles.
type PuzzleRepository interface {
	InsertPuzzle(puzzle puzgen.Puzzle) error

	InsertAllPuzzles(puzzles []puzgen.Puzzle) error

	// GetRandomPuzzleForPieces samples one stored puzzle with the given
	// piece count.
	GetRandomPuzzleForPieces(pieces int) (puzgen.Puzzle, error)

	GetRecentPuzzles(limit int64) ([]puzgen.Puzzle, error)
}

type puzzleRepository struct {
	dbClient *db.PuzzleDbClient
}

func NewPuzzleRepository(dbClient *db.PuzzleDbClient) PuzzleRepository {
	return &puzzleRepository{dbClient}
}

func (r *puzzleRepository) InsertPuzzle(puzzle puzgen.Puzzle) error {
	ctx, cancel := context.WithTimeout(context.TODO(), queryTimeout)
	defer cancel()

	_, err := r.dbClient.PuzzleCollection.InsertOne(ctx, puzzle)
	return err
}

func (r *puzzleRepository) InsertAllPuzzles(puzzles []puzgen.Puzzle) error {
	if len(puzzles) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.TODO(), queryTimeout)
	defer cancel()

	docs := make([]interface{}, len(puzzles))
	for i, p := range puzzles {
		docs[i] = p
	}
	_, err := r.dbClient.PuzzleCollection.InsertMany(ctx, docs)
	return err
}

func (r *puzzleRepository) GetRandomPuzzleForPieces(pieces int) (puzgen.Puzzle, error) {
	ctx, cancel := context.WithTimeout(context.TODO(), queryTimeout)
	defer cancel()

	matchStage := bson.D{{Key: "$match", Value: bson.D{{Key: "piece_count", Value: pieces}}}}
	sampleStage := bson.D{{Key: "$sample", Value: bson.D{{Key: "size", Value: 1}}}}

	cursor, err := r.dbClient.PuzzleCollection.Aggregate(ctx, mongo.Pipeline{matchStage, sampleStage})
	if err != nil {
		return puzgen.Puzzle{}, err
	}

	var loaded []puzgen.Puzzle
	if err = cursor.All(ctx, &loaded); err != nil {
		return puzgen.Puzzle{}, err
	}
	if len(loaded) != 1 {
		return puzgen.Puzzle{}, fmt.Errorf("no stored puzzle with %d pieces", pieces)
	}
	return loaded[0], nil
}

func (r *puzzleRepository) GetRecentPuzzles(limit int64) ([]puzgen.Puzzle, error) {
	ctx, cancel := context.WithTimeout(context.TODO(), queryTimeout)
	defer cancel()

	opts := options.Find()
	opts.SetSort(bson.D{{Key: "_id", Value: -1}})
	opts.SetLimit(limit)

	cursor, err := r.dbClient.PuzzleCollection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}

	var puzzles []puzgen.Puzzle
	if err = cursor.All(ctx, &puzzles); err != nil {
		return nil, err
	}
	return puzzles, nil
}
