package persistence

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/petrijr/flowwire/pkg/api"
)

// MongoStore is a HistoryStore and ActivationStore backed by MongoDB.
// Each AppendEvents call inserts one chunk document; chunks are read back in
// insertion (ObjectID) order.
type MongoStore struct {
	history     *mongo.Collection
	activations *mongo.Collection
}

var (
	_ HistoryStore    = (*MongoStore)(nil)
	_ ActivationStore = (*MongoStore)(nil)
)

// NewMongoStore creates a Mongo-backed store.
// dbName defaults to "flowwire" if empty.
func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	if dbName == "" {
		dbName = "flowwire"
	}
	db := client.Database(dbName)
	return &MongoStore{
		history:     db.Collection("history_chunks"),
		activations: db.Collection("activations"),
	}
}

type mongoChunkDoc struct {
	ID      primitive.ObjectID `bson:"_id"`
	RunID   string             `bson:"run_id"`
	Records []byte             `bson:"records"`
}

type mongoActivationDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	RunID       string             `bson:"run_id"`
	Workflow    string             `bson:"workflow"`
	Status      string             `bson:"status"`
	Error       string             `bson:"error,omitempty"`
	Output      []byte             `bson:"output,omitempty"`
	Commands    []byte             `bson:"commands,omitempty"`
	HistorySize int                `bson:"history_size"`
	Replayed    int                `bson:"replayed"`
	RecordedAt  time.Time          `bson:"recorded_at"`
}

func (s *MongoStore) AppendEvents(ctx context.Context, runID string, records []byte) error {
	if err := validateRecords(runID, records); err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}
	_, err := s.history.InsertOne(ctx, mongoChunkDoc{
		ID:      primitive.NewObjectID(),
		RunID:   runID,
		Records: records,
	})
	return err
}

func (s *MongoStore) LoadHistory(ctx context.Context, runID string) ([]byte, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.history.Find(ctx, bson.M{"run_id": runID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var (
		out   []byte
		found bool
	)
	for cur.Next(ctx) {
		var doc mongoChunkDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.Records...)
		found = true
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrRunNotFound
	}
	return out, nil
}

func (s *MongoStore) SaveActivation(ctx context.Context, rec ActivationRecord) error {
	commands, err := encodeCommands(rec.Commands)
	if err != nil {
		return fmt.Errorf("encode commands: %w", err)
	}
	_, err = s.activations.InsertOne(ctx, mongoActivationDoc{
		ID:          primitive.NewObjectID(),
		RunID:       rec.RunID,
		Workflow:    rec.Workflow,
		Status:      string(rec.Status),
		Error:       rec.Error,
		Output:      rec.Output,
		Commands:    commands,
		HistorySize: rec.HistorySize,
		Replayed:    rec.Replayed,
		RecordedAt:  rec.RecordedAt,
	})
	return err
}

func (s *MongoStore) ListActivations(ctx context.Context, runID string) ([]ActivationRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.activations.Find(ctx, bson.M{"run_id": runID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []ActivationRecord
	for cur.Next(ctx) {
		var doc mongoActivationDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		cmds, err := decodeValue[[]CommandRecord](doc.Commands)
		if err != nil {
			return nil, fmt.Errorf("decode commands: %w", err)
		}
		out = append(out, ActivationRecord{
			RunID:       doc.RunID,
			Workflow:    doc.Workflow,
			Status:      api.Status(doc.Status),
			Error:       doc.Error,
			Output:      doc.Output,
			Commands:    cmds,
			HistorySize: doc.HistorySize,
			Replayed:    doc.Replayed,
			RecordedAt:  doc.RecordedAt.UTC(),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrRunNotFound
	}
	return out, nil
}
