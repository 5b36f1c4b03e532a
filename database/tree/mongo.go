// File: database/tree/mongo.go
package tree

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// node is one child stored as its own document, keyed by its full path.
type node struct {
	ID     string `bson:"_id"`
	Parent string `bson:"parent"`
	Key    string `bson:"key"`
	Value  string `bson:"value"` // JSON encoded
}

type mongoTree struct {
	coll *mongo.Collection
}

// NewMongoTree constructs a Tree over a MongoDB collection.
func NewMongoTree(db *mongo.Database) Tree {
	return &mongoTree{coll: db.Collection("nodes")}
}

// EnsureIndexes creates the parent index Children relies on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := db.Collection("nodes").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "parent", Value: 1}},
		Options: options.Index().SetName("parent_idx"),
	})
	return err
}

func (m *mongoTree) Children(ctx context.Context, path string) (map[string]json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := m.coll.Find(ctx, bson.M{"parent": path})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var nodes []node
	if err := cursor.All(ctx, &nodes); err != nil {
		return nil, err
	}
	children := make(map[string]json.RawMessage, len(nodes))
	for _, n := range nodes {
		children[n.Key] = json.RawMessage(n.Value)
	}
	return children, nil
}

func (m *mongoTree) SetChild(ctx context.Context, path, key string, v interface{}) error {
	n, err := newNode(path, key, v)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err = m.coll.ReplaceOne(ctx, bson.M{"_id": n.ID}, n, options.Replace().SetUpsert(true))
	return err
}

func (m *mongoTree) DeleteChild(ctx context.Context, path, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := m.coll.DeleteOne(ctx, bson.M{"_id": Join(path, key)})
	return err
}

func (m *mongoTree) UpdateChildren(ctx context.Context, path string, values map[string]interface{}) error {
	if len(values) == 0 {
		return nil
	}
	models := make([]mongo.WriteModel, 0, len(values))
	for key, v := range values {
		if v == nil {
			models = append(models, mongo.NewDeleteOneModel().SetFilter(bson.M{"_id": Join(path, key)}))
			continue
		}
		n, err := newNode(path, key, v)
		if err != nil {
			return err
		}
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": n.ID}).
			SetReplacement(n).
			SetUpsert(true))
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := m.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	return err
}

func newNode(path, key string, v interface{}) (node, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return node{}, fmt.Errorf("failed to encode %s/%s: %w", path, key, err)
	}
	return node{ID: Join(path, key), Parent: path, Key: key, Value: string(raw)}, nil
}
