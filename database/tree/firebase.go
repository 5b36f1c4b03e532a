// File: database/tree/firebase.go
package tree

import (
	"context"
	"encoding/json"
	"time"

	"firebase.google.com/go/v4/db"
)

type firebaseTree struct {
	client *db.Client
}

// NewFirebaseTree constructs a Tree over a Firebase Realtime Database.
func NewFirebaseTree(client *db.Client) Tree {
	return &firebaseTree{client: client}
}

func (f *firebaseTree) Children(ctx context.Context, path string) (map[string]json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var children map[string]json.RawMessage
	if err := f.client.NewRef(path).Get(ctx, &children); err != nil {
		return nil, err
	}
	if children == nil {
		children = make(map[string]json.RawMessage)
	}
	return children, nil
}

func (f *firebaseTree) SetChild(ctx context.Context, path, key string, v interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return f.client.NewRef(path).Child(key).Set(ctx, v)
}

func (f *firebaseTree) DeleteChild(ctx context.Context, path, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return f.client.NewRef(path).Child(key).Delete(ctx)
}

func (f *firebaseTree) UpdateChildren(ctx context.Context, path string, values map[string]interface{}) error {
	// The SDK rejects empty updates.
	if len(values) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return f.client.NewRef(path).Update(ctx, values)
}
