// File: database/tree/interface.go
package tree

import (
	"context"
	"encoding/json"
	"strings"
)

// Tree is a hierarchical realtime store addressed by slash-separated paths,
// e.g. "weeks/2026-W42/slots". Every operation works on the direct children
// of a path. Values are JSON.
type Tree interface {
	// Children returns every child of path. An empty or missing path yields
	// an empty map.
	Children(ctx context.Context, path string) (map[string]json.RawMessage, error)
	// SetChild writes v under path/key, replacing what was there.
	SetChild(ctx context.Context, path, key string, v interface{}) error
	// DeleteChild removes path/key. Deleting a missing child is not an error.
	DeleteChild(ctx context.Context, path, key string) error
	// UpdateChildren applies several child writes as one update. A nil value
	// deletes that child.
	UpdateChildren(ctx context.Context, path string, values map[string]interface{}) error
}

// Join builds a tree path from segments.
func Join(segments ...string) string {
	return strings.Join(segments, "/")
}

// WeekPath returns the path of a week-scoped collection, e.g.
// weeks/2026-W42/slots.
func WeekPath(weekID, collection string) string {
	return Join("weeks", weekID, collection)
}
