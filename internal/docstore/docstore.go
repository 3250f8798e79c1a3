package docstore

import (
	"context"
	"errors"
	"fmt"
)

// MaxInValues is the hard cap on the value list accepted by a single
// membership query. Callers with larger sets must chunk and merge.
const MaxInValues = 10

// FieldID targets document identity instead of a data field in
// QueryEquals and QueryIn.
const FieldID = "_id"

var ErrFanOutExceeded = errors.New("membership query exceeds fan-out limit")

// Document is a schemaless record. Fields carries whatever the writer put
// there; consumers are expected to parse it at their own boundary.
type Document struct {
	ID     string
	Fields map[string]any
}

// Store is the document-store collaborator. Reads return documents in an
// implementation-defined order unless stated otherwise.
//
// Delete exists for maintenance jobs only: the feed read path never writes.
type Store interface {
	QueryEquals(ctx context.Context, collection, field string, value any) ([]Document, error)
	QueryIn(ctx context.Context, collection, field string, values []string) ([]Document, error)
	QueryAll(ctx context.Context, collection string) ([]Document, error)
	Delete(ctx context.Context, collection, id string) error
}

// CheckFanOut validates a membership value list against MaxInValues.
func CheckFanOut(values []string) error {
	if len(values) > MaxInValues {
		return fmt.Errorf("%w: got %d values, max %d", ErrFanOutExceeded, len(values), MaxInValues)
	}
	return nil
}
