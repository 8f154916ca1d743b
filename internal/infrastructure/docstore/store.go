// Package docstore is the document database capability the repositories are
// written against. Paths use Firestore's slash form: "collection/doc" for
// documents and "collection/doc/sub" for collections.
package docstore

import (
	"context"
	"errors"
	"path"
	"strings"

	"github.com/mitchellh/mapstructure"
)

var ErrNotFound = errors.New("docstore: document not found")

// MaxBatchWrites is the most operations one BatchDelete may commit, matching
// Firestore's write batch limit.
const MaxBatchWrites = 500

// Direction orders List results by a field.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// Document is a snapshot of a stored document. Numbers are normalised to
// int64 or float64 and timestamps to time.Time.
type Document struct {
	ID   string
	Path string
	Data map[string]interface{}

	decode func(v interface{}) error
}

// DataTo populates v, a pointer to a struct, from the document's fields using
// `firestore` struct tags. Fields missing from the document are left alone.
func (d *Document) DataTo(v interface{}) error {
	if d.decode != nil {
		return d.decode(v)
	}
	return decodeFields(d.Data, v)
}

func decodeFields(data map[string]interface{}, v interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "firestore",
		Result:  v,
	})
	if err != nil {
		return err
	}
	return dec.Decode(data)
}

type serverTimestamp struct{}

// ServerTimestamp, used as a field value in Set, is replaced by the commit
// time assigned by the store.
var ServerTimestamp = serverTimestamp{}

// IncrementValue, used as a field value in Set, adds N to the stored number.
// A missing field is treated as zero.
type IncrementValue struct {
	N int64
}

func Increment(n int64) IncrementValue {
	return IncrementValue{N: n}
}

type Store interface {
	Get(ctx context.Context, docPath string) (*Document, error)
	// Set writes data to docPath. With merge, only the given fields change;
	// without it the document is replaced.
	Set(ctx context.Context, docPath string, data map[string]interface{}, merge bool) error
	// Delete removes docPath. Deleting an absent document is not an error.
	Delete(ctx context.Context, docPath string) error
	// List returns every document directly under collectionPath, ordered by
	// orderBy. An empty orderBy orders by document ID.
	List(ctx context.Context, collectionPath, orderBy string, dir Direction) ([]*Document, error)
	// Count returns the number of documents directly under collectionPath.
	Count(ctx context.Context, collectionPath string) (int64, error)
	// BatchDelete removes every path in one atomic commit. More than
	// MaxBatchWrites paths is an error.
	BatchDelete(ctx context.Context, docPaths []string) error
}

// Join builds a slash path from segments.
func Join(segments ...string) string {
	return path.Join(segments...)
}

// validDocPath reports whether p names a document (even segment count).
func validDocPath(p string) bool {
	segs := strings.Split(strings.Trim(p, "/"), "/")
	return len(segs) >= 2 && len(segs)%2 == 0 && !hasEmpty(segs)
}

// validCollectionPath reports whether p names a collection (odd segment count).
func validCollectionPath(p string) bool {
	segs := strings.Split(strings.Trim(p, "/"), "/")
	return len(segs)%2 == 1 && !hasEmpty(segs)
}

func hasEmpty(segs []string) bool {
	for _, s := range segs {
		if s == "" {
			return true
		}
	}
	return false
}
