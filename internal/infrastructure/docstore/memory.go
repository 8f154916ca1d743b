package docstore

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStore keeps documents in process. It backs the "memory" driver for
// local runs and the data-layer tests.
type MemoryStore struct {
	mu    sync.RWMutex
	docs  map[string]map[string]interface{}
	clock func() time.Time
}

type MemoryOption func(*MemoryStore)

// WithClock overrides the source of ServerTimestamp values.
func WithClock(clock func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		s.clock = clock
	}
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		docs:  make(map[string]map[string]interface{}),
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Get(ctx context.Context, docPath string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	docPath = strings.Trim(docPath, "/")
	if !validDocPath(docPath) {
		return nil, fmt.Errorf("docstore: invalid document path %q", docPath)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.docs[docPath]
	if !ok {
		return nil, ErrNotFound
	}
	return snapshot(docPath, data), nil
}

func (s *MemoryStore) Set(ctx context.Context, docPath string, data map[string]interface{}, merge bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	docPath = strings.Trim(docPath, "/")
	if !validDocPath(docPath) {
		return fmt.Errorf("docstore: invalid document path %q", docPath)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.docs[docPath]
	next := make(map[string]interface{}, len(data))
	if merge {
		for k, v := range existing {
			next[k] = v
		}
	}

	commitTime := s.clock().UTC()
	for k, v := range data {
		switch val := v.(type) {
		case serverTimestamp:
			next[k] = commitTime
		case IncrementValue:
			next[k] = addNumber(existing[k], val.N)
		default:
			next[k] = normalize(v)
		}
	}

	s.docs[docPath] = next
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, docPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	docPath = strings.Trim(docPath, "/")
	if !validDocPath(docPath) {
		return fmt.Errorf("docstore: invalid document path %q", docPath)
	}

	s.mu.Lock()
	delete(s.docs, docPath)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) List(ctx context.Context, collectionPath, orderBy string, dir Direction) ([]*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	collectionPath = strings.Trim(collectionPath, "/")
	if !validCollectionPath(collectionPath) {
		return nil, fmt.Errorf("docstore: invalid collection path %q", collectionPath)
	}

	s.mu.RLock()
	var docs []*Document
	for p, data := range s.docs {
		if path.Dir(p) != collectionPath {
			continue
		}
		// Firestore drops documents that lack the ordering field.
		if orderBy != "" {
			if _, ok := data[orderBy]; !ok {
				continue
			}
		}
		docs = append(docs, snapshot(p, data))
	}
	s.mu.RUnlock()

	sort.Slice(docs, func(i, j int) bool {
		c := 0
		if orderBy != "" {
			c = compare(docs[i].Data[orderBy], docs[j].Data[orderBy])
		}
		if c == 0 {
			c = strings.Compare(docs[i].ID, docs[j].ID)
		}
		if dir == Desc {
			return c > 0
		}
		return c < 0
	})

	return docs, nil
}

func (s *MemoryStore) Count(ctx context.Context, collectionPath string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	collectionPath = strings.Trim(collectionPath, "/")
	if !validCollectionPath(collectionPath) {
		return 0, fmt.Errorf("docstore: invalid collection path %q", collectionPath)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for p := range s.docs {
		if path.Dir(p) == collectionPath {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) BatchDelete(ctx context.Context, docPaths []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(docPaths) > MaxBatchWrites {
		return fmt.Errorf("docstore: batch of %d deletes exceeds the %d write limit", len(docPaths), MaxBatchWrites)
	}
	cleaned := make([]string, 0, len(docPaths))
	for _, p := range docPaths {
		p = strings.Trim(p, "/")
		if !validDocPath(p) {
			return fmt.Errorf("docstore: invalid document path %q", p)
		}
		cleaned = append(cleaned, p)
	}

	s.mu.Lock()
	for _, p := range cleaned {
		delete(s.docs, p)
	}
	s.mu.Unlock()
	return nil
}

func snapshot(docPath string, data map[string]interface{}) *Document {
	cp := make(map[string]interface{}, len(data))
	for k, v := range data {
		cp[k] = v
	}
	return &Document{
		ID:   path.Base(docPath),
		Path: docPath,
		Data: cp,
	}
}

func normalize(v interface{}) interface{} {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case float32:
		return float64(n)
	case *float64:
		if n == nil {
			return nil
		}
		return *n
	case time.Time:
		return n.UTC()
	default:
		return v
	}
}

func addNumber(current interface{}, n int64) interface{} {
	switch c := current.(type) {
	case int64:
		return c + n
	case float64:
		return c + float64(n)
	default:
		return n
	}
}

func compare(a, b interface{}) int {
	switch av := a.(type) {
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	case int64:
		if bv, ok := b.(int64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	}
	return 0
}
