package docstore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) Get(ctx context.Context, docPath string) (*Document, error) {
	snap, err := s.client.Doc(docPath).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !snap.Exists() {
		return nil, ErrNotFound
	}
	return fromSnapshot(snap), nil
}

func (s *FirestoreStore) Set(ctx context.Context, docPath string, data map[string]interface{}, merge bool) error {
	ref := s.client.Doc(docPath)
	if ref == nil {
		return fmt.Errorf("docstore: invalid document path %q", docPath)
	}

	var err error
	if merge {
		_, err = ref.Set(ctx, toFirestore(data), firestore.MergeAll)
	} else {
		_, err = ref.Set(ctx, toFirestore(data))
	}
	return err
}

func (s *FirestoreStore) Delete(ctx context.Context, docPath string) error {
	ref := s.client.Doc(docPath)
	if ref == nil {
		return fmt.Errorf("docstore: invalid document path %q", docPath)
	}
	_, err := ref.Delete(ctx)
	return err
}

func (s *FirestoreStore) List(ctx context.Context, collectionPath, orderBy string, dir Direction) ([]*Document, error) {
	coll := s.client.Collection(collectionPath)
	if coll == nil {
		return nil, fmt.Errorf("docstore: invalid collection path %q", collectionPath)
	}

	query := coll.Query
	if orderBy != "" {
		fsDir := firestore.Asc
		if dir == Desc {
			fsDir = firestore.Desc
		}
		query = query.OrderBy(orderBy, fsDir)
	} else if dir == Desc {
		query = query.OrderBy(firestore.DocumentID, firestore.Desc)
	}

	snaps, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	docs := make([]*Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, fromSnapshot(snap))
	}
	return docs, nil
}

func (s *FirestoreStore) Count(ctx context.Context, collectionPath string) (int64, error) {
	coll := s.client.Collection(collectionPath)
	if coll == nil {
		return 0, fmt.Errorf("docstore: invalid collection path %q", collectionPath)
	}

	result, err := coll.NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, err
	}
	value, ok := result["all"].(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("docstore: unexpected count result %T", result["all"])
	}
	return value.GetIntegerValue(), nil
}

func (s *FirestoreStore) BatchDelete(ctx context.Context, docPaths []string) error {
	if len(docPaths) == 0 {
		return nil
	}
	if len(docPaths) > MaxBatchWrites {
		return fmt.Errorf("docstore: batch of %d deletes exceeds the %d write limit", len(docPaths), MaxBatchWrites)
	}

	batch := s.client.Batch()
	for _, p := range docPaths {
		ref := s.client.Doc(p)
		if ref == nil {
			return fmt.Errorf("docstore: invalid document path %q", p)
		}
		batch.Delete(ref)
	}
	_, err := batch.Commit(ctx)
	return err
}

func toFirestore(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		switch val := v.(type) {
		case serverTimestamp:
			out[k] = firestore.ServerTimestamp
		case IncrementValue:
			out[k] = firestore.Increment(val.N)
		default:
			out[k] = v
		}
	}
	return out
}

func fromSnapshot(snap *firestore.DocumentSnapshot) *Document {
	return &Document{
		ID:     snap.Ref.ID,
		Path:   snap.Ref.Path,
		Data:   snap.Data(),
		decode: snap.DataTo,
	}
}
