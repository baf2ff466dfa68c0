package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"fooddelight-backend-go/internal/models"
)

const historyCollection = "history"

// firestoreHistoryRepository implements the HistoryRepository interface using
// Firestore. The collection is append-only: no update method exists, and the
// only delete path is the retention purge.
type firestoreHistoryRepository struct {
	client *firestore.Client
}

// NewFirestoreHistoryRepository creates a new instance of firestoreHistoryRepository.
func NewFirestoreHistoryRepository(client *firestore.Client) HistoryRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for HistoryRepository.")
	}
	return &firestoreHistoryRepository{client: client}
}

// Create appends a new history record and returns its document ID.
// record.CreatedAt must already be set by the caller (the service sets it at
// append time); it is the sole ordering signal for reads.
func (r *firestoreHistoryRepository) Create(ctx context.Context, record *models.HistoryRecord) (string, error) {
	if record == nil {
		return "", errors.New("history record cannot be nil for Create operation")
	}
	ref := r.client.Collection(historyCollection).NewDoc()
	if _, err := ref.Create(ctx, record); err != nil {
		return "", fmt.Errorf("failed to create history record: %w", err)
	}
	return ref.ID, nil
}

// List retrieves history records ordered by createdAt descending. Zero-value
// filter fields are ignored. The End bound is inclusive; callers expressing a
// calendar date pass the end of that day.
func (r *firestoreHistoryRepository) List(ctx context.Context, filter models.HistoryFilter, limit, offset int) ([]*models.HistoryRecord, error) {
	q := r.client.Collection(historyCollection).Query

	if filter.ActionType != "" {
		q = q.Where("actionType", "==", string(filter.ActionType))
	}
	if len(filter.ActionTypes) > 0 {
		types := make([]string, 0, len(filter.ActionTypes))
		for _, at := range filter.ActionTypes {
			types = append(types, string(at))
		}
		q = q.Where("actionType", "in", types)
	}
	if !filter.Start.IsZero() {
		q = q.Where("createdAt", ">=", filter.Start)
	}
	if !filter.End.IsZero() {
		q = q.Where("createdAt", "<=", filter.End)
	}

	q = q.OrderBy("createdAt", firestore.Desc)
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var records []*models.HistoryRecord
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate history records: %w", err)
		}
		var record models.HistoryRecord
		if err := docSnap.DataTo(&record); err != nil {
			return nil, fmt.Errorf("failed to decode history record '%s': %w", docSnap.Ref.ID, err)
		}
		record.ID = docSnap.Ref.ID
		records = append(records, &record)
	}
	return records, nil
}

// CountByAction returns the number of records per action type across the
// whole collection. Only the actionType field is fetched.
func (r *firestoreHistoryRepository) CountByAction(ctx context.Context) (map[models.ActionType]int, error) {
	iter := r.client.Collection(historyCollection).Select("actionType").Documents(ctx)
	defer iter.Stop()

	counts := make(map[models.ActionType]int)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate history records for counting: %w", err)
		}
		var record models.HistoryRecord
		if err := docSnap.DataTo(&record); err != nil {
			return nil, fmt.Errorf("failed to decode history record '%s': %w", docSnap.Ref.ID, err)
		}
		counts[record.ActionType]++
	}
	return counts, nil
}

// PurgeOlderThan bulk-deletes records created before cutoff and returns the
// number deleted.
func (r *firestoreHistoryRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	iter := r.client.Collection(historyCollection).
		Where("createdAt", "<", cutoff).
		Documents(ctx)
	defer iter.Stop()

	bw := r.client.BulkWriter(ctx)
	deleted := 0
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			bw.End()
			return deleted, fmt.Errorf("failed to iterate history records for purge: %w", err)
		}
		if _, err := bw.Delete(docSnap.Ref); err != nil {
			bw.End()
			return deleted, fmt.Errorf("failed to delete history record '%s': %w", docSnap.Ref.ID, err)
		}
		deleted++
	}
	bw.End()
	return deleted, nil
}
