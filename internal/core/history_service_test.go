package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fooddelight-backend-go/internal/db"
	"fooddelight-backend-go/internal/models"
)

// fakeHistoryRepo is an in-memory HistoryRepository with the same filter and
// ordering semantics as the Firestore implementation.
type fakeHistoryRepo struct {
	records []*models.HistoryRecord
	nextID  int
	failAll bool
}

func (f *fakeHistoryRepo) Create(_ context.Context, record *models.HistoryRecord) (string, error) {
	if f.failAll {
		return "", errors.New("store down")
	}
	f.nextID++
	id := fmt.Sprintf("rec-%d", f.nextID)
	stored := *record
	stored.ID = id
	f.records = append(f.records, &stored)
	return id, nil
}

func (f *fakeHistoryRepo) List(_ context.Context, filter models.HistoryFilter, limit, offset int) ([]*models.HistoryRecord, error) {
	if f.failAll {
		return nil, errors.New("store down")
	}

	allowed := map[models.ActionType]bool{}
	for _, t := range filter.ActionTypes {
		allowed[t] = true
	}

	var out []*models.HistoryRecord
	for _, r := range f.records {
		if filter.ActionType != "" && r.ActionType != filter.ActionType {
			continue
		}
		if len(allowed) > 0 && !allowed[r.ActionType] {
			continue
		}
		if !filter.Start.IsZero() && r.CreatedAt.Before(filter.Start) {
			continue
		}
		if !filter.End.IsZero() && r.CreatedAt.After(filter.End) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeHistoryRepo) CountByAction(_ context.Context) (map[models.ActionType]int, error) {
	if f.failAll {
		return nil, errors.New("store down")
	}
	counts := map[models.ActionType]int{}
	for _, r := range f.records {
		counts[r.ActionType]++
	}
	return counts, nil
}

func (f *fakeHistoryRepo) PurgeOlderThan(_ context.Context, cutoff time.Time) (int, error) {
	if f.failAll {
		return 0, errors.New("store down")
	}
	var kept []*models.HistoryRecord
	deleted := 0
	for _, r := range f.records {
		if r.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	f.records = kept
	return deleted, nil
}

// fakeUserRepo resolves only the users it was seeded with.
type fakeUserRepo struct {
	users map[string]*models.User
	calls int
}

func (f *fakeUserRepo) GetByID(_ context.Context, userID string) (*models.User, error) {
	f.calls++
	if u, ok := f.users[userID]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("%w: %s", db.ErrNotFound, userID)
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func newTestHistoryService(repo *fakeHistoryRepo, users *fakeUserRepo) HistoryService {
	if users == nil {
		users = &fakeUserRepo{users: map[string]*models.User{}}
	}
	return NewHistoryService(repo, users)
}

func TestHistoryAddRequiresActionTypeAndDescription(t *testing.T) {
	svc := newTestHistoryService(&fakeHistoryRepo{}, nil)

	_, err := svc.Add(context.Background(), "", "did something", nil, "", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Add(context.Background(), models.ActionCreateContent, "", nil, "", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestHistoryAddAcceptsUnknownActionType(t *testing.T) {
	repo := &fakeHistoryRepo{}
	svc := newTestHistoryService(repo, nil)

	record, err := svc.Add(context.Background(), "NIGHTLY_SWEEP", "Retention sweep ran", nil, "", "")
	require.NoError(t, err)
	assert.Equal(t, models.ActionType("NIGHTLY_SWEEP"), record.ActionType)
	assert.NotEmpty(t, record.ID)
	assert.False(t, record.CreatedAt.IsZero())
	assert.Len(t, repo.records, 1)
}

func TestHistoryAddWrapsStoreFailure(t *testing.T) {
	svc := newTestHistoryService(&fakeHistoryRepo{failAll: true}, nil)

	_, err := svc.Add(context.Background(), models.ActionCreateContent, "x", nil, "", "")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestHistoryListNewestFirst(t *testing.T) {
	repo := &fakeHistoryRepo{}
	svc := newTestHistoryService(repo, nil)

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		repo.records = append(repo.records, &models.HistoryRecord{
			ID:          fmt.Sprintf("r%d", i),
			ActionType:  models.ActionCreateContent,
			Description: fmt.Sprintf("entry %d", i),
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
	}

	entries, err := svc.List(context.Background(), models.HistoryFilter{}, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "entry 2", entries[0].Description)
	assert.Equal(t, "entry 0", entries[2].Description)
}

func TestHistoryListRejectsInvertedDateRange(t *testing.T) {
	svc := newTestHistoryService(&fakeHistoryRepo{}, nil)

	filter := models.HistoryFilter{
		Start: time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	_, err := svc.List(context.Background(), filter, 10, 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestHistoryListAllowListFiltersViews(t *testing.T) {
	repo := &fakeHistoryRepo{}
	svc := newTestHistoryService(repo, nil)

	now := time.Now().UTC()
	repo.records = append(repo.records,
		&models.HistoryRecord{ID: "a", ActionType: models.ActionCreateContent, Description: "created", CreatedAt: now},
		&models.HistoryRecord{ID: "b", ActionType: models.ActionViewGallery, Description: "viewed", CreatedAt: now.Add(time.Second)},
	)

	entries, err := svc.List(context.Background(), models.HistoryFilter{ActionTypes: models.AdminVisibleActionTypes}, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "created", entries[0].Description)

	// Without the allow-list the view record is still reachable.
	entries, err = svc.List(context.Background(), models.HistoryFilter{}, 10, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestHistoryListResolvesActors(t *testing.T) {
	repo := &fakeHistoryRepo{}
	users := &fakeUserRepo{users: map[string]*models.User{
		"u-name":  {ID: "u-name", Email: "named@example.com", DisplayName: "Named Admin"},
		"u-email": {ID: "u-email", Email: "plain@example.com"},
	}}
	svc := newTestHistoryService(repo, users)

	now := time.Now().UTC()
	repo.records = append(repo.records,
		&models.HistoryRecord{ID: "1", ActionType: models.ActionCreateContent, Description: "a", UserID: "u-name", CreatedAt: now.Add(3 * time.Second)},
		&models.HistoryRecord{ID: "2", ActionType: models.ActionCreateContent, Description: "b", UserID: "u-email", CreatedAt: now.Add(2 * time.Second)},
		&models.HistoryRecord{ID: "3", ActionType: models.ActionCreateContent, Description: "c", UserID: "u-gone", CreatedAt: now.Add(time.Second)},
		&models.HistoryRecord{ID: "4", ActionType: models.ActionCreateContent, Description: "d", UserID: "", CreatedAt: now},
		&models.HistoryRecord{ID: "5", ActionType: models.ActionCreateContent, Description: "e", UserID: "u-name", CreatedAt: now.Add(4 * time.Second)},
	)

	entries, err := svc.List(context.Background(), models.HistoryFilter{}, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 5)

	byID := map[string]string{}
	for _, e := range entries {
		byID[e.ID] = e.ActorName
	}
	assert.Equal(t, "Named Admin", byID["1"])
	assert.Equal(t, "plain@example.com", byID["2"])
	assert.Equal(t, "System", byID["3"])
	assert.Equal(t, "System", byID["4"])
	assert.Equal(t, "Named Admin", byID["5"])

	// u-name (twice, cached once), u-email, u-gone. The empty ID never hits
	// the repository.
	assert.Equal(t, 3, users.calls)
}

func TestHistoryStatsTotalsMatchBreakdown(t *testing.T) {
	repo := &fakeHistoryRepo{}
	svc := newTestHistoryService(repo, nil)

	now := time.Now().UTC()
	for i := 0; i < 5; i++ {
		repo.records = append(repo.records, &models.HistoryRecord{
			ActionType: models.ActionViewGallery, Description: "v", CreatedAt: now,
		})
	}
	for i := 0; i < 2; i++ {
		repo.records = append(repo.records, &models.HistoryRecord{
			ActionType: models.ActionCreateContent, Description: "c", CreatedAt: now,
		})
	}

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, stats.Total)
	require.Len(t, stats.ByAction, 2)
	assert.Equal(t, models.ActionViewGallery, stats.ByAction[0].ActionType)
	assert.Equal(t, 5, stats.ByAction[0].Count)

	sum := 0
	for _, row := range stats.ByAction {
		sum += row.Count
	}
	assert.Equal(t, stats.Total, sum)
}

func TestHistoryPurgeOlderThan(t *testing.T) {
	repo := &fakeHistoryRepo{}
	svc := newTestHistoryService(repo, nil)

	now := time.Now().UTC()
	repo.records = append(repo.records,
		&models.HistoryRecord{ID: "old1", ActionType: "X", Description: "x", CreatedAt: now.Add(-48 * time.Hour)},
		&models.HistoryRecord{ID: "old2", ActionType: "X", Description: "x", CreatedAt: now.Add(-25 * time.Hour)},
		&models.HistoryRecord{ID: "new", ActionType: "X", Description: "x", CreatedAt: now},
	)

	deleted, err := svc.PurgeOlderThan(context.Background(), now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
	require.Len(t, repo.records, 1)
	assert.Equal(t, "new", repo.records[0].ID)

	_, err = svc.PurgeOlderThan(context.Background(), time.Time{})
	assert.ErrorIs(t, err, ErrValidation)
}
