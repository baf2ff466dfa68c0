package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"fooddelight-backend-go/internal/db"
	"fooddelight-backend-go/internal/models"
)

// Errors surfaced by the history subsystem.
var (
	// ErrValidation marks input problems: missing required fields on a write,
	// or a malformed filter on a read. Surfaced to the caller, never swallowed.
	ErrValidation = errors.New("validation failed")
	// ErrStoreUnavailable wraps persistence-layer failures. The recorder
	// middleware catches it and logs diagnostically; inline callers decide for
	// themselves (routes in this codebase swallow it so a logging failure
	// never fails the primary action).
	ErrStoreUnavailable = errors.New("history store unavailable")
)

// systemActorName is the display name used when a record has no actor or the
// referenced user can no longer be resolved.
const systemActorName = "System"

// historyService implements the HistoryService interface.
type historyService struct {
	historyRepo db.HistoryRepository
	userRepo    db.UserRepository
}

// NewHistoryService creates a new HistoryService instance. The user
// repository is used only on the read side, to resolve actor display names.
func NewHistoryService(historyRepo db.HistoryRepository, userRepo db.UserRepository) HistoryService {
	return &historyService{
		historyRepo: historyRepo,
		userRepo:    userRepo,
	}
}

// Add appends one history record with CreatedAt set to now. ActionType and
// description are required; everything else is optional. Tags outside the
// known set are accepted on purpose so system callers are never blocked.
func (s *historyService) Add(ctx context.Context, actionType models.ActionType, description string, data map[string]interface{}, userID, ipAddress string) (*models.HistoryRecord, error) {
	if s.historyRepo == nil {
		return nil, errors.New("HistoryRepository not initialized in HistoryService")
	}
	if actionType == "" {
		return nil, fmt.Errorf("%w: actionType is required", ErrValidation)
	}
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}

	record := &models.HistoryRecord{
		ActionType:  actionType,
		Description: description,
		UserID:      userID,
		Data:        data,
		IPAddress:   ipAddress,
		CreatedAt:   time.Now().UTC(),
	}

	id, err := s.historyRepo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	record.ID = id
	return record, nil
}

// List returns records newest first, each joined with its actor's display
// name. Actor lookups are cached per call; absent or unresolvable actors
// resolve to "System" so a deleted user never breaks the read path.
func (s *historyService) List(ctx context.Context, filter models.HistoryFilter, limit, offset int) ([]*models.HistoryEntry, error) {
	if s.historyRepo == nil {
		return nil, errors.New("HistoryRepository not initialized in HistoryService")
	}
	if !filter.Start.IsZero() && !filter.End.IsZero() && filter.End.Before(filter.Start) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrValidation)
	}

	records, err := s.historyRepo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	names := make(map[string]string)
	entries := make([]*models.HistoryEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, &models.HistoryEntry{
			HistoryRecord: *record,
			ActorName:     s.resolveActor(ctx, record.UserID, names),
		})
	}
	return entries, nil
}

// resolveActor maps a user ID to a display name, consulting the per-call
// cache first. Lookup failures fall back to the system name rather than
// failing the listing.
func (s *historyService) resolveActor(ctx context.Context, userID string, cache map[string]string) string {
	if userID == "" {
		return systemActorName
	}
	if name, ok := cache[userID]; ok {
		return name
	}

	name := systemActorName
	if s.userRepo != nil {
		if user, err := s.userRepo.GetByID(ctx, userID); err == nil && user != nil {
			if user.DisplayName != "" {
				name = user.DisplayName
			} else if user.Email != "" {
				name = user.Email
			}
		}
	}
	cache[userID] = name
	return name
}

// Stats returns the total record count and the per-action breakdown, sorted
// by count descending. The total always equals the sum of the counts.
func (s *historyService) Stats(ctx context.Context) (*models.HistoryStats, error) {
	if s.historyRepo == nil {
		return nil, errors.New("HistoryRepository not initialized in HistoryService")
	}
	counts, err := s.historyRepo.CountByAction(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	stats := &models.HistoryStats{ByAction: make([]models.ActionCount, 0, len(counts))}
	for actionType, count := range counts {
		stats.Total += count
		stats.ByAction = append(stats.ByAction, models.ActionCount{ActionType: actionType, Count: count})
	}
	sort.Slice(stats.ByAction, func(i, j int) bool {
		if stats.ByAction[i].Count != stats.ByAction[j].Count {
			return stats.ByAction[i].Count > stats.ByAction[j].Count
		}
		return stats.ByAction[i].ActionType < stats.ByAction[j].ActionType
	})
	return stats, nil
}

// PurgeOlderThan removes records created before cutoff and returns the number
// deleted. Administrative retention sweep; never called from the write path.
func (s *historyService) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	if s.historyRepo == nil {
		return 0, errors.New("HistoryRepository not initialized in HistoryService")
	}
	if cutoff.IsZero() {
		return 0, fmt.Errorf("%w: cutoff is required", ErrValidation)
	}
	deleted, err := s.historyRepo.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return deleted, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return deleted, nil
}
