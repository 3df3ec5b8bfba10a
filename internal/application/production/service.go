// Package production manages daily production log entries.
package production

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chicktrack-api/internal/domain"
	"github.com/chicktrack-api/internal/pkg/id"
)

const (
	fieldBatchCode = "batch_code"
	fieldDate      = "date"
	fieldEggs      = "eggs"
	fieldFeedKg    = "feed_kg"
	fieldDeaths    = "deaths"
	fieldExpenses  = "expenses"
	fieldNotes     = "notes"
)

type logStore interface {
	Put(ctx context.Context, l *domain.ProductionLog) error
	Get(ctx context.Context, logID string) (*domain.ProductionLog, error)
	List(ctx context.Context, batchCode string) ([]domain.ProductionLog, error)
	Update(ctx context.Context, logID string, updates map[string]interface{}) error
	Delete(ctx context.Context, logID string) error
}

type batchStore interface {
	GetByCode(ctx context.Context, code string) (*domain.Batch, error)
}

type Service interface {
	Create(ctx context.Context, req domain.CreateLogRequest) (*domain.ProductionLog, error)
	List(ctx context.Context, batchCode string) ([]domain.ProductionLog, error)
	Get(ctx context.Context, logID string) (*domain.ProductionLog, error)
	Update(ctx context.Context, logID string, req domain.UpdateLogRequest) (*domain.ProductionLog, error)
	Delete(ctx context.Context, logID string) error
}

type service struct {
	logs    logStore
	batches batchStore
}

func NewService(logs logStore, batches batchStore) Service {
	return &service{logs: logs, batches: batches}
}

func (s *service) Create(ctx context.Context, req domain.CreateLogRequest) (*domain.ProductionLog, error) {
	if _, err := s.batches.GetByCode(ctx, req.BatchCode); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("unknown batch code %q: %w", req.BatchCode, domain.ErrBadRequest)
		}
		return nil, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	l := &domain.ProductionLog{
		LogID:     id.New(),
		BatchCode: req.BatchCode,
		Date:      date,
		Eggs:      req.Eggs,
		FeedKg:    req.FeedKg,
		Deaths:    req.Deaths,
		Expenses:  req.Expenses,
		Notes:     req.Notes,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.logs.Put(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// List returns logs for one batch when batchCode is non-empty, otherwise all.
func (s *service) List(ctx context.Context, batchCode string) ([]domain.ProductionLog, error) {
	return s.logs.List(ctx, batchCode)
}

func (s *service) Get(ctx context.Context, logID string) (*domain.ProductionLog, error) {
	return s.logs.Get(ctx, logID)
}

func (s *service) Update(ctx context.Context, logID string, req domain.UpdateLogRequest) (*domain.ProductionLog, error) {
	updates := map[string]interface{}{}
	if req.BatchCode != nil {
		if _, err := s.batches.GetByCode(ctx, *req.BatchCode); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("unknown batch code %q: %w", *req.BatchCode, domain.ErrBadRequest)
			}
			return nil, err
		}
		updates[fieldBatchCode] = *req.BatchCode
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		updates[fieldDate] = date.Format(time.RFC3339)
	}
	if req.Eggs != nil {
		updates[fieldEggs] = *req.Eggs
	}
	if req.FeedKg != nil {
		updates[fieldFeedKg] = *req.FeedKg
	}
	if req.Deaths != nil {
		updates[fieldDeaths] = *req.Deaths
	}
	if req.Expenses != nil {
		updates[fieldExpenses] = *req.Expenses
	}
	if req.Notes != nil {
		updates[fieldNotes] = *req.Notes
	}
	if len(updates) == 0 {
		return s.logs.Get(ctx, logID)
	}
	if _, err := s.logs.Get(ctx, logID); err != nil {
		return nil, err
	}
	if err := s.logs.Update(ctx, logID, updates); err != nil {
		return nil, err
	}
	return s.logs.Get(ctx, logID)
}

func (s *service) Delete(ctx context.Context, logID string) error {
	if _, err := s.logs.Get(ctx, logID); err != nil {
		return err
	}
	return s.logs.Delete(ctx, logID)
}

// parseDate accepts YYYY-MM-DD or full RFC 3339 timestamps.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD or RFC 3339: %w", domain.ErrBadRequest)
}
