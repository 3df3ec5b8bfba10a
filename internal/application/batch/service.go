// Package batch manages flock batches.
package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chicktrack-api/internal/domain"
	"github.com/chicktrack-api/internal/infrastructure/dynamo"
	"github.com/chicktrack-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldName     = "name"
	fieldBreed    = "breed"
	fieldAgeWeeks = "age_weeks"
	fieldChickens = "chickens"
	fieldStatus   = "status"
)

type Service interface {
	Create(ctx context.Context, req domain.CreateBatchRequest) (*domain.Batch, error)
	List(ctx context.Context) ([]domain.Batch, error)
	Get(ctx context.Context, batchID string) (*domain.Batch, error)
	Recent(ctx context.Context, limit int) ([]domain.Batch, error)
	Update(ctx context.Context, batchID string, req domain.UpdateBatchRequest) (*domain.Batch, error)
	Delete(ctx context.Context, batchID string) error
}

type service struct {
	repo *dynamo.BatchRepo
}

func NewService(repo *dynamo.BatchRepo) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req domain.CreateBatchRequest) (*domain.Batch, error) {
	if _, err := s.repo.GetByCode(ctx, req.Code); err == nil {
		return nil, fmt.Errorf("batch code already in use: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = "active"
	}
	now := time.Now().UTC()
	b := &domain.Batch{
		BatchID:   id.New(),
		Code:      req.Code,
		Name:      req.Name,
		Breed:     req.Breed,
		AgeWeeks:  req.AgeWeeks,
		Chickens:  req.Chickens,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Put(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) List(ctx context.Context) ([]domain.Batch, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, batchID string) (*domain.Batch, error) {
	return s.repo.Get(ctx, batchID)
}

// Recent returns the newest batches, at most limit.
func (s *service) Recent(ctx context.Context, limit int) ([]domain.Batch, error) {
	if limit < 1 {
		limit = 5
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *service) Update(ctx context.Context, batchID string, req domain.UpdateBatchRequest) (*domain.Batch, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates[fieldName] = *req.Name
	}
	if req.Breed != nil {
		updates[fieldBreed] = *req.Breed
	}
	if req.AgeWeeks != nil {
		updates[fieldAgeWeeks] = *req.AgeWeeks
	}
	if req.Chickens != nil {
		updates[fieldChickens] = *req.Chickens
	}
	if req.Status != nil {
		updates[fieldStatus] = *req.Status
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, batchID)
	}
	if _, err := s.repo.Get(ctx, batchID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, batchID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, batchID)
}

func (s *service) Delete(ctx context.Context, batchID string) error {
	if _, err := s.repo.Get(ctx, batchID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, batchID)
}
