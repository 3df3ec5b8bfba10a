// Package user manages farmer profiles.
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chicktrack-api/internal/domain"
	"github.com/chicktrack-api/internal/pkg/id"
	"github.com/chicktrack-api/internal/pkg/phone"
)

const (
	fieldName  = "name"
	fieldPhone = "phone"
)

type userStore interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type Service interface {
	// Upsert creates a profile for a new email or refreshes name/phone on an
	// existing one. Accounts created this way have no password.
	Upsert(ctx context.Context, req domain.UpsertUserRequest) (*domain.User, bool, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type service struct {
	repo userStore
}

func NewService(repo userStore) Service {
	return &service{repo: repo}
}

func (s *service) Upsert(ctx context.Context, req domain.UpsertUserRequest) (*domain.User, bool, error) {
	if req.Phone != nil {
		p, ok := phone.Canonical(*req.Phone)
		if !ok {
			return nil, false, fmt.Errorf("phone must be E.164, e.g. +254712345678: %w", domain.ErrBadRequest)
		}
		req.Phone = &p
	}

	existing, err := s.repo.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		updates := map[string]interface{}{fieldName: req.Name}
		if req.Phone != nil {
			updates[fieldPhone] = *req.Phone
		}
		if err := s.repo.Update(ctx, existing.UserID, updates); err != nil {
			return nil, false, err
		}
		existing.Name = req.Name
		if req.Phone != nil {
			existing.Phone = req.Phone
		}
		existing.UpdatedAt = time.Now().UTC()
		return existing, false, nil
	case errors.Is(err, domain.ErrNotFound):
		now := time.Now().UTC()
		u := &domain.User{
			UserID:    id.New(),
			Name:      req.Name,
			Email:     req.Email,
			Phone:     req.Phone,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.repo.Put(ctx, u); err != nil {
			return nil, false, err
		}
		return u, true, nil
	default:
		return nil, false, err
	}
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.Get(ctx, userID)
}
