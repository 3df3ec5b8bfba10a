// Package alert records and serves dashboard alerts.
package alert

import (
	"context"
	"time"

	"github.com/chicktrack-api/internal/domain"
	"github.com/chicktrack-api/internal/infrastructure/dynamo"
	"github.com/chicktrack-api/internal/pkg/id"
)

type Service interface {
	Record(ctx context.Context, alertType, message string) (*domain.Alert, error)
	Recent(ctx context.Context, limit int) ([]domain.Alert, error)
}

type service struct {
	repo *dynamo.AlertRepo
}

func NewService(repo *dynamo.AlertRepo) Service {
	return &service{repo: repo}
}

func (s *service) Record(ctx context.Context, alertType, message string) (*domain.Alert, error) {
	switch alertType {
	case "info", "warning", "error":
	default:
		alertType = "info"
	}
	a := &domain.Alert{
		AlertID:   id.New(),
		Type:      alertType,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Recent(ctx context.Context, limit int) ([]domain.Alert, error) {
	if limit < 1 {
		limit = 10
	}
	return s.repo.ListRecent(ctx, limit)
}
