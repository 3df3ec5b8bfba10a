package production

import (
	"context"
	"testing"
	"time"

	"github.com/chicktrack-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLogStore struct{ mock.Mock }

func (m *mockLogStore) Put(ctx context.Context, l *domain.ProductionLog) error {
	return m.Called(ctx, l).Error(0)
}

func (m *mockLogStore) Get(ctx context.Context, logID string) (*domain.ProductionLog, error) {
	args := m.Called(ctx, logID)
	if l := args.Get(0); l != nil {
		return l.(*domain.ProductionLog), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLogStore) List(ctx context.Context, batchCode string) ([]domain.ProductionLog, error) {
	args := m.Called(ctx, batchCode)
	if l := args.Get(0); l != nil {
		return l.([]domain.ProductionLog), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLogStore) Update(ctx context.Context, logID string, updates map[string]interface{}) error {
	return m.Called(ctx, logID, updates).Error(0)
}

func (m *mockLogStore) Delete(ctx context.Context, logID string) error {
	return m.Called(ctx, logID).Error(0)
}

type mockBatchStore struct{ mock.Mock }

func (m *mockBatchStore) GetByCode(ctx context.Context, code string) (*domain.Batch, error) {
	args := m.Called(ctx, code)
	if b := args.Get(0); b != nil {
		return b.(*domain.Batch), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreate_ParsesDayOnlyDate(t *testing.T) {
	logs := new(mockLogStore)
	batches := new(mockBatchStore)
	batches.On("GetByCode", mock.Anything, "B-01").Return(&domain.Batch{Code: "B-01"}, nil)

	var stored *domain.ProductionLog
	logs.On("Put", mock.Anything, mock.AnythingOfType("*domain.ProductionLog")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.ProductionLog) }).
		Return(nil)

	svc := NewService(logs, batches)
	l, err := svc.Create(context.Background(), domain.CreateLogRequest{
		BatchCode: "B-01", Date: "2026-03-15", Eggs: 240, FeedKg: 12.5, Deaths: 1,
	})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), l.Date)
	assert.Equal(t, 240, stored.Eggs)
	assert.NotEmpty(t, stored.LogID)
}

func TestCreate_ParsesRFC3339Date(t *testing.T) {
	logs := new(mockLogStore)
	batches := new(mockBatchStore)
	batches.On("GetByCode", mock.Anything, mock.Anything).Return(&domain.Batch{}, nil)
	logs.On("Put", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(logs, batches)
	l, err := svc.Create(context.Background(), domain.CreateLogRequest{
		BatchCode: "B-01", Date: "2026-03-15T08:30:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, 8, l.Date.Hour())
}

func TestCreate_RejectsBadDate(t *testing.T) {
	logs := new(mockLogStore)
	batches := new(mockBatchStore)
	batches.On("GetByCode", mock.Anything, mock.Anything).Return(&domain.Batch{}, nil)

	svc := NewService(logs, batches)
	_, err := svc.Create(context.Background(), domain.CreateLogRequest{
		BatchCode: "B-01", Date: "15/03/2026",
	})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestCreate_RejectsUnknownBatch(t *testing.T) {
	logs := new(mockLogStore)
	batches := new(mockBatchStore)
	batches.On("GetByCode", mock.Anything, "NOPE").Return(nil, domain.ErrNotFound)

	svc := NewService(logs, batches)
	_, err := svc.Create(context.Background(), domain.CreateLogRequest{
		BatchCode: "NOPE", Date: "2026-03-15",
	})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	logs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestUpdate_NoFieldsIsReadback(t *testing.T) {
	logs := new(mockLogStore)
	existing := &domain.ProductionLog{LogID: "l1", BatchCode: "B-01"}
	logs.On("Get", mock.Anything, "l1").Return(existing, nil)

	svc := NewService(logs, new(mockBatchStore))
	l, err := svc.Update(context.Background(), "l1", domain.UpdateLogRequest{})
	require.NoError(t, err)
	assert.Equal(t, existing, l)
	logs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_StoresRFC3339Date(t *testing.T) {
	logs := new(mockLogStore)
	logs.On("Get", mock.Anything, "l1").Return(&domain.ProductionLog{LogID: "l1"}, nil)
	logs.On("Update", mock.Anything, "l1", map[string]interface{}{
		"date": "2026-04-01T00:00:00Z",
	}).Return(nil)

	svc := NewService(logs, new(mockBatchStore))
	date := "2026-04-01"
	_, err := svc.Update(context.Background(), "l1", domain.UpdateLogRequest{Date: &date})
	require.NoError(t, err)
	logs.AssertExpectations(t)
}

func TestDelete_MissingLog(t *testing.T) {
	logs := new(mockLogStore)
	logs.On("Get", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	svc := NewService(logs, new(mockBatchStore))
	err := svc.Delete(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	logs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
