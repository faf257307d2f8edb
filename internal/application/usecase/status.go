package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"learnfromvideo/internal/domain"
)

const maxStatusList = 1000

type StatusStore interface {
	Create(ctx context.Context, s *domain.StatusCheck) error
	List(ctx context.Context, limit int) ([]domain.StatusCheck, error)
}

type StatusUseCase struct {
	statuses StatusStore
}

func NewStatusUseCase(ss StatusStore) *StatusUseCase {
	return &StatusUseCase{statuses: ss}
}

func (uc *StatusUseCase) Create(ctx context.Context, clientName string) (*domain.StatusCheck, error) {
	check := &domain.StatusCheck{
		ID:         uuid.New(),
		ClientName: clientName,
		Timestamp:  time.Now().UTC(),
	}
	if err := uc.statuses.Create(ctx, check); err != nil {
		return nil, err
	}
	return check, nil
}

func (uc *StatusUseCase) List(ctx context.Context) ([]domain.StatusCheck, error) {
	return uc.statuses.List(ctx, maxStatusList)
}
