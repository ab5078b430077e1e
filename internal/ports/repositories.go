package ports

import (
	"context"

	"github.com/bnema/secrecy-farm-cli/internal/domain"
)

type PoolCatalogRepository interface {
	List(ctx context.Context) ([]domain.Pool, error)
}

type PositionRepository interface {
	Load(ctx context.Context) ([]domain.StakePosition, error)
	Save(ctx context.Context, positions []domain.StakePosition) error
}
