package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/bnema/secrecy-farm-cli/internal/domain"
	"github.com/bnema/secrecy-farm-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	poolsPathKey   = "pools.path"
	poolConfigFile = "pools.toml"
)

// PoolCatalogRepository reads the pool catalog. A missing file yields the
// built-in catalog.
type PoolCatalogRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.PoolCatalogRepository = (*PoolCatalogRepository)(nil)

func NewPoolCatalogRepository(cfg *viper.Viper) (*PoolCatalogRepository, error) {
	path, err := resolvePath(cfg, poolsPathKey, poolConfigFile)
	if err != nil {
		return nil, err
	}

	return &PoolCatalogRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *PoolCatalogRepository) List(ctx context.Context) ([]domain.Pool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, found, err := r.readSchema()
	if err != nil {
		return nil, err
	}
	if !found {
		return domain.DefaultPools(), nil
	}

	pools := make([]domain.Pool, 0, len(file.Pools))
	for _, entry := range file.Pools {
		pool := fromPoolSchema(entry)
		if err := pool.Validate(); err != nil {
			return nil, fmt.Errorf("pool %d in %s: %w", entry.ID, r.path, err)
		}
		pools = append(pools, pool)
	}

	return pools, nil
}

// Save replaces the catalog file with pools, in order.
func (r *PoolCatalogRepository) Save(ctx context.Context, pools []domain.Pool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	file := poolsFileSchema{Pools: make([]poolSchema, 0, len(pools))}
	file.applyDefaults()
	for _, pool := range pools {
		if err := pool.Validate(); err != nil {
			return fmt.Errorf("pool %d: %w", pool.ID, err)
		}
		file.Pools = append(file.Pools, toPoolSchema(pool))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := writeTOMLFile(r.path, file); err != nil {
		return fmt.Errorf("write pools file: %w", err)
	}

	return nil
}

func (r *PoolCatalogRepository) readSchema() (poolsFileSchema, bool, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return poolsFileSchema{}, false, nil
		}
		return poolsFileSchema{}, false, fmt.Errorf("read pools file: %w", err)
	}

	var file poolsFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return poolsFileSchema{}, false, fmt.Errorf("decode pools file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return poolsFileSchema{}, false, err
	}
	file.applyDefaults()

	return file, true, nil
}

func toPoolSchema(pool domain.Pool) poolSchema {
	return poolSchema{
		ID:    uint64(pool.ID),
		Name:  pool.Name,
		Token: pool.Token,
	}
}

func fromPoolSchema(schema poolSchema) domain.Pool {
	return domain.Pool{
		ID:    domain.PoolID(schema.ID),
		Name:  schema.Name,
		Token: schema.Token,
	}
}
