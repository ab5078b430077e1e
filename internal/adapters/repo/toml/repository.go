package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/secrecy-farm-cli/internal/domain"
	"github.com/bnema/secrecy-farm-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// ConfigDir is the per-user directory holding config and state files.
	ConfigDir = ".secrecy-farm"

	ledgerPathKey   = "ledger.path"
	ledgerFile      = "positions.toml"
	stateFileMode   = 0o600
	stateDirMode    = 0o700
	tempFilePattern = ".secrecy-farm-*.toml.tmp"
)

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

// PositionRepository stores the ledger snapshot: every stake position the
// wallet holds, written as a whole on each change.
type PositionRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.PositionRepository = (*PositionRepository)(nil)

func NewPositionRepository(cfg *viper.Viper) (*PositionRepository, error) {
	path, err := resolvePath(cfg, ledgerPathKey, ledgerFile)
	if err != nil {
		return nil, err
	}

	return &PositionRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *PositionRepository) Path() string {
	return r.path
}

func (r *PositionRepository) Load(ctx context.Context) ([]domain.StakePosition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	positions := make([]domain.StakePosition, 0, len(file.Positions))
	for _, entry := range file.Positions {
		position, err := fromPositionSchema(entry)
		if err != nil {
			return nil, fmt.Errorf("decode positions file %s: %w", r.path, err)
		}
		positions = append(positions, position)
	}

	return positions, nil
}

func (r *PositionRepository) Save(ctx context.Context, positions []domain.StakePosition) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file := positionsFileSchema{Positions: make([]positionSchema, 0, len(positions))}
	file.applyDefaults()
	for _, position := range positions {
		file.Positions = append(file.Positions, toPositionSchema(position))
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := writeTOMLFile(r.path, file); err != nil {
		return fmt.Errorf("write positions file: %w", err)
	}

	return nil
}

func (r *PositionRepository) readSchema() (positionsFileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return positionsFileSchema{}, nil
		}
		return positionsFileSchema{}, fmt.Errorf("read positions file: %w", err)
	}

	var file positionsFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return positionsFileSchema{}, fmt.Errorf("decode positions file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return positionsFileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

// resolvePath reads key from cfg, falling back to fileName inside ConfigDir
// under the user's home directory.
func resolvePath(cfg *viper.Viper, key string, fileName string) (string, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path := cfg.GetString(key)
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(homeDir, ConfigDir, fileName)
	}

	return normalizePath(path)
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve state path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func writeTOMLFile(path string, file any) error {
	if err := os.MkdirAll(filepath.Dir(path), stateDirMode); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tempFile.Chmod(stateFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(path, stateFileMode); err != nil {
		return fmt.Errorf("chmod file: %w", err)
	}

	return nil
}

func toPositionSchema(position domain.StakePosition) positionSchema {
	return positionSchema{
		StakeID:       uint64(position.StakeID),
		PoolID:        uint64(position.PoolID),
		Amount:        position.Amount,
		Token:         position.Token,
		CreatedAt:     formatTime(position.CreatedAt),
		LastHarvestAt: formatTime(position.LastHarvestAt),
	}
}

func fromPositionSchema(schema positionSchema) (domain.StakePosition, error) {
	createdAt, err := parseTime(schema.CreatedAt)
	if err != nil {
		return domain.StakePosition{}, fmt.Errorf("stake %d created_at: %w", schema.StakeID, err)
	}
	lastHarvestAt, err := parseTime(schema.LastHarvestAt)
	if err != nil {
		return domain.StakePosition{}, fmt.Errorf("stake %d last_harvest_at: %w", schema.StakeID, err)
	}

	return domain.StakePosition{
		StakeID:       domain.StakeID(schema.StakeID),
		PoolID:        domain.PoolID(schema.PoolID),
		Amount:        schema.Amount,
		Token:         schema.Token,
		CreatedAt:     createdAt,
		LastHarvestAt: lastHarvestAt,
	}, nil
}

// Reward estimates are computed from LastHarvestAt, so sub-second precision
// is kept and a missing timestamp is an error.
func parseTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("missing timestamp")
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", raw, err)
	}

	return parsed, nil
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339Nano)
}
