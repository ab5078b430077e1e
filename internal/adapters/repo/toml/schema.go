package toml

import "fmt"

const currentPositionsSchemaVersion = 1

type positionsFileSchema struct {
	Version   int              `toml:"version"`
	Positions []positionSchema `toml:"positions"`
}

func (s *positionsFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentPositionsSchemaVersion
	}
}

func (s positionsFileSchema) validateVersion() error {
	if s.Version > currentPositionsSchemaVersion {
		return fmt.Errorf("unsupported positions schema version %d (current %d)", s.Version, currentPositionsSchemaVersion)
	}

	return nil
}

type positionSchema struct {
	StakeID       uint64 `toml:"stake_id"`
	PoolID        uint64 `toml:"pool_id"`
	Amount        string `toml:"amount"`
	Token         string `toml:"token"`
	CreatedAt     string `toml:"created_at"`
	LastHarvestAt string `toml:"last_harvest_at"`
}
