package toml

import "fmt"

const currentPoolsSchemaVersion = 1

type poolsFileSchema struct {
	Version int          `toml:"version"`
	Pools   []poolSchema `toml:"pools"`
}

func (s *poolsFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentPoolsSchemaVersion
	}
}

func (s poolsFileSchema) validateVersion() error {
	if s.Version > currentPoolsSchemaVersion {
		return fmt.Errorf("unsupported pools schema version %d (current %d)", s.Version, currentPoolsSchemaVersion)
	}

	return nil
}

type poolSchema struct {
	ID    uint64 `toml:"id"`
	Name  string `toml:"name"`
	Token string `toml:"token"`
}
