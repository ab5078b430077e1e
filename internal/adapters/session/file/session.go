package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/secrecy-farm-cli/internal/ports"
	"github.com/ethereum/go-ethereum/common"
)

const (
	sessionDirMode  = 0o700
	sessionFileMode = 0o600
)

// Session is a wallet session persisted as a single file holding the
// connected address. No file means no connected wallet.
type Session struct {
	path string

	mu        sync.RWMutex
	address   common.Address
	connected bool
}

var _ ports.WalletSession = (*Session)(nil)

// Open loads the session stored at path.
func Open(path string) (*Session, error) {
	s := &Session{path: filepath.Clean(path)}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read wallet session: %w", err)
	}

	raw := strings.TrimSpace(string(data))
	if raw == "" {
		return s, nil
	}
	if !common.IsHexAddress(raw) {
		return nil, fmt.Errorf("wallet session %s holds invalid address %q", s.path, raw)
	}

	s.address = common.HexToAddress(raw)
	s.connected = true
	return s, nil
}

func (s *Session) Address() (common.Address, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.address, s.connected
}

// Connect records raw as the connected wallet. raw must be a 20 byte hex
// address.
func (s *Session) Connect(ctx context.Context, raw string) (common.Address, error) {
	if err := ctx.Err(); err != nil {
		return common.Address{}, err
	}

	trimmed := strings.TrimSpace(raw)
	if !common.IsHexAddress(trimmed) {
		return common.Address{}, fmt.Errorf("invalid wallet address %q", raw)
	}
	address := common.HexToAddress(trimmed)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), sessionDirMode); err != nil {
		return common.Address{}, fmt.Errorf("create wallet session directory: %w", err)
	}

	if err := os.WriteFile(s.path, []byte(address.Hex()+"\n"), sessionFileMode); err != nil {
		return common.Address{}, fmt.Errorf("write wallet session: %w", err)
	}

	s.address = address
	s.connected = true
	return address, nil
}

func (s *Session) Disconnect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete wallet session: %w", err)
	}

	s.address = common.Address{}
	s.connected = false
	return nil
}
