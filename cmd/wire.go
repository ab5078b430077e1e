package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/bnema/secrecy-farm-cli/internal/adapters/crypto/placeholder"
	"github.com/bnema/secrecy-farm-cli/internal/adapters/gateway/simulated"
	dashboardadapter "github.com/bnema/secrecy-farm-cli/internal/adapters/render/dashboard"
	tomlrepo "github.com/bnema/secrecy-farm-cli/internal/adapters/repo/toml"
	sessionfile "github.com/bnema/secrecy-farm-cli/internal/adapters/session/file"
	"github.com/bnema/secrecy-farm-cli/internal/application"
	"github.com/bnema/secrecy-farm-cli/internal/ports"
)

type app struct {
	farm      *application.FarmService
	session   *sessionfile.Session
	positions *tomlrepo.PositionRepository
	logger    *slog.Logger
	now       func() time.Time

	renderDashboard func(application.Dashboard, dashboardadapter.RenderOptions) (string, error)

	persistMu  sync.Mutex
	persistErr error
}

func wireApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return nil, err
	}

	catalog, err := tomlrepo.NewPoolCatalogRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire pool catalog: %w", err)
	}
	pools, err := catalog.List(context.Background())
	if err != nil {
		return nil, fmt.Errorf("load pool catalog: %w", err)
	}

	overrides, err := priceOverrides(cfg)
	if err != nil {
		return nil, err
	}

	clock := ports.SystemClock{}
	ledger, err := application.NewPositionLedger(pools, application.DefaultPriceTable().WithOverrides(overrides), clock)
	if err != nil {
		return nil, fmt.Errorf("wire position ledger: %w", err)
	}

	positions, err := tomlrepo.NewPositionRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire position repository: %w", err)
	}
	snapshot, err := positions.Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("load positions: %w", err)
	}
	if err := ledger.Restore(snapshot); err != nil {
		return nil, fmt.Errorf("restore positions from %s: %w", positions.Path(), err)
	}

	session, err := sessionfile.Open(cfg.GetString(sessionPathKey))
	if err != nil {
		return nil, fmt.Errorf("wire wallet session: %w", err)
	}

	gateway, err := simulated.New(simulated.Options{
		Pools:        pools,
		Wallet:       session,
		Clock:        clock,
		ConfirmDelay: cfg.GetDuration(confirmDelayKey),
		FailReason:   cfg.GetString(failReasonKey),
		Logger:       logger.With("component", "gateway"),
	})
	if err != nil {
		return nil, fmt.Errorf("wire contract gateway: %w", err)
	}
	// Positions on disk belong to whichever wallet is connected now.
	owner, _ := session.Address()
	gateway.Seed(owner, snapshot)

	a := &app{
		farm:            application.NewFarmService(ledger, gateway, placeholder.Encryptor{}, session, clock, logger),
		session:         session,
		positions:       positions,
		logger:          logger,
		now:             time.Now,
		renderDashboard: dashboardadapter.Render,
	}
	ledger.Subscribe(a.persist)

	return a, nil
}

// persist writes the ledger snapshot after every committed change. Commands
// check persistError before reporting success.
func (a *app) persist(event application.LedgerEvent) {
	err := a.positions.Save(context.Background(), a.farm.Ledger().Positions())
	if err != nil {
		a.logger.Error("persist positions", "event", event.Kind, "stake_id", event.Position.StakeID, "error", err)
	}

	a.persistMu.Lock()
	a.persistErr = err
	a.persistMu.Unlock()
}

func (a *app) persistError() error {
	a.persistMu.Lock()
	defer a.persistMu.Unlock()
	return a.persistErr
}
