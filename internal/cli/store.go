package cli

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wesen/boxline/internal/config"
	"github.com/wesen/boxline/internal/persist"
)

// openStore opens the configured backend. The returned close function is
// never nil.
func openStore(cfg config.Store, log *zap.Logger) (persist.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Backend {
	case config.BackendFile:
		return persist.NewFileStore(cfg.Path), noop, nil
	case config.BackendMemory:
		return persist.NewMemoryStore(nil), noop, nil
	case config.BackendBadger:
		db, err := persist.OpenBadger(persist.BadgerConfig{
			Path:       cfg.Path,
			Key:        cfg.Key,
			SyncWrites: true,
			Logger:     log.Named("badger"),
		})
		if err != nil {
			return nil, noop, err
		}
		return db, db.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown store backend %q", cfg.Backend)
}
