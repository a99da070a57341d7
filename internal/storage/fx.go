package storage

import (
	"fmt"

	"github.com/fiboy83/vibesphere--sub000/pkg/config"
	"github.com/fiboy83/vibesphere--sub000/pkg/logger"
	pgxprovider "github.com/fiboy83/vibesphere--sub000/pkg/pgx"
	"go.uber.org/fx"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

type Opts struct {
	fx.In
	LC     fx.Lifecycle
	Logger logger.Logger
	Config *config.Config
}

// New picks the driver named by the configuration. The postgres pool is
// only opened when that driver is selected.
func New(opts Opts) (Store, error) {
	switch opts.Config.Storage.Driver {
	case DriverMemory, "":
		opts.Logger.Info("Using in-memory mirror storage", "quota_bytes", opts.Config.Storage.QuotaBytes)
		return NewMemory(opts.Config.Storage.QuotaBytes), nil
	case DriverPostgres:
		pool, err := pgxprovider.New(pgxprovider.Opts{LC: opts.LC, Logger: opts.Logger, Config: opts.Config})
		if err != nil {
			return nil, err
		}
		return NewPgx(pool, opts.Logger, opts.Config.Storage.QuotaBytes), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Config.Storage.Driver)
	}
}

var Module = fx.Module("storage",
	fx.Provide(New),
)
