package kv

import (
	"context"
	"fmt"

	"github.com/alexanderramin/shutterflow/internal/config"
)

// Open selects a Store implementation from the storage configuration.
//
//	sqlite   local file at cfg.Path (default)
//	memory   process-local, lost on exit
//	redis    cfg.RedisAddr / cfg.RedisDB, keys prefixed with cfg.KeyPrefix
//	postgres cfg.PostgresDSN, keys prefixed with cfg.KeyPrefix
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		return OpenSQLite(cfg.Path)
	case config.DriverMemory:
		return NewMemory(), nil
	case config.DriverRedis:
		s, err := OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		return WithPrefix(s, cfg.KeyPrefix), nil
	case config.DriverPostgres:
		s, err := OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return WithPrefix(s, cfg.KeyPrefix), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
