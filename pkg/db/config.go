package db

import (
	"time"

	"github.com/smallbiznis/ecoai/internal/config"
)

// PoolConfig holds connection pool limits.
type PoolConfig struct {
	MaxIdleConn     int
	MaxOpenConn     int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

func poolConfig(cfg config.Config) PoolConfig {
	pool := PoolConfig{
		MaxIdleConn:     cfg.DBMaxIdleConn,
		MaxOpenConn:     cfg.DBMaxOpenConn,
		ConnMaxLifetime: time.Duration(cfg.DBConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.DBConnMaxIdleTime) * time.Second,
	}
	if cfg.DBType == TypeSQLite || cfg.DBType == TypeSQLiteCGO {
		// sqlite allows a single writer.
		pool.MaxOpenConn = 1
		pool.MaxIdleConn = 1
	}
	return pool
}
