package database

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// Ping kiểm tra database connection có còn sống và responsive không.
// Used by the /health endpoint.
func (db *PostgresDB) Ping(ctx context.Context) error {
	if db.Pool == nil {
		return ErrUnavailable
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close đóng tất cả connections trong pool. Safe to call multiple times.
func (db *PostgresDB) Close() error {
	if db.Pool == nil {
		return nil
	}

	log.Info().Msg("[DATABASE] Closing database connection pool...")
	db.Pool.Close()
	db.Pool = nil
	log.Info().Msg("[DATABASE] Connection pool closed successfully")
	return nil
}

// RegisterPoolMetrics exposes pool statistics as prometheus gauges.
func (db *PostgresDB) RegisterPoolMetrics(reg prometheus.Registerer) error {
	if db.Pool == nil {
		return ErrUnavailable
	}
	pool := db.Pool

	gauges := []struct {
		name string
		help string
		fn   func() float64
	}{
		{"acquired_conns", "Connections currently in use.", func() float64 { return float64(pool.Stat().AcquiredConns()) }},
		{"idle_conns", "Idle connections ready to use.", func() float64 { return float64(pool.Stat().IdleConns()) }},
		{"total_conns", "Total connections in the pool.", func() float64 { return float64(pool.Stat().TotalConns()) }},
		{"max_conns", "Configured connection limit.", func() float64 { return float64(pool.Stat().MaxConns()) }},
		{"empty_acquire_total", "Acquires that had to wait for a connection.", func() float64 { return float64(pool.Stat().EmptyAcquireCount()) }},
	}

	for _, g := range gauges {
		collector := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "library",
			Subsystem: "db_pool",
			Name:      g.name,
			Help:      g.help,
		}, g.fn)
		if err := reg.Register(collector); err != nil {
			return fmt.Errorf("register %s: %w", g.name, err)
		}
	}
	return nil
}
