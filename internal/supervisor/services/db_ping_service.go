// EstateIQ - Real Estate Valuation, Recommendation, and Geo Search Analytics
// Copyright 2026 The EstateIQ Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/estateiq/estateiq

package services

import (
	"context"
	"fmt"
	"time"
)

// Pinger matches the health-check surface of the analytics database wrapper.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DBPingService periodically verifies the analytics database connection.
// A failed ping returns an error so suture restarts the check loop; the
// analytics endpoints themselves keep failing per request until the sidecar
// recovers.
type DBPingService struct {
	db       Pinger
	interval time.Duration
	name     string
}

// NewDBPingService wraps the analytics database keepalive for supervision.
func NewDBPingService(db Pinger, interval time.Duration) *DBPingService {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &DBPingService{
		db:       db,
		interval: interval,
		name:     "analytics-db-ping",
	}
}

// Serve implements suture.Service.
func (s *DBPingService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.db.Ping(ctx); err != nil {
				return fmt.Errorf("analytics db ping failed: %w", err)
			}
		}
	}
}

// String identifies the service in suture's log events.
func (s *DBPingService) String() string {
	return s.name
}
