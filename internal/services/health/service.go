package health

import (
	"context"
	"database/sql"
	"time"

	"portfolio-backend/internal/shared/storage/db"
	"portfolio-backend/internal/shared/telemetry"
)

const pingTimeout = 2 * time.Second

// Service encapsulates health-related checks.
type Service struct {
	DB *sql.DB
}

// NewService constructs a new health service. database may be nil when the
// app runs on in-memory repositories.
func NewService(database *sql.DB) *Service {
	return &Service{DB: database}
}

// Status returns the health payload. "database" is only reported when a
// database is configured.
func (s *Service) Status() map[string]bool {
	if s == nil || s.DB == nil {
		return map[string]bool{"ok": true}
	}
	if err := db.Ping(context.Background(), s.DB, pingTimeout); err != nil {
		telemetry.Warn("health.db.unreachable", map[string]any{"err": err.Error()})
		return map[string]bool{"ok": false, "database": false}
	}
	return map[string]bool{"ok": true, "database": true}
}
