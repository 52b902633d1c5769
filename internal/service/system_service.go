package service

import (
	"database/sql"

	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/database"
)

// AppVersion is the application version reported by the system endpoint.
const AppVersion = "1.2.0"

// SystemService provides system-level operations: health and version.
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService.
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{db: db}
}

// CheckHealth verifies database connectivity.
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// Version returns the application version.
func (s *SystemService) Version() string {
	return AppVersion
}
