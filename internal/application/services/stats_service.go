package services

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/eventflow/marketplace/internal/domain/entities"
	apperrors "github.com/eventflow/marketplace/pkg/errors"
)

// StatsService computes the admin dashboard aggregates straight from
// the database; nothing here is hot enough to precompute.
type StatsService struct {
	db *sqlx.DB
}

// NewStatsService creates a new stats service
func NewStatsService(db *sqlx.DB) *StatsService {
	return &StatsService{db: db}
}

// MarketplaceStats is the admin dashboard payload.
type MarketplaceStats struct {
	TotalUsers       int             `json:"total_users"`
	TotalOrganizers  int             `json:"total_organizers"`
	TotalVendors     int             `json:"total_vendors"`
	TotalEvents      int             `json:"total_events"`
	TotalBookings    int             `json:"total_bookings"`
	BookingsByStatus map[string]int  `json:"bookings_by_status"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
}

// GetStats returns marketplace-wide aggregates. Admin only.
func (s *StatsService) GetStats(ctx context.Context, actor entities.Actor) (*MarketplaceStats, error) {
	if actor.Role != entities.RoleAdmin {
		return nil, apperrors.NewForbiddenError("stats are admin only")
	}

	stats := &MarketplaceStats{
		BookingsByStatus: make(map[string]int),
		TotalRevenue:     decimal.Zero,
	}

	var userCounts []struct {
		Role  string `db:"role"`
		Count int    `db:"count"`
	}
	if err := s.db.SelectContext(ctx, &userCounts, `SELECT role, COUNT(*) AS count FROM users GROUP BY role`); err != nil {
		return nil, apperrors.NewInternalError("failed to count users", err)
	}
	for _, row := range userCounts {
		stats.TotalUsers += row.Count
		switch entities.Role(row.Role) {
		case entities.RoleOrganizer:
			stats.TotalOrganizers = row.Count
		case entities.RoleVendor:
			stats.TotalVendors = row.Count
		}
	}

	if err := s.db.GetContext(ctx, &stats.TotalEvents, `SELECT COUNT(*) FROM events`); err != nil {
		return nil, apperrors.NewInternalError("failed to count events", err)
	}

	var bookingCounts []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	if err := s.db.SelectContext(ctx, &bookingCounts, `SELECT status, COUNT(*) AS count FROM bookings GROUP BY status`); err != nil {
		return nil, apperrors.NewInternalError("failed to count bookings", err)
	}
	for _, row := range bookingCounts {
		stats.TotalBookings += row.Count
		stats.BookingsByStatus[row.Status] = row.Count
	}

	var revenue decimal.NullDecimal
	if err := s.db.GetContext(ctx, &revenue, `SELECT SUM(amount) FROM payments WHERE status = 'COMPLETED'`); err != nil {
		return nil, apperrors.NewInternalError("failed to sum revenue", err)
	}
	if revenue.Valid {
		stats.TotalRevenue = revenue.Decimal
	}

	return stats, nil
}
