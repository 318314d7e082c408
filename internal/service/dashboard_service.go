package service

import (
	"time"

	"autotrack-pos/internal/ledger"
)

type DashboardService interface {
	GetStats(from, to time.Time) ledger.DashboardStats
	GetRevenueSeries(from, to time.Time) []ledger.RevenuePoint
}

type dashboardService struct {
	ledger *ledger.Ledger
}

func NewDashboardService(l *ledger.Ledger) DashboardService {
	return &dashboardService{ledger: l}
}

func (s *dashboardService) GetStats(from, to time.Time) ledger.DashboardStats {
	return s.ledger.Stats(from, to)
}

func (s *dashboardService) GetRevenueSeries(from, to time.Time) []ledger.RevenuePoint {
	return s.ledger.RevenueSeries(from, to)
}
