package service

import (
	"time"

	apperrors "github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/errors"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/model"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/repository"
)

// HistoryService exposes the append-only total-value series and its
// normalized form for benchmark comparison.
type HistoryService struct {
	history *repository.HistoryRepository
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(history *repository.HistoryRepository) *HistoryService {
	return &HistoryService{history: history}
}

// Append records one total-value observation. It never deduplicates by
// date; every call produces a new point.
func (s *HistoryService) Append(date time.Time, totalValue float64) (model.HistoryPoint, error) {
	return s.history.Append(date, totalValue)
}

// Series returns the full series ordered by date ascending.
func (s *HistoryService) Series() ([]model.HistoryPoint, error) {
	return s.history.GetSeries()
}

// Normalized returns the series scaled so the first point equals 100.
// An empty series is a no-data condition reported as ErrEmptyHistory
// rather than an empty result.
func (s *HistoryService) Normalized() ([]float64, error) {
	series, err := s.history.GetSeries()
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, apperrors.ErrEmptyHistory
	}
	return Normalize(series), nil
}

// Normalize scales a series so its first element equals 100. The series
// must be non-empty; callers check emptiness first.
func Normalize(series []model.HistoryPoint) []float64 {
	base := series[0].TotalValue
	normalized := make([]float64, len(series))
	for i, point := range series {
		normalized[i] = 100 * point.TotalValue / base
	}
	return normalized
}
