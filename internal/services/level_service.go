package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// Gamification: one level per five bookings, capped at seven.
const (
	bookingsPerLevel = 5
	maxLevel         = 7
)

type BookingCounter interface {
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type LevelService struct {
	bookings BookingCounter
}

func NewLevelService(bookings BookingCounter) *LevelService {
	return &LevelService{bookings: bookings}
}

type Level struct {
	Level    int    `json:"level"`
	Progress string `json:"progress"`
}

func (s *LevelService) ForUser(ctx context.Context, userID string) (Level, error) {
	count, err := s.bookings.CountByUser(ctx, userID)
	if err != nil {
		return Level{}, err
	}
	level := 1 + int(count)/bookingsPerLevel
	if level > maxLevel {
		level = maxLevel
	}
	progress := decimal.NewFromInt(count % bookingsPerLevel).
		Div(decimal.NewFromInt(bookingsPerLevel)).
		StringFixed(2)
	return Level{Level: level, Progress: progress}, nil
}
