package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"crmlite/internal/domain"
	"crmlite/internal/repos"
	"crmlite/internal/validate"
)

// ActivityService aggregates activity rows per product display name.
type ActivityService struct {
	Activity *repos.ActivityRepo
}

func NewActivityService(activity *repos.ActivityRepo) *ActivityService {
	return &ActivityService{Activity: activity}
}

// QueryMovements returns (product name, price) for every matching activity.
// Blank actorID means all actors; blank direction means both directions.
func (s *ActivityService) QueryMovements(ctx context.Context, actorID, direction string) ([]domain.Movement, error) {
	dir, ok := validate.Direction(direction)
	if !ok {
		return nil, fmt.Errorf("invalid direction %q", direction)
	}
	return s.Activity.Movements(ctx, actorID, dir)
}

// UnitCounts counts one unit per matching movement, keyed by product name.
func (s *ActivityService) UnitCounts(ctx context.Context, actorID, direction string) (map[string]int, error) {
	moves, err := s.QueryMovements(ctx, actorID, direction)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, m := range moves {
		counts[m.ProductName]++
	}
	return counts, nil
}

// ValueSums adds up the price of every movement in direction, across all actors.
func (s *ActivityService) ValueSums(ctx context.Context, direction string) (map[string]decimal.Decimal, error) {
	moves, err := s.QueryMovements(ctx, "", direction)
	if err != nil {
		return nil, err
	}
	sums := make(map[string]decimal.Decimal)
	for _, m := range moves {
		sums[m.ProductName] = sums[m.ProductName].Add(m.Price)
	}
	return sums, nil
}

// PeriodBounds returns the first and last activity date, empty when there is none.
func (s *ActivityService) PeriodBounds(ctx context.Context) (domain.Period, error) {
	return s.Activity.Period(ctx)
}
