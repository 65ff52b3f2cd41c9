// README: Pricing service computes fares and the commission split.
package pricing

import (
	"context"
	"fmt"
	"math"

	"cabdispatch/internal/types"
)

type Service struct {
	rate Rate
}

func NewService(rate Rate) (*Service, error) {
	if !(rate.PerUnit > 0) || math.IsInf(rate.PerUnit, 0) {
		return nil, fmt.Errorf("%w: per unit %v", ErrInvalidRate, rate.PerUnit)
	}
	if !(rate.CommissionRate >= 0 && rate.CommissionRate <= 1) {
		return nil, fmt.Errorf("%w: commission %v", ErrInvalidRate, rate.CommissionRate)
	}
	if rate.Currency == "" {
		rate.Currency = DefaultRate().Currency
	}
	return &Service{rate: rate}, nil
}

func (s *Service) Rate() Rate { return s.rate }

// Quote prices a trip of the given shortest-path distance.
func (s *Service) Quote(distance float64) (Quote, error) {
	if !(distance >= 0) || math.IsInf(distance, 0) {
		return Quote{}, fmt.Errorf("%w: %v", ErrInvalidDistance, distance)
	}
	fare := distance * s.rate.PerUnit
	commission := fare * s.rate.CommissionRate
	return Quote{
		Distance:    distance,
		Fare:        fare,
		Commission:  commission,
		DriverShare: fare - commission,
		Currency:    s.rate.Currency,
	}, nil
}

func (s *Service) Estimate(ctx context.Context, distance float64) (types.Money, error) {
	q, err := s.Quote(distance)
	if err != nil {
		return types.Money{}, err
	}
	return types.Money{Amount: q.Fare, Currency: q.Currency}, nil
}
