// README: Pricing rate and fare quote.
package pricing

import "errors"

// Rate is the tariff applied to every ride.
type Rate struct {
	PerUnit        float64 `json:"per_unit"`
	CommissionRate float64 `json:"commission_rate"`
	Currency       string  `json:"currency"`
}

func DefaultRate() Rate {
	return Rate{PerUnit: 10, CommissionRate: 0.30, Currency: "INR"}
}

// Quote splits a fare between the platform and the driver.
type Quote struct {
	Distance    float64 `json:"distance"`
	Fare        float64 `json:"fare"`
	Commission  float64 `json:"commission"`
	DriverShare float64 `json:"driver_share"`
	Currency    string  `json:"currency"`
}

var (
	ErrInvalidRate     = errors.New("invalid rate")
	ErrInvalidDistance = errors.New("invalid distance")
)
