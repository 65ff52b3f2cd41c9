// README: Common identifiers and value objects shared across modules.
package types

// ID identifies an external party (driver, customer).
type ID string

type Money struct {
	Amount   float64
	Currency string
}
