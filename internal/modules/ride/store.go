// README: Ride archive backed by PostgreSQL.
package ride

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucsky/cuid"
)

// PGStore appends rides to the rides table. Ride ids restart with every
// process, so each store tags its rows with a run id; (run_id, ride_id) is
// unique and the row key is a database sequence.
type PGStore struct {
	db  *pgxpool.Pool
	run string
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db, run: cuid.New()}
}

// RunID identifies this process's rows in the archive.
func (s *PGStore) RunID() string { return s.run }

func (s *PGStore) Record(ctx context.Context, e Event) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO rides (
			run_id, ride_id, customer_id, driver_id, vehicle_id,
			source, destination, path,
			distance, fare, commission, created_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8,
			$9, $10, $11, $12
		)`,
		s.run,
		int64(e.RideID),
		string(e.CustomerID),
		string(e.DriverID),
		e.VehicleID,
		e.Source,
		e.Destination,
		e.Path,
		e.Distance,
		e.Fare,
		e.Commission,
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ride %d (run %s): %w", e.RideID, s.run, err)
	}
	return nil
}
