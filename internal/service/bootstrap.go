// README: Applies the configured seed network and fleet to a dispatcher.
package service

import (
	"fmt"

	"cabdispatch/internal/config"
	"cabdispatch/internal/types"
)

// Bootstrap adds seed locations, then roads, then drivers with their vehicles.
// Road endpoints and driver locations not listed under locations are added too.
func Bootstrap(d *Dispatcher, seed config.SeedConfig) error {
	for _, name := range seed.Locations {
		if _, err := d.AddLocation(name); err != nil {
			return fmt.Errorf("seed location %q: %w", name, err)
		}
	}
	for _, r := range seed.Roads {
		for _, name := range []string{r.From, r.To} {
			if _, err := d.AddLocation(name); err != nil {
				return fmt.Errorf("seed road %s-%s: %w", r.From, r.To, err)
			}
		}
		if err := d.Connect(r.From, r.To, r.Distance); err != nil {
			return fmt.Errorf("seed road %s-%s: %w", r.From, r.To, err)
		}
	}
	for _, drv := range seed.Drivers {
		id := types.ID(drv.ID)
		if err := d.OnboardDriver(id, drv.Name); err != nil {
			return fmt.Errorf("seed driver %s: %w", drv.ID, err)
		}
		if drv.Location == "" {
			continue
		}
		if _, err := d.AddLocation(drv.Location); err != nil {
			return fmt.Errorf("seed driver %s: %w", drv.ID, err)
		}
		if _, err := d.RegisterVehicle(id, drv.Location); err != nil {
			return fmt.Errorf("seed driver %s: %w", drv.ID, err)
		}
	}
	return nil
}
