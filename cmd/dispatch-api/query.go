// README: Offline query commands over the seeded network.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cabdispatch/internal/modules/ride"
)

func newRouteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "route FROM TO",
		Short: "Print the shortest path between two seeded locations",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dispatcher()
			if err != nil {
				return err
			}
			r, err := d.Route(cmd.Context(), args[0], args[1])
			if errors.Is(err, ride.ErrNoRoute) {
				fmt.Fprintf(cmd.OutOrStdout(), "no route from %s to %s\n", strings.ToUpper(args[0]), strings.ToUpper(args[1]))
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (distance %g, fare %.2f %s)\n",
				strings.Join(r.Path, " -> "), r.Distance, r.Estimate.Amount, r.Estimate.Currency)
			return nil
		},
	}
}

func newCandidatesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "candidates PICKUP",
		Short: "List ranked vehicles for a pickup location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dispatcher()
			if err != nil {
				return err
			}
			cs := d.FindCandidates(args[0])
			out := cmd.OutOrStdout()
			if len(cs) == 0 {
				fmt.Fprintln(out, "no candidates")
				return nil
			}
			for i, c := range cs {
				fmt.Fprintf(out, "%d. vehicle %d driver %s at %s distance %g trips %d\n",
					i+1, c.VehicleID, c.DriverID, c.Location, c.DistanceToPickup, c.DriverTrips)
			}
			return nil
		},
	}
}
