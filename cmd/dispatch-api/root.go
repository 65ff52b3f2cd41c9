// README: Cobra command tree; loads config and builds the seeded dispatcher.
package main

import (
	"github.com/spf13/cobra"

	"cabdispatch/internal/config"
	"cabdispatch/internal/modules/fleet"
	"cabdispatch/internal/modules/pricing"
	"cabdispatch/internal/service"
)

type app struct {
	cfgFile string
	cfg     config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "dispatch-api",
		Short:         "Cab dispatch routing engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default ./dispatch.yaml if present)")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.serve(cmd.Context())
			},
		},
		newRouteCmd(a),
		newCandidatesCmd(a),
	)
	return root
}

// dispatcher builds an engine from config and applies the seed section.
func (a *app) dispatcher() (*service.Dispatcher, error) {
	d, err := service.NewDispatcher(service.Options{
		Rate: pricing.Rate{
			PerUnit:        a.cfg.Pricing.PerUnit,
			CommissionRate: a.cfg.Pricing.CommissionRate,
			Currency:       a.cfg.Pricing.Currency,
		},
		Keep:    a.cfg.Rebalance.Keep,
		Chooser: fleet.NewRandomChooser(a.cfg.Rebalance.Seed),
	})
	if err != nil {
		return nil, err
	}
	if err := service.Bootstrap(d, a.cfg.Seed); err != nil {
		return nil, err
	}
	return d, nil
}
