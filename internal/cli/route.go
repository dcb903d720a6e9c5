package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/printforge/printboard/pkg/pipeline"
)

// routeCommand creates the route command, which plans layout and wiring and
// prints a coverage summary without rendering anything.
func (c *CLI) routeCommand() *cobra.Command {
	var (
		board  boardFlags
		seed   uint64
		trials int
	)

	cmd := &cobra.Command{
		Use:   "route",
		Short: "Plan matrix wiring and report coverage",
		Example: `  printboard route --rows 5 --cols 5
  printboard route --preset examples/numpad.toml --seed 7 --trials 25`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)

			cfg, err := board.config()
			if err != nil {
				return err
			}

			runner, err := c.newRunner(true)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := pipeline.Options{Config: cfg, Seed: seed, Trials: trials, Logger: c.Logger}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			sw, err := runner.Switches.Get(cfg.SwitchType)
			if err != nil {
				return err
			}
			ctrl, err := runner.Controllers.Get(cfg.ControllerType)
			if err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(ctx))
			layoutPlan, err := runner.ComputeLayout(ctx, opts)
			if err != nil {
				return err
			}
			routePlan, err := runner.PlanRoutes(ctx, layoutPlan, sw, ctrl, opts)
			if err != nil {
				return err
			}
			prog.done("wiring planned")

			cov := routePlan.Coverage
			printInfo("%s", StyleTitle.Render(cfg.Name))
			printKeyValue("coverage", fmt.Sprintf("%.1f%% (%d/%d pins)",
				cov.CoveragePercent, cov.ConnectedPins, cov.TotalPins))
			printKeyValue("rows", fmt.Sprintf("%d/%d pins", cov.RowPinsConnected, cov.RowPinsTotal))
			printKeyValue("columns", fmt.Sprintf("%d/%d pins", cov.ColumnPinsConnected, cov.ColumnPinsTotal))
			printKeyValue("routes", fmt.Sprintf("%d", cov.RouteCount))
			printNewline()

			pins := make([]string, 0, len(routePlan.ControllerConnections))
			for pin := range routePlan.ControllerConnections {
				pins = append(pins, pin)
			}
			sort.Strings(pins)
			for _, pin := range pins {
				printDetail("%-8s ← %s", pin, strings.Join(routePlan.ControllerConnections[pin], ", "))
			}

			if routePlan.UnassignedRoutes > 0 {
				printWarning("%d routes have no controller pin on %s", routePlan.UnassignedRoutes, cfg.ControllerType)
			}
			if routePlan.ResidualCollisions > 0 {
				printWarning("%d wire crossings remain within clearance", routePlan.ResidualCollisions)
			}
			return nil
		},
	}

	board.register(cmd)
	cmd.Flags().Uint64Var(&seed, "seed", pipeline.DefaultSeed, "routing seed")
	cmd.Flags().IntVar(&trials, "trials", pipeline.DefaultTrials, "routing trials per pin class")
	return cmd
}
