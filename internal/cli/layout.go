package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/printforge/printboard/pkg/pipeline"
)

// layoutCommand creates the layout command, which plans key positions and
// prints them without routing or rendering.
func (c *CLI) layoutCommand() *cobra.Command {
	var board boardFlags

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Preview the key layout for a board",
		Example: `  printboard layout --rows 4 --cols 12
  printboard layout --preset examples/numpad.toml`,
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

			plan, err := runner.ComputeLayout(ctx, pipeline.Options{Config: cfg, Logger: c.Logger})
			if err != nil {
				return err
			}

			printInfo("%s", StyleTitle.Render(cfg.Name))
			printKeyValue("keys", fmt.Sprintf("%d", len(plan.Keys)))
			printKeyValue("bounds", fmt.Sprintf("%.1f × %.1f mm",
				plan.Bounds.MaxX-plan.Bounds.MinX, plan.Bounds.MaxY-plan.Bounds.MinY))
			printNewline()
			for _, key := range plan.Keys {
				printDetail("%-6s (%7.2f, %7.2f)  angle %5.1f°  %s",
					key.Label(), key.Pos.X, key.Pos.Y, key.Angle, key.Matrix)
			}
			return nil
		},
	}

	board.register(cmd)
	return cmd
}
