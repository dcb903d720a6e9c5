package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/printforge/printboard/pkg/parts"
)

// partsCommand creates the parts command with subcommands listing the
// built-in switch and controller types.
func (c *CLI) partsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parts",
		Short: "List supported switches and controllers",
	}
	cmd.AddCommand(c.switchesCommand())
	cmd.AddCommand(c.controllersCommand())
	return cmd
}

func (c *CLI) switchesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "switches",
		Short: "List supported switch types",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := parts.NewSwitchRegistry()
			for _, name := range reg.List() {
				sw, err := reg.Get(name)
				if err != nil {
					return err
				}
				printDetail("%-14s pitch %.1f mm, %d pins",
					StyleValue.Render(name), sw.Pitch, len(sw.Pins))
			}
			return nil
		},
	}
}

func (c *CLI) controllersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "controllers",
		Short: "List supported controller types",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := parts.NewControllerRegistry()
			for _, name := range reg.List() {
				ctrl, err := reg.Get(name)
				if err != nil {
					return err
				}
				printDetail("%-14s %s, %d usable pins",
					StyleValue.Render(name),
					fmt.Sprintf("%.0f × %.0f mm", ctrl.Footprint.X, ctrl.Footprint.Y),
					len(ctrl.UsablePins()))
			}
			return nil
		},
	}
}
