package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/printforge/printboard/pkg/pipeline"
)

// generateCommand creates the generate command, which runs the full
// layout → route → render pipeline and writes the artifacts to disk.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		board       boardFlags
		seed        uint64
		trials      int
		formats     string
		output      string
		noCache     bool
		refresh     bool
		interactive bool
		presetDir   string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a printable keyboard plate",
		Long: `Generate plans the key layout, routes the matrix wiring and renders
the selected artifacts. By default it emits the OpenSCAD model; pass
--format to add json, dot, svg or stl outputs.`,
		Example: `  printboard generate --rows 4 --cols 12 --name planck
  printboard generate --preset examples/numpad.toml --format scad,json,dot
  printboard generate --seed 7 --trials 25 --format stl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)

			if interactive && board.preset == "" {
				path, err := selectPreset(presetDir)
				if err != nil {
					return err
				}
				if path == "" {
					return nil
				}
				board.preset = path
			}

			cfg, err := board.config()
			if err != nil {
				return err
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := pipeline.Options{
				Config:  cfg,
				Seed:    seed,
				Trials:  trials,
				Formats: parseFormats(formats),
				Refresh: refresh,
				Logger:  c.Logger,
			}

			spin := newSpinnerWithContext(ctx, fmt.Sprintf("generating %s", cfg.Name))
			spin.Start()
			result, err := runner.Execute(ctx, opts)
			if err != nil {
				if spin.Cancelled() {
					spin.Stop()
					return ctx.Err()
				}
				spin.StopWithError(fmt.Sprintf("generation failed: %v", err))
				return err
			}
			spin.StopWithSuccess(fmt.Sprintf("generated %s", StyleHighlight.Render(cfg.Name)))

			if err := os.MkdirAll(output, 0o755); err != nil {
				return err
			}
			for format, data := range result.Artifacts {
				path := filepath.Join(output, cfg.Name+"."+format)
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return err
				}
				printFile(path)
			}

			cached := result.CacheInfo.LayoutHit && result.CacheInfo.RouteHit && result.CacheInfo.RenderHit
			printStats(result.Stats.KeyCount, result.Stats.RouteCount, result.Routes.Coverage.CoveragePercent, cached)
			if result.Routes.UnassignedRoutes > 0 {
				printWarning("%d routes have no controller pin", result.Routes.UnassignedRoutes)
			}
			if result.Routes.ResidualCollisions > 0 {
				printWarning("%d wire crossings remain within clearance", result.Routes.ResidualCollisions)
			}
			if _, ok := result.Artifacts[pipeline.FormatSCAD]; ok {
				if _, stl := result.Artifacts[pipeline.FormatSTL]; !stl {
					printNextStep("render an STL with OpenSCAD",
						fmt.Sprintf("openscad -o %s.stl %s", cfg.Name, filepath.Join(output, cfg.Name+".scad")))
				}
			}
			return nil
		},
	}

	board.register(cmd)
	cmd.Flags().Uint64Var(&seed, "seed", pipeline.DefaultSeed, "routing seed")
	cmd.Flags().IntVar(&trials, "trials", pipeline.DefaultTrials, "routing trials per pin class")
	cmd.Flags().StringVar(&formats, "format", pipeline.FormatSCAD, "comma-separated output formats (scad,json,dot,svg,stl)")
	cmd.Flags().StringVarP(&output, "output", "o", ".", "output directory")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick a preset interactively")
	cmd.Flags().StringVar(&presetDir, "preset-dir", "examples", "directory searched by --interactive")

	return cmd
}
