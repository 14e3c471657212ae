package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eskillate/lowpop/pkg/pipeline"
	"github.com/eskillate/lowpop/pkg/tile"
)

// generateFlags holds flag values for the generate command.
type generateFlags struct {
	count      int
	tier       string
	seed       uint64
	jsonOutput bool
	output     string
	configPath string
	noCache    bool
	refresh    bool
	fullRange  bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	flags := generateFlags{
		count: pipeline.DefaultCount,
		tier:  pipeline.DefaultTier.String(),
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate and place a batch of tiles",
		Long: `Generate a batch of tiles with pairwise distinct values and place them on the surface grid.

Tiers: ` + strings.Join(tierNames(), ", ") + `

A non-zero --seed makes the batch reproducible; seeded batches are cached and
replayed on later runs with the same options.`,
		Example: `  lowpop generate --count 12 --tier int --seed 42
  lowpop generate --tier float --json > batch.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.count, "count", "n", flags.count, "number of tiles")
	cmd.Flags().StringVarP(&flags.tier, "tier", "t", flags.tier, "difficulty tier")
	cmd.Flags().Uint64VarP(&flags.seed, "seed", "s", 0, "random seed (0 draws a fresh one)")
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "print the batch as JSON")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "also write the JSON batch to a file")
	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "config file (TOML)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the batch cache")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "regenerate even if the batch is cached")
	cmd.Flags().BoolVar(&flags.fullRange, "full-range", false, "let every open slot be drawn")

	_ = cmd.RegisterFlagCompletionFunc("tier", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return tierNames(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, flags generateFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	tier, err := tile.ParseTier(flags.tier)
	if err != nil {
		return err
	}
	cfg, cfgPath, err := loadConfig(flags.configPath)
	if err != nil {
		return err
	}
	if cfgPath != "" {
		logger.Debug("loaded config", "path", cfgPath)
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer runner.Close()

	prog := newProgress(logger)
	res, err := runner.Execute(ctx, pipeline.Options{
		Count:     flags.count,
		Tier:      tier,
		Seed:      flags.seed,
		FullRange: flags.fullRange,
		Config:    &cfg,
		Refresh:   flags.refresh,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %d tiles", len(res.Tiles)))

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encode batch: %w", err)
	}

	if flags.output != "" {
		if err := os.WriteFile(flags.output, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", flags.output, err)
		}
	}

	if flags.jsonOutput {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	printBatch(res)
	if flags.output != "" {
		printFile(flags.output)
	}
	if res.Stats.OpenSlots > 0 && !flags.fullRange {
		printDetail("%d open slots; the last open slot is only drawn with --full-range", res.Stats.OpenSlots)
	}
	return nil
}

// tierNames lists the tier names accepted by --tier.
func tierNames() []string {
	tiers := tile.Tiers()
	names := make([]string, len(tiers))
	for i, t := range tiers {
		names[i] = t.String()
	}
	return names
}
