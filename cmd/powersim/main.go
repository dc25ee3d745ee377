package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"powersim/adapters/postgres"
	"powersim/adapters/rng"
	"powersim/adapters/stats/ols"
	"powersim/app"
	"powersim/domain/design"
	"powersim/domain/effects"
	"powersim/internal"
	"powersim/internal/config"
)

func main() {
	// .env is optional; environment variables win either way
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "powersim",
		Short: "Monte Carlo power simulation for 2x2 factorial experiments",
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newDesignCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var (
		nSim    int
		workers int
		alpha   float64
		save    bool
		skip    bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the power simulation batch and print the power table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("nsim") {
				cfg.Driver.Simulations = nSim
			}
			if cmd.Flags().Changed("workers") {
				cfg.Driver.Workers = workers
			}
			if cmd.Flags().Changed("alpha") {
				cfg.Study.Alpha = alpha
			}

			effectSpec, err := effects.NewSpec(cfg.Study.Effects, cfg.Study.SD)
			if err != nil {
				return err
			}

			req := app.PowerRequest{
				Design:      design.NewSpec(cfg.Study.GroupSize, cfg.Study.Topics, cfg.Study.Repetitions),
				Effects:     effectSpec,
				Simulations: cfg.Driver.Simulations,
				Alpha:       cfg.Study.Alpha,
				Workers:     cfg.Driver.Workers,
			}
			if skip {
				req.Policy = app.PolicySkip
			}

			service := app.NewPowerService(ols.NewFitter(), rng.NewAdapter(), internal.DefaultLogger)
			result, err := service.Run(cmd.Context(), req)
			if err != nil {
				return err
			}

			printSummaries(cmd, result)

			if save {
				if !cfg.Database.Enabled {
					return fmt.Errorf("--save requires DATABASE_URL to be set")
				}
				return saveResult(cmd.Context(), cfg.Database.URL, result)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&nSim, "nsim", 1000, "number of simulated experiments")
	cmd.Flags().IntVar(&workers, "workers", 1, "concurrent repetitions (1 = sequential)")
	cmd.Flags().Float64Var(&alpha, "alpha", 0.05, "significance threshold")
	cmd.Flags().BoolVar(&save, "save", false, "persist manifest and summaries to Postgres")
	cmd.Flags().BoolVar(&skip, "skip-failed", false, "record failed seeds and continue instead of aborting")
	return cmd
}

func newDesignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "design",
		Short: "Preview the design skeleton dimensions for the configured study",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			spec := design.NewSpec(cfg.Study.GroupSize, cfg.Study.Topics, cfg.Study.Repetitions)
			if err := spec.Validate(); err != nil {
				return err
			}
			cmd.Printf("factors:      persistence (2) x identification (2)\n")
			cmd.Printf("group size:   %d\n", spec.GroupSize)
			cmd.Printf("topics:       %d\n", spec.Topics)
			cmd.Printf("repetitions:  %d\n", spec.Repetitions)
			cmd.Printf("total groups: %d\n", spec.TotalGroups())
			cmd.Printf("total units:  %d\n", spec.TotalUnits())
			return nil
		},
	}
	return cmd
}

func printSummaries(cmd *cobra.Command, result *app.PowerResult) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "predictor\tpower\tmean_effect\trepetitions")
	for _, s := range result.Summaries {
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%d\n", s.Predictor, s.Power, s.MeanEstimate, s.Repetitions)
	}
	w.Flush()
	cmd.Printf("\nrun %s: %d rows, %d skipped seeds, %dms\n",
		result.Manifest.RunID, result.Manifest.RowCount,
		len(result.Manifest.SkippedSeeds), result.Manifest.RuntimeMs)
}

func saveResult(ctx context.Context, url string, result *app.PowerResult) error {
	db, err := postgres.Connect(url)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := postgres.NewResultRepository(db)
	if err := repo.SaveManifest(ctx, result.Manifest); err != nil {
		return err
	}
	return repo.SaveSummaries(ctx, result.Manifest.RunID, result.Summaries)
}
