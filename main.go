package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	annb "github.com/gasparian/hamming-tri-go/annbench"
	cm "github.com/gasparian/hamming-tri-go/common"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		config      annb.Config
		progress    bool
		metricsFile string
	)
	cmd := &cobra.Command{
		Use:   "hamming-tri",
		Short: "Evaluate triangle inequality improvement",
		Long: "Generates random binary vectors, buckets them with bit-sampling LSH and reports\n" +
			"the share of in-bucket pairs skipped by the triangle inequality bound.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cm.LoadConfig()
			if err != nil {
				return err
			}
			logConfig := env.LogConfig()
			logConfig.Output = stderr
			logger, err := cm.GetNewLogger(logConfig)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !flags.Changed("seed") {
				config.Seed = uint64(time.Now().UnixNano())
			}
			if !flags.Changed("workers") {
				config.Workers = env.Workers
			}
			if err := config.Validate(); err != nil {
				return err
			}
			cmd.SilenceUsage = true

			opts := []annb.Option{annb.WithLogger(logger)}
			var metrics *annb.Metrics
			if metricsFile != "" {
				metrics = annb.NewMetrics()
				opts = append(opts, annb.WithMetrics(metrics))
			}
			if progress {
				opts = append(opts, annb.WithProgress(stderr))
			}

			res, err := annb.Run(cmd.Context(), config, opts...)
			if err != nil {
				logger.Error().Err(err).Msg("Run failed")
				return err
			}
			if metrics != nil {
				if err := metrics.WriteTextfile(metricsFile); err != nil {
					return fmt.Errorf("writing metrics: %w", err)
				}
			}
			if _, err := res.SkipRate(); errors.Is(err, annb.ErrNoPairs) {
				logger.Warn().Str("run_id", res.RunID).Msg("No pairs were compared, skip rate is undefined")
			}
			fmt.Fprintln(stdout, res.Report())
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	bindFlags(cmd.Flags(), &config, &progress, &metricsFile)
	for _, name := range requiredFlags {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

var requiredFlags = []string{"vectors", "length", "samples", "iterations"}

func bindFlags(flags *pflag.FlagSet, config *annb.Config, progress *bool, metricsFile *string) {
	flags.SortFlags = false
	flags.IntVar(&config.Vectors, "vectors", 0, "Number of binary vectors")
	flags.IntVar(&config.Length, "length", 0, "Length of each binary vector")
	flags.IntVar(&config.Samples, "samples", 0, "Number of case studies to check")
	flags.IntVar(&config.Iterations, "iterations", 0, "Number of LSH iterations")
	flags.Uint64Var(&config.Seed, "seed", 0, "Random seed (time based when not set)")
	flags.IntVar(&config.Workers, "workers", 1, "Number of buckets scanned in parallel (HAMTRI_WORKERS when not set)")
	flags.BoolVar(&config.ResetMin, "reset-min", false, "Reset the running minimum at every sample")
	flags.BoolVar(progress, "progress", false, "Draw a progress bar on stderr")
	flags.StringVar(metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run")
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
