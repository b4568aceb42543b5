// Package annbench measures how many candidate pairs the triangle
// inequality lets us skip when searching the minimum Hamming distance
// inside LSH buckets, over repeated random samples and bucketing rounds.
package annbench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/gasparian/hamming-tri-go/common"
	"github.com/gasparian/hamming-tri-go/lsh"
	"github.com/gasparian/hamming-tri-go/vector"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// pcgStream is the fixed second half of the PCG state; the seed picks the first
const pcgStream = 0xda3e39cb94b95bdb

var (
	// ErrNoPairs returned when the run never compared a single pair
	ErrNoPairs = errors.New("no pairs compared")
	// ErrInvalidConfig returned for knobs which cannot describe a run
	ErrInvalidConfig = errors.New("invalid bench config")
)

// Config holds the run knobs
type Config struct {
	Vectors    int
	Length     int
	Samples    int
	Iterations int
	Seed       uint64
	Workers    int
	// ResetMin reseeds the running minimum at every sample instead of
	// carrying it over the whole run
	ResetMin bool
}

// Validate checks that the knobs describe a run
func (c Config) Validate() error {
	switch {
	case c.Vectors < 1 || uint64(c.Vectors) > math.MaxUint32:
		return fmt.Errorf("%w: vectors must be in [1, %d], got %d", ErrInvalidConfig, uint32(math.MaxUint32), c.Vectors)
	case c.Length < 1:
		return fmt.Errorf("%w: length must be positive, got %d", ErrInvalidConfig, c.Length)
	case c.Samples < 0:
		return fmt.Errorf("%w: samples must not be negative, got %d", ErrInvalidConfig, c.Samples)
	case c.Iterations < 0:
		return fmt.Errorf("%w: iterations must not be negative, got %d", ErrInvalidConfig, c.Iterations)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// Result holds grand totals of a run
type Result struct {
	RunID string
	Bits  int
	// MinDistance stays Length+1 when no pair was ever compared
	MinDistance  int
	TotalPairs   int64
	SkippedPairs int64
	// SampleRates holds skip percentage of every sample which had pairs
	SampleRates []float64
}

// SkipRate returns skipped/total*100
func (r Result) SkipRate() (float64, error) {
	if r.TotalPairs == 0 {
		return 0, ErrNoPairs
	}
	return float64(r.SkippedPairs) / float64(r.TotalPairs) * 100, nil
}

// Report formats the single output line of a run
func (r Result) Report() string {
	rate, err := r.SkipRate()
	if err != nil {
		return "Skipped pairs rate is undefined (no pairs compared)"
	}
	return fmt.Sprintf("Skipped pairs rate is %.2f%%", rate)
}

// SampleSummary describes the spread of per-sample skip rates
type SampleSummary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summary returns zero summary when no sample had pairs
func (r Result) Summary() SampleSummary {
	if len(r.SampleRates) == 0 {
		return SampleSummary{}
	}
	summary := SampleSummary{
		Count: len(r.SampleRates),
		Min:   floats.Min(r.SampleRates),
		Max:   floats.Max(r.SampleRates),
	}
	if summary.Count == 1 {
		summary.Mean = r.SampleRates[0]
		return summary
	}
	summary.Mean, summary.StdDev = stat.MeanStdDev(r.SampleRates, nil)
	return summary
}

// Bench holds everything a run needs besides its knobs
type Bench struct {
	Config   Config
	Logger   zerolog.Logger
	Metrics  *Metrics
	Progress io.Writer
	RunID    string
}

// Option tunes the Bench
type Option func(*Bench)

func WithLogger(logger zerolog.Logger) Option {
	return func(b *Bench) {
		b.Logger = logger
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(b *Bench) {
		b.Metrics = metrics
	}
}

// WithProgress draws a progress bar over bucketing rounds into w
func WithProgress(w io.Writer) Option {
	return func(b *Bench) {
		b.Progress = w
	}
}

func WithRunID(id string) Option {
	return func(b *Bench) {
		b.RunID = id
	}
}

// New validates config and creates Bench; logging is off unless a logger is given
func New(config Config, opts ...Option) (*Bench, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Workers == 0 {
		config.Workers = 1
	}
	b := &Bench{
		Config: config,
		Logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.RunID == "" {
		id, err := common.GetRandomID()
		if err != nil {
			return nil, err
		}
		b.RunID = id
	}
	return b, nil
}

// Run creates Bench and runs it
func Run(ctx context.Context, config Config, opts ...Option) (Result, error) {
	b, err := New(config, opts...)
	if err != nil {
		return Result{}, err
	}
	return b.Run(ctx)
}

// Run generates Samples random vector sets and buckets each of them
// Iterations times, folding every round into the grand totals
func (b *Bench) Run(ctx context.Context) (Result, error) {
	config := b.Config
	logger := b.Logger.With().Str("run_id", b.RunID).Logger()
	seedMin := config.Length + 1
	res := Result{
		RunID:       b.RunID,
		Bits:        lsh.NumBits(config.Vectors, config.Length),
		MinDistance: seedMin,
	}

	rng := rand.New(rand.NewPCG(config.Seed, pcgStream))
	gen := vector.NewGenerator(rng)
	hasher, err := lsh.NewHasher(lsh.HasherConfig{NBits: res.Bits, Dims: config.Length})
	if err != nil {
		return res, err
	}
	agg := Aggregator{Workers: config.Workers, Metrics: b.Metrics}

	logger.Info().
		Int("vectors", config.Vectors).
		Int("length", config.Length).
		Int("samples", config.Samples).
		Int("iterations", config.Iterations).
		Int("lsh_bits", res.Bits).
		Int("workers", config.Workers).
		Uint64("seed", config.Seed).
		Msg("Starting run")

	var bar *pb.ProgressBar
	if b.Progress != nil {
		bar = pb.New(config.Samples * config.Iterations).SetWriter(b.Progress).Start()
		defer bar.Finish()
	}

	start := time.Now()
	runningMin := seedMin
	for s := 0; s < config.Samples; s++ {
		if config.ResetMin {
			runningMin = seedMin
		}
		sample := gen.Sample(config.Vectors, config.Length)
		var sampleTotal, sampleSkipped int64
		for it := 0; it < config.Iterations; it++ {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			hasher.Build(rng)
			groups, err := lsh.Groups(hasher, sample)
			if err != nil {
				return res, err
			}
			round, err := agg.Analyze(ctx, sample, groups, runningMin)
			if err != nil {
				return res, err
			}
			runningMin = min(runningMin, round.Min)
			res.MinDistance = min(res.MinDistance, runningMin)
			sampleTotal += round.TotalPairs
			sampleSkipped += round.SkippedPairs
			b.Metrics.observeRound(round, res.MinDistance)
			if bar != nil {
				bar.Increment()
			}
		}
		res.TotalPairs += sampleTotal
		res.SkippedPairs += sampleSkipped
		if sampleTotal > 0 {
			rate := float64(sampleSkipped) / float64(sampleTotal) * 100
			res.SampleRates = append(res.SampleRates, rate)
			logger.Debug().
				Int("sample", s).
				Float64("skip_rate", rate).
				Int("min_distance", runningMin).
				Msg("Sample done")
		}
	}

	summary := res.Summary()
	logger.Info().
		Int64("total_pairs", res.TotalPairs).
		Int64("skipped_pairs", res.SkippedPairs).
		Int("min_distance", res.MinDistance).
		Float64("sample_rate_mean", summary.Mean).
		Float64("sample_rate_std", summary.StdDev).
		Dur("elapsed", time.Since(start)).
		Msg("Run finished")
	return res, nil
}
