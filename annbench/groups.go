package annbench

import (
	"context"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/gasparian/hamming-tri-go/vector"
	"golang.org/x/sync/errgroup"
)

// GroupsResult holds the folded outcome of scanning every group of one bucketing round
type GroupsResult struct {
	Min          int
	TotalPairs   int64
	SkippedPairs int64
}

// Aggregator runs the pruned scan inside each group.
// Workers limits how many groups are scanned at once; one worker
// scans groups in order, each seeded with everything found before it.
type Aggregator struct {
	Workers int
	Metrics *Metrics
}

// AnalyzeGroups scans groups one by one starting from currMin
func AnalyzeGroups(ctx context.Context, sample []vector.Binary, groups []*roaring.Bitmap, currMin int) (GroupsResult, error) {
	agg := Aggregator{Workers: 1}
	return agg.Analyze(ctx, sample, groups, currMin)
}

func members(sample []vector.Binary, group *roaring.Bitmap) []vector.Binary {
	vecs := make([]vector.Binary, 0, group.GetCardinality())
	it := group.Iterator()
	for it.HasNext() {
		vecs = append(vecs, sample[it.Next()])
	}
	return vecs
}

// Analyze folds all groups into a single minimum and pair totals.
// With several workers a group may start from a stale minimum, which
// only costs extra exact comparisons; the minimum itself stays exact.
func (agg Aggregator) Analyze(ctx context.Context, sample []vector.Binary, groups []*roaring.Bitmap, currMin int) (GroupsResult, error) {
	workers := agg.Workers
	if workers < 1 {
		workers = 1
	}
	reg := NewMinRegister(currMin)
	results := make([]vector.ScanResult, len(groups))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, group := range groups {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			vecs := members(sample, group)
			agg.Metrics.observeGroup(len(vecs))
			res, err := vector.MinHamming(vecs, reg.Load())
			if err != nil {
				return err
			}
			reg.Offer(res.Min)
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return GroupsResult{}, err
	}

	out := GroupsResult{Min: reg.Load()}
	for _, res := range results {
		out.TotalPairs += res.TotalPairs
		out.SkippedPairs += res.SkippedPairs
	}
	return out, nil
}
