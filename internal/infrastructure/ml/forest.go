package ml

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ForestConfig controls how a bagged regression forest is grown.
type ForestConfig struct {
	Trees   int
	Seed    int64
	Workers int
}

// Forest is a bagged ensemble of regression trees. It is immutable once fitted.
type Forest struct {
	trees []*regressionTree
}

// FitForest grows cfg.Trees trees concurrently. Every tree draws from its own
// PRNG derived from cfg.Seed and its index, so the fitted forest does not
// depend on goroutine scheduling.
func FitForest(ctx context.Context, xs [][]float64, ys []float64, cfg ForestConfig) (*Forest, error) {
	if len(xs) == 0 {
		return nil, fmt.Errorf("fit forest: empty training matrix")
	}
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("fit forest: %d rows but %d targets", len(xs), len(ys))
	}
	if cfg.Trees <= 0 {
		return nil, fmt.Errorf("fit forest: tree count must be positive, got %d", cfg.Trees)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	trees := make([]*regressionTree, cfg.Trees)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range trees {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(treeSeed(cfg.Seed, i)))
			trees[i] = growTree(xs, ys, rng)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fit forest: %w", err)
	}
	return &Forest{trees: trees}, nil
}

// Predict averages the predictions of every tree.
func (f *Forest) Predict(x []float64) float64 {
	sum := 0.0
	for _, t := range f.trees {
		sum += t.predict(x)
	}
	return sum / float64(len(f.trees))
}

// Size returns the number of trees.
func (f *Forest) Size() int {
	return len(f.trees)
}

func treeSeed(seed int64, i int) int64 {
	return int64(uint64(seed) + uint64(i+1)*0x9E3779B97F4A7C15)
}
