package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/microbiome/config"
	"github.com/pthm-cable/microbiome/telemetry"
)

// FitnessEvaluator runs headless arenas and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	baseConfig *config.Config

	// Best run tracking
	mu           sync.Mutex
	bestFitness  float64
	bestLifetime telemetry.LifetimeStats
	lastQuality  float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// BestLifetime returns the challenger's lifetime stats from the best evaluation.
func (fe *FitnessEvaluator) BestLifetime() telemetry.LifetimeStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestLifetime
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness  float64
	quality  float64
	lifetime telemetry.LifetimeStats
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	candidate := fe.params.ToAI(x)

	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := newArena(fe.copyConfig(), candidate, s).run(fe.maxTicks)
			quality := computeQuality(result.shares, fe.baseConfig.Scene.Opponents+1)
			results[idx] = seedResult{
				fitness:  fe.computeFitness(result, quality),
				quality:  quality,
				lifetime: result.lifetime,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	bestSeedFitness := math.Inf(1)
	var bestSeedLifetime telemetry.LifetimeStats

	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
		if r.fitness < bestSeedFitness {
			bestSeedFitness = r.fitness
			bestSeedLifetime = r.lifetime
		}
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestLifetime = bestSeedLifetime
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// copyConfig returns a copy of the base config. Config holds only value
// fields, so a struct copy is deep.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness rewards surviving the whole run and holding mass.
// Survival dominates: a challenger that dies early cannot make up for it
// with a large share.
func (fe *FitnessEvaluator) computeFitness(r runResult, quality float64) float64 {
	survival := float64(r.survivalTicks) / float64(fe.maxTicks)
	return -(survival * (1 + quality))
}

// computeQuality scores the challenger's mass share over the stats windows.
// A steady share of 1/players is an even split and scores 0.5. Volatile
// shares lose up to a fifth of their score.
func computeQuality(shares []float64, players int) float64 {
	if len(shares) == 0 || players <= 0 {
		return 0
	}
	mean, std := stat.MeanStdDev(shares, nil)
	if len(shares) < 2 {
		std = 0
	}

	fair := 1 / float64(players)
	dominance := mean / (mean + fair)
	stability := 1.0
	if mean > 0 {
		cv := std / mean
		stability = math.Exp(-cv * cv)
	}
	return clamp01(dominance * (0.8 + 0.2*stability))
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return min(max(x, 0), 1)
}
