package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"tilestream/internal/areagen"
)

type scenario struct {
	seed     int64
	coverage float64
	maxR     int
}

func (s scenario) String() string {
	return fmt.Sprintf("seed=%d coverage=%.3f maxRadius=%d", s.seed, s.coverage, s.maxR)
}

type scenarioResult struct {
	params     scenario
	minReached float64
	meanReach  float64
	shortfalls int
	elapsed    time.Duration
}

func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, f := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", f, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", f, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func main() {
	seeds := flag.Int("seeds", 8, "seeds per scenario")
	coverages := flag.String("coverage", "0.1,0.3,0.5,0.7", "comma separated coverage targets")
	radii := flag.String("max-radius", "4,8,16", "comma separated maximum radii")
	side := flag.Float64("grid", 64, "tiles per cell side")
	stall := flag.Int("stall", areagen.DefaultStallLimit, "placement attempts without progress before giving up")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	flag.Parse()

	covs, err := parseFloats(*coverages)
	if err != nil {
		log.Fatal(err)
	}
	maxes, err := parseInts(*radii)
	if err != nil {
		log.Fatal(err)
	}

	base := areagen.DefaultSettings()
	base.MetersPerTile = 1
	base.MetersPerGrid = *side
	base.Cylindrical = false
	base.MinSpanMeters = int(*side) * 6
	base.MaxSpanMeters = int(*side) * 6

	var sets []scenario
	for _, cov := range covs {
		for _, maxR := range maxes {
			for s := 0; s < *seeds; s++ {
				sets = append(sets, scenario{seed: int64(s + 1), coverage: cov, maxR: maxR})
			}
		}
	}

	fmt.Printf("Sweeping %d scenarios (%d workers)\n", len(sets), *workers)

	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < *workers; i++ {
		g.Go(func() error {
			gen := areagen.New(areagen.WithStallLimit(*stall))
			for params := range jobs {
				res, err := runScenario(ctx, gen, base, params)
				if err != nil {
					return fmt.Errorf("%s: %w", params, err)
				}
				select {
				case results <- res:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}

	go func() {
		defer close(jobs)
		for _, params := range sets {
			select {
			case jobs <- params:
			case <-ctx.Done():
				return
			}
		}
	}()

	var waitErr error
	done := make(chan struct{})
	go func() {
		waitErr = g.Wait()
		close(results)
		close(done)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		all = append(all, res)
	}
	<-done
	if waitErr != nil {
		log.Fatal(waitErr)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].params.coverage != all[j].params.coverage {
			return all[i].params.coverage < all[j].params.coverage
		}
		if all[i].params.maxR != all[j].params.maxR {
			return all[i].params.maxR < all[j].params.maxR
		}
		return all[i].params.seed < all[j].params.seed
	})
	fmt.Printf("Completed sweep in %s\n", time.Since(start))
	fmt.Println("coverage  maxR  seeds  min-reached  mean-reached  shortfalls  mean-time")
	for i := 0; i < len(all); {
		j := i
		var minReached, meanReach float64 = 1, 0
		var shortfalls int
		var elapsed time.Duration
		for ; j < len(all) && all[j].params.coverage == all[i].params.coverage && all[j].params.maxR == all[i].params.maxR; j++ {
			minReached = min(minReached, all[j].minReached)
			meanReach += all[j].meanReach
			shortfalls += all[j].shortfalls
			elapsed += all[j].elapsed
		}
		n := j - i
		fmt.Printf("%8.3f  %4d  %5d  %11.3f  %12.3f  %10d  %9s\n",
			all[i].params.coverage, all[i].params.maxR, n, minReached, meanReach/float64(n), shortfalls,
			(elapsed / time.Duration(n)).Round(time.Millisecond))
		i = j
	}
}

func runScenario(ctx context.Context, gen *areagen.Generator, base areagen.Settings, params scenario) (scenarioResult, error) {
	s := base
	s.Seed = params.seed
	area := areagen.AreaSpread{
		ID:        1,
		Coverage:  params.coverage,
		MinRadius: 1,
		MaxRadius: params.maxR,
		EdgeNoise: true,
		Shape:     areagen.ShapeCircle,
		Layer:     areagen.LayerHeight,
	}
	block, err := gen.GenerateWindow(ctx, s, []areagen.AreaSpread{area}, 0, 0)
	if err != nil {
		return scenarioResult{}, err
	}
	res := scenarioResult{params: params, minReached: 1, shortfalls: len(block.Meta.Shortfalls), elapsed: block.Meta.Elapsed}
	for _, c := range block.Cells {
		cov := c.Coverage(area.ID)
		res.minReached = min(res.minReached, cov)
		res.meanReach += cov
	}
	res.meanReach /= float64(len(block.Cells))
	return res, nil
}
