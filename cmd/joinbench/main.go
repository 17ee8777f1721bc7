// Command joinbench compares sequential JoinBlock against the
// morsel-parallel JoinBlockParallel path on a synthetic right/left
// fixture.
package main

import (
	"flag"
	"fmt"
	"time"

	chjoin "github.com/arenadata/chjoin"
	"go.uber.org/zap"
)

func main() {
	rightRows := flag.Int("right-rows", 200_000, "rows ingested into the right side")
	leftRows := flag.Int("left-rows", 1_000_000, "rows probed per iteration")
	iterations := flag.Int("iterations", 5, "iterations to average")
	verbose := flag.Bool("verbose", false, "log internal build/seal diagnostics")
	flag.Parse()

	if *verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			chjoin.SetLogger(l)
			defer l.Sync()
		}
	}

	fmt.Println("=== chjoin probe benchmark ===")
	fmt.Printf("right rows: %d, left rows: %d, iterations: %d\n\n", *rightRows, *leftRows, *iterations)

	hj, left, err := buildFixture(*rightRows, *leftRows)
	if err != nil {
		fmt.Println("fixture build failed:", err)
		return
	}

	fmt.Println("--- JoinBlock (sequential) ---")
	seq := benchmark(*iterations, func() {
		if _, err := hj.JoinBlock(left); err != nil {
			fmt.Println("join error:", err)
		}
	})
	fmt.Printf("avg: %v\n\n", seq)

	fmt.Println("--- JoinBlockParallel ---")
	cfg := chjoin.GetConfig()
	par := benchmark(*iterations, func() {
		if _, err := hj.JoinBlockParallel(left, cfg); err != nil {
			fmt.Println("join error:", err)
		}
	})
	fmt.Printf("avg: %v\n", par)
	fmt.Printf("speedup: %.2fx\n", float64(seq)/float64(par))
}

func buildFixture(rightRows, leftRows int) (*chjoin.HashJoin, *chjoin.Block, error) {
	rightKeys := make([]int64, rightRows)
	rightVals := make([]int64, rightRows)
	for i := range rightKeys {
		rightKeys[i] = int64(i)
		rightVals[i] = int64(i * 2)
	}
	rightSample, err := chjoin.NewBlock(
		chjoin.NewInt64Column("k", nil),
		chjoin.NewInt64Column("v", nil),
	)
	if err != nil {
		return nil, nil, err
	}

	desc := chjoin.Descriptor{
		Kind:             chjoin.Inner,
		Strictness:       chjoin.StrictAny,
		KeyNamesLeft:     [][]string{{"k"}},
		KeyNamesRight:    [][]string{{"k"}},
		AddedColumnNames: []string{"v"},
	}
	hj, err := chjoin.New(desc, rightSample, chjoin.GetConfig())
	if err != nil {
		return nil, nil, err
	}

	rightBlock, err := chjoin.NewBlock(
		chjoin.NewInt64Column("k", rightKeys),
		chjoin.NewInt64Column("v", rightVals),
	)
	if err != nil {
		return nil, nil, err
	}
	if _, err := hj.AddRightBlock(rightBlock, false); err != nil {
		return nil, nil, err
	}

	leftKeys := make([]int64, leftRows)
	for i := range leftKeys {
		leftKeys[i] = int64(i % rightRows)
	}
	leftBlock, err := chjoin.NewBlock(chjoin.NewInt64Column("k", leftKeys))
	if err != nil {
		return nil, nil, err
	}
	return hj, leftBlock, nil
}

func benchmark(iterations int, fn func()) time.Duration {
	fn() // warmup
	start := time.Now()
	for i := 0; i < iterations; i++ {
		fn()
	}
	return time.Since(start) / time.Duration(iterations)
}
