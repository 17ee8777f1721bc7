package chjoin

import (
	"sync"
	"testing"
)

func TestUsedFlagsBasic(t *testing.T) {
	f := newUsedFlags(4, true)
	if f.GetUsed(2) {
		t.Fatal("fresh UsedFlags must report unused")
	}
	f.SetUsed(2)
	if !f.GetUsed(2) {
		t.Fatal("SetUsed must make GetUsed report true")
	}
}

func TestUsedFlagsNotNeededAlwaysReportsUsed(t *testing.T) {
	f := newUsedFlags(4, false)
	if !f.GetUsed(0) {
		t.Fatal("an unneeded UsedFlags must report every offset as used")
	}
	if !f.SetUsedOnce(0) {
		t.Fatal("an unneeded UsedFlags' SetUsedOnce must always succeed")
	}
}

func TestUsedFlagsSetUsedOnceIsSoleClaimant(t *testing.T) {
	f := newUsedFlags(1, true)
	const workers = 64
	var wins int32
	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if f.SetUsedOnce(0) {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("SetUsedOnce granted %d claims concurrently, want exactly 1", wins)
	}
}
