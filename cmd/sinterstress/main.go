// ════════════════════════════════════════════════════════════════════════════════════════════════
// sinterstress - concurrent workload generator for the string interning pool
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Phases:
//   Phase 1: spin up N worker goroutines hammering Intern (whose fast path is
//            a lockless lookup) against a mixed shared/unique string workload.
//   Phase 2: wait for all workers to finish, then print a diagnostics
//            snapshot of the pool's internal bookkeeping.
// ════════════════════════════════════════════════════════════════════════════════════════════════

package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sync"

	"github.com/coldharbor/sinter"
)

func main() {
	workers := flag.Int("workers", 8, "number of concurrent goroutines")
	shared := flag.Int("shared", 1000, "number of strings shared across all workers")
	unique := flag.Int("unique", 200, "number of worker-unique strings per worker")
	iterations := flag.Int("iterations", 5, "passes each worker makes over its workload")
	flag.Parse()

	sharedWords := make([]string, *shared)
	for i := range sharedWords {
		sharedWords[i] = fmt.Sprintf("shared-%d", i)
	}

	var wg sync.WaitGroup
	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go runWorker(&wg, w, sharedWords, *unique, *iterations)
	}
	wg.Wait()

	snap := sinter.Snapshot()
	b, err := snap.JSON()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sinterstress: snapshot marshal: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(b))
}

// runWorker interns every shared word plus a worker-unique set of words,
// iteration times, verifying on each later pass that canonicalization held
// within this worker: the handle for a given string must match the one the
// worker got on its first pass. Handles are not compared across workers.
func runWorker(wg *sync.WaitGroup, id int, shared []string, uniqueCount, iterations int) {
	defer wg.Done()

	unique := make([]string, uniqueCount)
	for i := range unique {
		unique[i] = fmt.Sprintf("worker-%d-unique-%d", id, i)
	}

	firstShared := make([]sinter.IStr, len(shared))
	var firstUnique []sinter.IStr
	for pass := 0; pass < iterations; pass++ {
		order := rand.Perm(len(shared))
		for _, idx := range order {
			h, err := sinter.Intern([]byte(shared[idx]))
			if err != nil {
				fmt.Fprintf(os.Stderr, "sinterstress: worker %d: %v\n", id, err)
				return
			}
			if pass == 0 {
				firstShared[idx] = h
			} else if !h.Equal(firstShared[idx]) {
				fmt.Fprintf(os.Stderr, "sinterstress: worker %d: canonicalization violated for %q\n", id, shared[idx])
				return
			}
		}

		for i, s := range unique {
			h, err := sinter.Intern([]byte(s))
			if err != nil {
				fmt.Fprintf(os.Stderr, "sinterstress: worker %d: %v\n", id, err)
				return
			}
			if pass == 0 {
				firstUnique = append(firstUnique, h)
			} else if !h.Equal(firstUnique[i]) {
				fmt.Fprintf(os.Stderr, "sinterstress: worker %d: canonicalization violated for %q\n", id, s)
				return
			}
		}
	}
}
