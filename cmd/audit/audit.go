package main

import (
	"sync"
	"time"

	"github.com/pthm-cable/gatelab/config"
	"github.com/pthm-cable/gatelab/levels"
	"github.com/pthm-cable/gatelab/save"
	"github.com/pthm-cable/gatelab/systems"
	"github.com/pthm-cable/gatelab/verify"
)

// Auditor verifies stored solutions against the level catalog.
type Auditor struct {
	cfg      *config.Config
	progress *save.Progress
	verifier *verify.Verifier
	prove    bool
}

// NewAuditor creates an auditor over the solutions in progress.
func NewAuditor(cfg *config.Config, progress *save.Progress, prove bool) *Auditor {
	return &Auditor{
		cfg:      cfg,
		progress: progress,
		verifier: verify.New(verify.Options{
			Passes:      cfg.Derived.Passes,
			RecordTable: true,
		}),
		prove: prove,
	}
}

// levelResult holds the outcome for one stored solution.
type levelResult struct {
	Index  int
	Level  *levels.Level
	Result verify.Result
	Proof  *verify.Proof
	Err    error // Proof error, if a proof was requested
	Took   time.Duration
}

// Run verifies every level that has a stored solution. Levels are graded in
// parallel; each owns its graph and evaluator. Results are in catalog order.
func (a *Auditor) Run() []levelResult {
	var todo []int
	for i, l := range levels.All() {
		if _, ok := a.progress.Solution(l.Key()); ok {
			todo = append(todo, i)
		}
	}

	results := make([]levelResult, len(todo))
	var wg sync.WaitGroup

	for slot, idx := range todo {
		wg.Add(1)
		go func(slot, idx int) {
			defer wg.Done()
			results[slot] = a.audit(idx)
		}(slot, idx)
	}
	wg.Wait()

	return results
}

func (a *Auditor) audit(idx int) levelResult {
	level, _ := levels.At(idx)
	sol, _ := a.progress.Solution(level.Key())

	start := time.Now()
	g := save.Deserialize(sol, level, a.cfg.Layout)
	eval := systems.NewEvaluator(g.World(), a.cfg.Engine.EarlyExit)

	r := levelResult{
		Index:  idx,
		Level:  level,
		Result: a.verifier.Verify(g, eval, level),
	}
	if a.prove {
		proof, err := verify.Prove(g, level)
		if err != nil {
			r.Err = err
		} else {
			r.Proof = &proof
		}
	}
	r.Took = time.Since(start)
	return r
}
