package game

import (
	"log/slog"

	"github.com/pthm-cable/gatelab/save"
	"github.com/pthm-cable/gatelab/systems"
	"github.com/pthm-cable/gatelab/telemetry"
	"github.com/pthm-cable/gatelab/verify"
)

// StartSim enables per-tick evaluation.
func (g *Game) StartSim() { g.simulating = true }

// StopSim disables per-tick evaluation.
func (g *Game) StopSim() { g.simulating = false }

// Simulating reports whether ticks evaluate the circuit.
func (g *Game) Simulating() bool { return g.simulating }

// Tick advances the simulation by one pass while simulating.
// Returns the number of nodes whose value changed.
func (g *Game) Tick() int {
	if !g.simulating {
		return 0
	}
	g.perf.Start()
	g.perf.StartPhase(telemetry.PhaseSettle)
	changed := g.eval.Pass()
	g.perf.End()
	return changed
}

// Settle runs up to passes passes immediately, regardless of the sim state.
// Non-positive passes use the configured bound.
func (g *Game) Settle(passes int) systems.SettleResult {
	if passes <= 0 {
		passes = g.cfg.Derived.Passes
	}
	return g.eval.Settle(passes)
}

// Verify grades the current circuit. On success the solution is saved and, if
// this is the furthest unlocked level, the unlock pointer advances.
func (g *Game) Verify() verify.Result {
	level := g.Level()
	if level == nil {
		return verify.Result{Status: verify.StatusNoGoal}
	}

	g.perf.Start()
	g.perf.StartPhase(telemetry.PhaseVerify)
	res := g.verifier.Verify(g.graph, g.eval, level)

	g.message = res.Message()

	if res.Passed() {
		g.perf.StartPhase(telemetry.PhasePersist)
		g.progress.Put(level.Key(), save.Serialize(g.graph))
		if g.progress.Unlock(g.levelIdx) {
			slog.Info("level unlocked", "max_unlocked", g.progress.MaxUnlocked)
		}
		if err := g.progress.Store(g.savePath); err != nil {
			slog.Error("failed to save progress", "path", g.savePath, "error", err)
		}
	}
	took := g.perf.End()

	if _, err := g.output.WriteResult(&res, took); err != nil {
		slog.Warn("failed to write verification report", "error", err)
	}

	if res.Passed() {
		slog.Info("verification passed", "result", res)
	} else {
		slog.Info("verification failed", "result", res)
	}
	return res
}

// Prove runs a SAT equivalence check of the current circuit against the
// level goal, independent of the settle bound.
func (g *Game) Prove() (verify.Proof, error) {
	level := g.Level()
	if level == nil {
		return verify.Proof{}, verify.ErrNoGoal
	}

	g.perf.Start()
	g.perf.StartPhase(telemetry.PhaseProve)
	proof, err := verify.Prove(g.graph, level)
	g.perf.End()
	return proof, err
}
