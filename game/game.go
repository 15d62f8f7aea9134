// Package game runs a headless puzzle session: level lifecycle, editing,
// simulation ticks and verify-then-persist. A presentation layer drives it
// and renders the graph it exposes.
package game

import (
	"log/slog"

	"github.com/pthm-cable/gatelab/config"
	"github.com/pthm-cable/gatelab/gates"
	"github.com/pthm-cable/gatelab/graph"
	"github.com/pthm-cable/gatelab/levels"
	"github.com/pthm-cable/gatelab/save"
	"github.com/pthm-cable/gatelab/systems"
	"github.com/pthm-cable/gatelab/telemetry"
	"github.com/pthm-cable/gatelab/verify"
)

// PlaygroundIndex is the level index of the free sandbox.
const PlaygroundIndex = -1

// Options configures a new Game.
type Options struct {
	Config    *config.Config // nil uses embedded defaults
	SavePath  string         // Overrides config save.path when set
	ReportDir string         // Overrides config telemetry.report_dir when set
}

// Game holds the complete session state.
type Game struct {
	cfg      *config.Config
	registry *gates.Registry
	savePath string

	progress *save.Progress
	output   *telemetry.OutputManager
	perf     *telemetry.PerfCollector
	verifier *verify.Verifier

	graph *graph.Graph
	eval  *systems.Evaluator

	levelIdx   int
	simulating bool
	message    string

	// Wire being dragged from an output port, zero when none
	wireSource graph.Handle
}

// NewGame creates a session, loading progress from the save file.
func NewGame(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	savePath := cfg.Save.Path
	if opts.SavePath != "" {
		savePath = opts.SavePath
	}
	reportDir := cfg.Telemetry.ReportDir
	if opts.ReportDir != "" {
		reportDir = opts.ReportDir
	}

	output, err := telemetry.NewOutputManager(reportDir)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:      cfg,
		registry: gates.Default(),
		savePath: savePath,
		progress: save.Load(savePath),
		output:   output,
		perf:     telemetry.NewPerfCollector(60),
		verifier: verify.New(verify.Options{
			Passes:      cfg.Derived.Passes,
			RecordTable: cfg.Verify.RecordTable || output != nil,
			WarnDepth:   cfg.Verify.WarnDepth,
			Prove:       cfg.Verify.Prove,
		}),
	}
	g.setGraph(graph.New())

	if err := output.WriteConfig(cfg); err != nil {
		slog.Warn("failed to write config snapshot", "error", err)
	}

	slog.Debug("session created",
		"save", savePath,
		"max_unlocked", g.progress.MaxUnlocked,
		"solutions", len(g.progress.Solutions),
	)
	return g, nil
}

func (g *Game) setGraph(gr *graph.Graph) {
	g.graph = gr
	g.eval = systems.NewEvaluator(gr.World(), g.cfg.Engine.EarlyExit)
	g.wireSource = graph.Handle{}
}

// Unload closes report files.
func (g *Game) Unload() error {
	return g.output.Close()
}

// Graph returns the circuit being edited.
func (g *Game) Graph() *graph.Graph {
	return g.graph
}

// Registry returns the gate registry used for spawning.
func (g *Game) Registry() *gates.Registry {
	return g.registry
}

// Progress returns the campaign progress.
func (g *Game) Progress() *save.Progress {
	return g.progress
}

// Level returns the current level. A new session sits on the first level
// until StartLevel is called. Returns nil only for an index outside the
// catalog.
func (g *Game) Level() *levels.Level {
	if g.levelIdx == PlaygroundIndex {
		return levels.Playground
	}
	l, _ := levels.At(g.levelIdx)
	return l
}

// LevelIndex returns the current level index, PlaygroundIndex for the sandbox.
func (g *Game) LevelIndex() int {
	return g.levelIdx
}

// MaxUnlocked returns the furthest unlocked level index.
func (g *Game) MaxUnlocked() int {
	return g.progress.MaxUnlocked
}

// Unlocked reports whether the level at idx can be played.
func (g *Game) Unlocked(idx int) bool {
	return idx == PlaygroundIndex || (idx >= 0 && idx <= g.progress.MaxUnlocked && idx < levels.Count())
}

// Message returns the last user-facing status message.
func (g *Game) Message() string {
	return g.message
}

// PerfStats returns timing statistics for recent ticks and verifications.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perf.Stats()
}
