// Package verify grades a circuit against a level's goal function by
// exhaustively driving every input vector through the evaluator.
package verify

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/pthm-cable/gatelab/graph"
	"github.com/pthm-cable/gatelab/levels"
	"github.com/pthm-cable/gatelab/systems"
	"github.com/pthm-cable/gatelab/topology"
)

// Status classifies a verification outcome.
type Status uint8

const (
	StatusPassed         Status = iota // Every vector matched
	StatusInputMismatch                // Wrong number of Input nodes
	StatusOutputMismatch               // Wrong number of Output nodes
	StatusLogicMismatch                // Some vector produced the wrong outputs
	StatusNoGoal                       // Level has nothing to check
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusInputMismatch:
		return "input_mismatch"
	case StatusOutputMismatch:
		return "output_mismatch"
	case StatusLogicMismatch:
		return "logic_mismatch"
	case StatusNoGoal:
		return "no_goal"
	}
	return "unknown"
}

// Mismatch is the first input vector whose settled outputs differ from the goal.
type Mismatch struct {
	Index  int // Position in enumeration order
	Inputs []bool
	Got    []bool
	Want   []bool
}

// Row is one evaluated input vector.
type Row struct {
	Index  int
	Inputs []bool
	Got    []bool
	Want   []bool
	Match  bool
	Passes int
	Stable bool
}

// Result is the outcome of a verification run.
type Result struct {
	LevelID int
	Status  Status

	WantInputs, HaveInputs   int
	WantOutputs, HaveOutputs int

	Mismatch  *Mismatch
	Tested    int   // Vectors evaluated, including the failing one
	Unsettled int   // Vectors whose settle ended without a fixed point
	Rows      []Row // Per-vector rows when Options.RecordTable is set
	Proof     *Proof
}

// Passed reports whether the circuit satisfies the level.
func (r Result) Passed() bool {
	return r.Status == StatusPassed
}

// Message returns the user-facing summary of the result.
func (r Result) Message() string {
	switch r.Status {
	case StatusPassed:
		return "Level Complete! Logic Verified."
	case StatusInputMismatch:
		return fmt.Sprintf("Error: Input count mismatch. Expected %d.", r.WantInputs)
	case StatusOutputMismatch:
		return fmt.Sprintf("Error: Output count mismatch. Expected %d.", r.WantOutputs)
	case StatusLogicMismatch:
		m := r.Mismatch
		return fmt.Sprintf("Failed at inputs: %s. Got %s, expected %s.",
			FormatBits(m.Inputs), FormatBits(m.Got), FormatBits(m.Want))
	case StatusNoGoal:
		return "No check function for this level."
	}
	return ""
}

// LogValue implements slog.LogValuer for structured logging.
func (r Result) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("level", r.LevelID),
		slog.String("status", r.Status.String()),
		slog.Int("tested", r.Tested),
		slog.Int("unsettled", r.Unsettled),
	}
	if r.Mismatch != nil {
		attrs = append(attrs,
			slog.String("inputs", FormatBits(r.Mismatch.Inputs)),
			slog.String("got", FormatBits(r.Mismatch.Got)),
			slog.String("want", FormatBits(r.Mismatch.Want)),
		)
	}
	if r.Proof != nil {
		attrs = append(attrs, slog.Bool("proved", r.Proof.Equivalent))
	}
	return slog.GroupValue(attrs...)
}

// FormatBits renders a boolean vector as a 0/1 string, first element first.
func FormatBits(v []bool) string {
	b := make([]byte, len(v))
	for i, x := range v {
		b[i] = '0'
		if x {
			b[i] = '1'
		}
	}
	return string(b)
}

// Options configures a Verifier.
type Options struct {
	Passes      int  // Settle bound per vector
	RecordTable bool // Keep a Row per evaluated vector
	WarnDepth   bool // Log when wiring is too deep or cyclic for the settle bound
	Prove       bool // Attach a SAT equivalence proof to passing results
}

// Verifier drives the evaluator across a level's input space.
type Verifier struct {
	opts Options
}

// New creates a verifier.
func New(opts Options) *Verifier {
	if opts.Passes <= 0 {
		opts.Passes = systems.DefaultPasses
	}
	return &Verifier{opts: opts}
}

// Verify grades g against level. It never mutates wiring; Input values are
// restored and the graph re-settled before returning.
func (v *Verifier) Verify(g *graph.Graph, eval *systems.Evaluator, level *levels.Level) Result {
	res := Result{
		LevelID:     level.ID,
		WantInputs:  level.InputCount,
		WantOutputs: level.OutputCount,
	}
	if !level.Playable() {
		res.Status = StatusNoGoal
		return res
	}

	inputs := g.Inputs()
	outputs := g.Outputs()
	res.HaveInputs = len(inputs)
	res.HaveOutputs = len(outputs)

	if len(inputs) != level.InputCount {
		res.Status = StatusInputMismatch
		return res
	}
	if len(outputs) != level.OutputCount {
		res.Status = StatusOutputMismatch
		return res
	}

	if v.opts.WarnDepth {
		v.checkDepth(g, level)
	}

	snapshot := g.Values(inputs)
	defer v.restore(g, eval, inputs, snapshot)

	n := level.InputCount
	for k := 0; k < levels.Space(n); k++ {
		vec := levels.Vector(k, n)
		for i, h := range inputs {
			g.SetInputValue(h, vec[i])
		}

		settle := eval.Settle(v.opts.Passes)
		got := g.Values(outputs)
		want := level.Expected(vec)
		match := slices.Equal(got, want)

		res.Tested++
		if !settle.Stable {
			res.Unsettled++
		}
		if v.opts.RecordTable {
			res.Rows = append(res.Rows, Row{
				Index:  k,
				Inputs: vec,
				Got:    got,
				Want:   want,
				Match:  match,
				Passes: settle.Passes,
				Stable: settle.Stable,
			})
		}

		if !match {
			res.Status = StatusLogicMismatch
			res.Mismatch = &Mismatch{Index: k, Inputs: vec, Got: got, Want: want}
			return res
		}
	}

	res.Status = StatusPassed

	if v.opts.Prove {
		proof, err := Prove(g, level)
		if err != nil {
			slog.Debug("equivalence proof skipped", "level", level.ID, "error", err)
		} else {
			res.Proof = &proof
		}
	}
	return res
}

func (v *Verifier) restore(g *graph.Graph, eval *systems.Evaluator, inputs []graph.Handle, snapshot []bool) {
	for i, h := range inputs {
		g.SetInputValue(h, snapshot[i])
	}
	eval.Settle(v.opts.Passes)
}

func (v *Verifier) checkDepth(g *graph.Graph, level *levels.Level) {
	rep := topology.Analyze(g)
	switch {
	case !rep.Acyclic:
		slog.Warn("circuit has feedback; settled values may be transient",
			"level", level.ID, "cycles", len(rep.Cycles), "self_loops", len(rep.SelfLoops))
	case rep.PassesNeeded() > v.opts.Passes:
		slog.Warn("circuit deeper than settle bound",
			"level", level.ID, "depth", rep.Depth, "passes", v.opts.Passes)
	}
}
