// Package telemetry records verification runs and engine timing as CSV reports.
package telemetry

import (
	"time"

	"github.com/pthm-cable/gatelab/verify"
)

// TruthRow is one evaluated input vector of a verification run.
type TruthRow struct {
	Run    int    `csv:"run"`
	Level  int    `csv:"level"`
	Index  int    `csv:"index"`
	Inputs string `csv:"inputs"`
	Want   string `csv:"want"`
	Got    string `csv:"got"`
	Match  bool   `csv:"match"`
	Passes int    `csv:"passes"`
	Stable bool   `csv:"stable"`
}

// RunRecord summarises one verification run.
type RunRecord struct {
	Run        int    `csv:"run"`
	Level      int    `csv:"level"`
	Status     string `csv:"status"`
	Tested     int    `csv:"tested"`
	Unsettled  int    `csv:"unsettled"`
	FailInputs string `csv:"fail_inputs"`
	FailGot    string `csv:"fail_got"`
	FailWant   string `csv:"fail_want"`
	Proved     string `csv:"proved"` // "yes", "no" or empty when no proof ran
	DurationUS int64  `csv:"duration_us"`
}

// NewRunRecord flattens a result for CSV export.
func NewRunRecord(run int, res *verify.Result, took time.Duration) RunRecord {
	rec := RunRecord{
		Run:        run,
		Level:      res.LevelID,
		Status:     res.Status.String(),
		Tested:     res.Tested,
		Unsettled:  res.Unsettled,
		DurationUS: took.Microseconds(),
	}
	if m := res.Mismatch; m != nil {
		rec.FailInputs = verify.FormatBits(m.Inputs)
		rec.FailGot = verify.FormatBits(m.Got)
		rec.FailWant = verify.FormatBits(m.Want)
	}
	if res.Proof != nil {
		rec.Proved = "no"
		if res.Proof.Equivalent {
			rec.Proved = "yes"
		}
	}
	return rec
}

// TruthRows flattens a result's recorded table for CSV export.
func TruthRows(run int, res *verify.Result) []TruthRow {
	rows := make([]TruthRow, len(res.Rows))
	for i, r := range res.Rows {
		rows[i] = TruthRow{
			Run:    run,
			Level:  res.LevelID,
			Index:  r.Index,
			Inputs: verify.FormatBits(r.Inputs),
			Want:   verify.FormatBits(r.Want),
			Got:    verify.FormatBits(r.Got),
			Match:  r.Match,
			Passes: r.Passes,
			Stable: r.Stable,
		}
	}
	return rows
}
