// Package main re-verifies every solution in a save file and writes CSV
// reports, for checking saves against catalog or engine changes.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/pthm-cable/gatelab/config"
	"github.com/pthm-cable/gatelab/save"
	"github.com/pthm-cable/gatelab/telemetry"
	"github.com/pthm-cable/gatelab/verify"
)

// formatDuration formats a duration as seconds with millisecond precision,
// or milliseconds for shorter durations.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// summaryEntry is one level in summary.json.
type summaryEntry struct {
	Index      int    `json:"index"`
	Level      int    `json:"level"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	Tested     int    `json:"tested"`
	Unsettled  int    `json:"unsettled"`
	Equivalent *bool  `json:"equivalent,omitempty"`
	TookMicros int64  `json:"took_us"`
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	savePath := flag.String("save", "", "Save file to audit (empty = use config)")
	outputDir := flag.String("output", "", "Output directory for results")
	prove := flag.Bool("prove", false, "Cross-check each solution with a SAT equivalence proof")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	path := cfg.Save.Path
	if *savePath != "" {
		path = *savePath
	}
	progress, err := save.Read(path)
	if err != nil {
		log.Fatalf("failed to read save file: %v", err)
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		log.Fatalf("failed to create output: %v", err)
	}
	defer output.Close()

	if err := output.WriteConfig(cfg); err != nil {
		log.Printf("failed to write config snapshot: %v", err)
	}

	fmt.Printf("Auditing %d stored solutions from %s\n", len(progress.Solutions), path)

	startTime := time.Now()
	results := NewAuditor(cfg, progress, *prove).Run()

	passed := 0
	summary := make([]summaryEntry, 0, len(results))
	for _, r := range results {
		if _, err := output.WriteResult(&r.Result, r.Took); err != nil {
			log.Printf("failed to write report row: %v", err)
		}

		entry := summaryEntry{
			Index:      r.Index,
			Level:      r.Level.ID,
			Title:      r.Level.Title,
			Status:     r.Result.Status.String(),
			Message:    r.Result.Message(),
			Tested:     r.Result.Tested,
			Unsettled:  r.Result.Unsettled,
			TookMicros: r.Took.Microseconds(),
		}
		if r.Proof != nil {
			eq := r.Proof.Equivalent
			entry.Equivalent = &eq
		}
		summary = append(summary, entry)

		mark := "FAIL"
		if r.Result.Passed() {
			mark = "ok"
			passed++
		}
		fmt.Printf("  [%-4s] %2d %-22s %s (%s)\n", mark, r.Level.ID, r.Level.Title, r.Result.Message(), formatDuration(r.Took))
		if r.Proof != nil && !r.Proof.Equivalent {
			fmt.Printf("         proof counterexample: %s\n", verify.FormatBits(r.Proof.Counterexample))
		} else if r.Err != nil {
			fmt.Printf("         proof unavailable: %v\n", r.Err)
		}
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode summary: %v", err)
	}
	summaryPath := filepath.Join(*outputDir, "summary.json")
	if err := os.WriteFile(summaryPath, data, 0644); err != nil {
		log.Printf("failed to write summary: %v", err)
	}

	fmt.Printf("\nAudit complete: %d/%d passed in %s\n", passed, len(results), formatDuration(time.Since(startTime)))
	fmt.Printf("Reports saved to: %s\n", output.Dir())

	if passed != len(results) {
		output.Close()
		os.Exit(1)
	}
}
