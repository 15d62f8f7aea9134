package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/gatelab/config"
	"github.com/pthm-cable/gatelab/verify"
)

// OutputManager writes verification reports as CSV files.
type OutputManager struct {
	dir       string
	runsFile  *os.File
	tableFile *os.File

	runs int

	// Track if headers have been written
	runsHeaderWritten  bool
	tableHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled). All methods are no-ops on a
// nil manager.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "runs.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating runs.csv: %w", err)
	}
	om.runsFile = f

	f, err = os.Create(filepath.Join(dir, "truth_tables.csv"))
	if err != nil {
		om.runsFile.Close()
		return nil, fmt.Errorf("creating truth_tables.csv: %w", err)
	}
	om.tableFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteResult appends a run record to runs.csv and the run's recorded rows,
// if any, to truth_tables.csv. Returns the run number.
func (om *OutputManager) WriteResult(res *verify.Result, took time.Duration) (int, error) {
	if om == nil {
		return 0, nil
	}

	om.runs++
	run := om.runs

	records := []RunRecord{NewRunRecord(run, res, took)}
	if err := writeCSV(records, om.runsFile, &om.runsHeaderWritten); err != nil {
		return run, fmt.Errorf("writing run: %w", err)
	}

	if rows := TruthRows(run, res); len(rows) > 0 {
		if err := writeCSV(rows, om.tableFile, &om.tableHeaderWritten); err != nil {
			return run, fmt.Errorf("writing truth table: %w", err)
		}
	}

	return run, nil
}

// writeCSV marshals records, including headers only on the first write.
func writeCSV(records any, f *os.File, headerWritten *bool) error {
	if !*headerWritten {
		if err := gocsv.Marshal(records, f); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, f)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	if om.runsFile != nil {
		if err := om.runsFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.tableFile != nil {
		if err := om.tableFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
