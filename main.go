package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/pthm-cable/gatelab/config"
	"github.com/pthm-cable/gatelab/game"
	"github.com/pthm-cable/gatelab/levels"
	"github.com/pthm-cable/gatelab/verify"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	savePath := flag.String("save", "", "Save file path (empty = use config)")
	reportDir := flag.String("report-dir", "", "Output directory for CSV reports and config snapshot")
	levelIdx := flag.Int("level", -2, "Level index to load (-1 = playground, -2 = furthest unlocked)")
	doVerify := flag.Bool("verify", false, "Verify the stored solution for the level")
	doProve := flag.Bool("prove", false, "Also run a SAT equivalence proof")
	list := flag.Bool("list", false, "List levels and progress, then exit")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	g, err := game.NewGame(game.Options{
		Config:    cfg,
		SavePath:  *savePath,
		ReportDir: *reportDir,
	})
	if err != nil {
		slog.Error("failed to start session", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	if *list {
		for i, l := range levels.All() {
			_, solved := g.Progress().Solution(l.Key())
			slog.Info("level",
				"index", i,
				"id", l.ID,
				"title", l.Title,
				"inputs", l.InputCount,
				"outputs", l.OutputCount,
				"unlocked", g.Unlocked(i),
				"saved", solved,
			)
		}
		return
	}

	var started bool
	if *levelIdx == -2 {
		started = g.ContinueLatest()
	} else {
		started = g.StartLevel(*levelIdx)
	}
	if !started {
		slog.Error("level is locked or unknown", "index", *levelIdx, "max_unlocked", g.MaxUnlocked())
		os.Exit(1)
	}

	l := g.Level()
	slog.Info("level loaded",
		"index", g.LevelIndex(),
		"title", l.Title,
		"nodes", g.Graph().Len(),
	)

	if !*doVerify {
		settle := g.Settle(0)
		slog.Info("circuit settled",
			"passes", settle.Passes,
			"stable", settle.Stable,
			"outputs", verify.FormatBits(g.Graph().Values(g.Graph().Outputs())),
		)
		return
	}

	res := g.Verify()
	slog.Info(res.Message())

	if *doProve {
		proof, err := g.Prove()
		if err != nil {
			slog.Warn("proof unavailable", "error", err)
		} else {
			slog.Info("proof complete",
				"equivalent", proof.Equivalent,
				"counterexample", verify.FormatBits(proof.Counterexample),
			)
		}
	}

	slog.Info("perf", "stats", g.PerfStats())

	if !res.Passed() {
		g.Unload()
		os.Exit(1)
	}
}
