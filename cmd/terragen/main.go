package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/df-mc/terragen/terrain"
	"github.com/df-mc/terragen/terrain/rng"
	"github.com/df-mc/terragen/terraindb"
)

func main() {
	confPath := flag.String("config", "terragen.toml", "path of the TOML generation config; created with defaults if missing")
	dbDir := flag.String("db", "", "directory of a run database to store the result in")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	conf, err := terrain.ReadConfig(*confPath)
	if err != nil {
		log.Error("read config", "error", err)
		os.Exit(1)
	}
	gen, err := terrain.NewGenerator(conf, log)
	if err != nil {
		log.Error("configuration rejected", "error", err)
		os.Exit(1)
	}
	data, err := gen.Generate()
	if err != nil {
		log.Error("generation failed", "error", err)
		os.Exit(1)
	}
	for name, ok := range data.Metrics.Invariants {
		if !ok {
			log.Warn("invariant failed", "invariant", name)
		}
	}

	counts := make(map[string]int)
	for _, b := range terrain.BiomeMap(data, conf) {
		counts[b.String()]++
	}
	log.Info("biomes classified", "distribution", counts)

	trees, report := terrain.PlaceTrees(data, conf, rng.NewSource(conf.Seed).Stream(terrain.StreamTrees))
	log.Info("trees placed",
		"count", len(trees),
		"target", report.TargetCount,
		"candidates", report.Candidates,
		"removed_by_safety", report.RemovedBySafety,
		"relaxed", report.Relaxed,
	)

	if *dbDir != "" {
		db, err := terraindb.Open(*dbDir, log)
		if err != nil {
			log.Error("open run db", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		key, err := db.Store(conf, data)
		if err != nil {
			log.Error("store run", "error", err)
			os.Exit(1)
		}
		log.Info("run stored", "key", uint64(key), "run_id", data.Metrics.RunID)
	}
}
