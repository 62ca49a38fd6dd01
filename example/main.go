// Command example runs the event API over the in-memory store, seeded with
// a sample recurring series.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/librecal/librecal/recur"
	"github.com/librecal/librecal/server"
	"github.com/librecal/librecal/store/memory"
)

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg := server.DefaultServerConfig
	if *configPath != "" {
		loaded, err := server.LoadConfig(*configPath)
		if err != nil {
			logger.Error("load config", "error", err)
			os.Exit(1)
		}
		cfg = *loaded
	}

	engineCfg, err := cfg.EngineConfig()
	if err != nil {
		logger.Error("engine config", "error", err)
		os.Exit(1)
	}
	engine := recur.NewEngineWithConfig(engineCfg)

	storage := memory.New()
	if err := seed(storage, engine); err != nil {
		logger.Error("seed storage", "error", err)
		os.Exit(1)
	}

	router := server.NewRouter(storage, engine, logger)

	logger.Info("starting event server", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// seed stores one standalone event and one weekly series so the API has
// something to show.
func seed(storage *memory.Store, engine *recur.Engine) error {
	ctx := context.Background()

	standalone := recur.Event{
		ID:        "welcome",
		Date:      recur.Date(2024, time.June, 17),
		StartTime: "10:00",
		EndTime:   "11:00",
		Title:     "Welcome meeting",
		Location:  "Room 2",
		Rule:      recur.NoRepeat,
	}
	if err := storage.CreateEvents(ctx, []recur.Event{standalone}); err != nil {
		return err
	}

	weekly := recur.Event{
		ID:        "standup",
		Date:      recur.Date(2024, time.June, 17),
		StartTime: "09:00",
		EndTime:   "09:15",
		Title:     "Weekly standup",
		Category:  "work",
	}
	rule := recur.Rule{
		Kind:     recur.KindWeekly,
		Interval: 1,
		End:      recur.EndsAfter(12),
	}
	instances, err := engine.ExpandEvent(weekly, rule)
	if err != nil {
		return err
	}
	return storage.CreateEvents(ctx, instances)
}
