// Command leaderboard queries the Diabotical leaderboard API and prints the
// result as JSON: the top entries of a mode, one entry by user id, or the
// number of entries from a country.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/openmohaa/diabotical-leaderboard/internal/cache"
	"github.com/openmohaa/diabotical-leaderboard/internal/client"
	"github.com/openmohaa/diabotical-leaderboard/internal/cliparse"
	"github.com/openmohaa/diabotical-leaderboard/internal/config"
	"github.com/openmohaa/diabotical-leaderboard/internal/logic"
	"github.com/openmohaa/diabotical-leaderboard/internal/metrics"
	"github.com/openmohaa/diabotical-leaderboard/internal/render"
)

// Exit codes
const (
	exitOK       = 0
	exitFailure  = 1
	exitArgument = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	req, err := cliparse.Parse(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitArgument
	}

	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(stdout, "error: %v\n", err)
		return exitFailure
	}

	logger, err := newLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintf(stdout, "error: %v\n", err)
		return exitFailure
	}
	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID))
	defer logger.Sync()
	log := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	defer func() {
		if cfg.MetricsTextfile == "" {
			return
		}
		if err := m.WriteTextfile(cfg.MetricsTextfile); err != nil {
			log.Warnw("Failed to write metrics textfile", "path", cfg.MetricsTextfile, "error", err)
		}
	}()

	var store cache.Store
	if cfg.RedisURL != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.Warnw("Page cache disabled", "error", err)
		} else {
			defer rdb.Close()
			store = cache.NewRedisStore(rdb)
		}
	}

	c := client.New(client.Config{
		BaseURL:     cfg.LeaderboardURL,
		Timeout:     cfg.RequestTimeout,
		PageDelay:   cfg.PageDelay,
		ExactPaging: cfg.ExactPaging,
		RunID:       runID,
		Cache:       store,
		CacheTTL:    cfg.CacheTTL,
		Metrics:     m,
		Logger:      logger,
	})

	log.Debugw("Running query", "mode", req.Mode(), "count", req.Count(), "filter", fmt.Sprintf("%T", req.Filter()))

	entries, err := c.Fetch(ctx, req.Mode(), req.Count())
	if err != nil {
		fmt.Fprintf(stdout, "error: %v\n", err)
		return exitFailure
	}

	out, err := render.Encode(logic.Apply(entries, req.Filter()))
	if err != nil {
		fmt.Fprintf(stdout, "error: %v\n", err)
		return exitFailure
	}
	fmt.Fprintf(stdout, "%s\n", out)
	return exitOK
}

// newLogger writes JSON logs to w, or console logs in development.
func newLogger(cfg *config.Config, w io.Writer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}

	var encoder zapcore.Encoder
	if cfg.IsDevelopment() {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	} else {
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core), nil
}
