package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gammazero/workerpool"

	"github.com/opcuakit/uacodec/utils"
)

func main() {
	logger := utils.NewLogger()
	defer logger.Sync()

	cfg := utils.NewConfig(logger)

	conv, err := newConverter(cfg)
	if err != nil {
		logger.Fatal(utils.Colorize("Bad configuration : ", utils.Magenta), err)
	}

	entries, err := os.ReadDir(cfg.InputDir)
	if err != nil {
		logger.Fatalf("reading input dir %s : %s", cfg.InputDir, err)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		logger.Fatalf("creating output dir %s : %s", cfg.OutputDir, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infof("converting %s -> %s (%d workers)", conv.in, conv.out, cfg.Workers)

	wp := workerpool.New(cfg.Workers)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		src := filepath.Join(cfg.InputDir, entry.Name())
		wp.Submit(func() {
			if ctx.Err() != nil {
				return
			}
			dst, err := conv.convertFile(src, cfg.OutputDir)
			if err != nil {
				logger.Errorf("%s", err)
				return
			}
			logger.Infof("wrote %s", dst)
		})
	}
	wp.StopWait()

	if ctx.Err() != nil {
		logger.Warn(utils.Colorize("Signal caught : Exiting...", utils.Magenta))
	}
}
