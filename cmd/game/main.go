package main

import (
	"bufio"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/tomz197/barco/internal/config"
	"github.com/tomz197/barco/internal/logging"
	"github.com/tomz197/barco/internal/loop/client"
	"github.com/tomz197/barco/internal/loop/server"
)

func main() {
	// stdout is the game screen, so logs only go to a file when asked for
	logger := logging.Nop()
	if path := config.GetEnv("BARCO_LOG_FILE", ""); path != "" {
		l, err := logging.New(logging.Options{
			Level:       config.GetEnv("BARCO_LOG_LEVEL", "info"),
			OutputPaths: []string{path},
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
			os.Exit(1)
		}
		logger = l
	}
	defer func() { _ = logger.Sync() }()

	tuning, err := config.LoadTuningFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load tuning: %v\n", err)
		os.Exit(1)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	// A local hub keeps the scoreboard for this process only
	hub := server.NewServer(logger)
	c := client.NewClient(hub, bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Username: config.GetEnv("USER", ""),
		Game:     &tuning,
		Logger:   logger,
	})
	if err := c.Run(); err != nil {
		logger.Error("game error", zap.Error(err))
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
