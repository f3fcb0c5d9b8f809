// Package main implements the examaid terminal study assistant: an AI tutor
// chat, quiz and flashcard generation, and study planning.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	configFile := flag.String("config", "", "path to a config file (default ./config.yaml when present)")
	envFile := flag.String("env", "", "path to a .env file (default ./.env when present)")
	flag.Parse()

	if err := run(*configFile, *envFile); err != nil {
		fmt.Fprintf(os.Stderr, "examaid: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile, envFile string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, configFile, envFile)
	if err != nil {
		return err
	}
	defer app.cleanup()

	return app.run(ctx, os.Stdin, os.Stdout)
}
