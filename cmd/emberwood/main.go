// Package main provides the interactive encounter game CLI.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/thornvale/emberwood/internal/platform/config"

	emberwoodcmd "github.com/thornvale/emberwood/internal/cmd/emberwood"
)

func main() {
	cfg, err := emberwoodcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	log.SetPrefix("[EMBERWOOD] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := emberwoodcmd.Run(ctx, cfg); err != nil {
		config.Exitf("Error: %v", err)
	}
}
