package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"arena-lobby/server/internal/app"
)

func main() {
	var cfg app.Config
	flag.StringVar(&cfg.TCPAddr, "tcp", ":9000", "tcp listen address")
	flag.StringVar(&cfg.HTTPAddr, "http", ":8080", "http/websocket listen address")
	flag.StringVar(&cfg.LogFile, "log", "arena-lobby.log", "log file path (empty disables file logging)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg); err != nil {
		log.Fatalf("%v", err)
	}
}
