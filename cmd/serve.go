package cmd

import (
	"fmt"
	"log/slog"
	"net"
	"os/signal"
	"syscall"

	"github.com/honganh1206/datetime/cache"
	"github.com/honganh1206/datetime/history"
	"github.com/honganh1206/datetime/server"
	"github.com/spf13/cobra"
)

func ServeHandler(cmd *cobra.Command, args []string) error {
	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Addr
	}

	db, err := history.InitDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	ttl, err := cfg.TTL()
	if err != nil {
		return err
	}

	c, err := cache.Open(cfg.CachePath, ttl)
	if err != nil {
		// The API still works without a cache
		slog.Warn("cache unavailable", "path", cfg.CachePath, "err", err)
	} else {
		defer c.Close()
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = server.Serve(ctx, ln, server.NewModels(db, c))
	slog.Info("datetime exiting")
	return err
}
