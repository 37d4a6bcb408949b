package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/typestrike/internal/api"
	"github.com/vovakirdan/typestrike/internal/platform/tui"
	"github.com/vovakirdan/typestrike/internal/report"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the TypeStrike SSH server and stats API",
	Long: `Start an SSH server that lets users connect and play, plus an optional
read-only HTTP API exposing the stats of the server's profile.

Each SSH connection gets its own game. Sessions and achievements are stored
per-server (all users share one profile). Sound is not played remotely.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.typestrike/host_key

Examples:
  typestrike serve                           # SSH on :23234, API on :8080
  typestrike serve --ssh :2222 --http ""     # SSH only, on port 2222
  typestrike serve --host-key ./my_host_key  # Use specific host key
  typestrike serve --db ./typestrike.db      # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address, empty disables (default from config)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP API address, empty disables (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	srvCfg := cfg.Server
	if cmd.Flags().Changed("ssh") {
		srvCfg.SSHAddress = flagSSHAddr
	}
	if cmd.Flags().Changed("http") {
		srvCfg.HTTPAddress = flagHTTPAddr
	}
	if flagHostKey != "" {
		srvCfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		srvCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}
	if srvCfg.SSHAddress == "" && srvCfg.HTTPAddress == "" {
		return errors.New("nothing to serve: both --ssh and --http are empty")
	}

	logger, err := newLogger(os.Stderr, "typestrike")
	if err != nil {
		return err
	}

	prof, err := openProfile(cfg)
	if err != nil {
		return fmt.Errorf("error opening sessions database: %w", err)
	}
	defer prof.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var servers []func(context.Context) error

	if srvCfg.SSHAddress != "" {
		sshCfg := tui.DefaultSSHServerConfig()
		sshCfg.Address = srvCfg.SSHAddress
		sshCfg.HostKeyPath = srvCfg.HostKeyPath
		if srvCfg.IdleTimeout > 0 {
			sshCfg.IdleTimeout = srvCfg.IdleTimeout
		}
		sshCfg.Game = gameOptions(cfg, nil)
		sshCfg.Runtime = runtimeConfig(cfg, 0, 0)
		sshCfg.ReportTimeout = report.DefaultTimeout

		sshServer, sshErr := tui.NewSSHServer(sshCfg, prof.services(newCoach(cfg, logger)), logger.WithPrefix("ssh"))
		if sshErr != nil {
			return sshErr
		}
		servers = append(servers, sshServer.ListenAndServe)
		fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(srvCfg.SSHAddress))
	}

	if srvCfg.HTTPAddress != "" {
		handler := api.NewHandler(api.HandlerDeps{
			Stats:        prof.store,
			Achievements: prof.achievements,
			Logger:       logger.WithPrefix("api"),
		})
		httpServer := api.NewServer(srvCfg.HTTPAddress, api.NewRouter(handler, srvCfg.CORSOrigins), logger.WithPrefix("api"))
		servers = append(servers, httpServer.ListenAndServe)
	}

	fmt.Println("Press Ctrl+C to stop")

	// The first server to fail stops the others.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	errCh := make(chan error, len(servers))
	for _, serve := range servers {
		go func(serve func(context.Context) error) {
			err := serve(ctx)
			if err != nil {
				cancel()
			}
			errCh <- err
		}(serve)
	}

	var errs []error
	for range servers {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
