package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/terabiome/gns3facts/internal/adapter"
	"github.com/terabiome/gns3facts/internal/ansible"
	"github.com/terabiome/gns3facts/internal/api"
	"github.com/terabiome/gns3facts/internal/config"
	"github.com/terabiome/gns3facts/internal/handler"
	"github.com/terabiome/gns3facts/internal/inventory"
	"github.com/terabiome/gns3facts/internal/routes"
	"github.com/terabiome/gns3facts/pkg/gns3"
	"github.com/terabiome/gns3facts/pkg/logger"
	"github.com/terabiome/gns3facts/pkg/telemetry"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	log.Debug("gns3facts starting",
		slog.String("log_level", cfg.LogLevel),
		slog.String("log_format", cfg.LogFormat),
		slog.Bool("telemetry_enabled", cfg.TelemetryEnabled),
	)

	if cfg.TelemetryEnabled {
		tel, err := telemetry.Initialize("gns3facts", os.Stderr)
		if err != nil {
			log.Error("failed to initialize telemetry", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			log.Debug("shutting down telemetry")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := tel.Shutdown(shutdownCtx); err != nil {
				log.Error("failed to shutdown telemetry", slog.String("error", err.Error()))
			}
		}()
		log.Debug("telemetry initialized")
	}

	go func() {
		sig := <-sigChan
		log.Info("received shutdown signal", slog.String("signal", sig.String()))
		cancel()
	}()

	connect := inventory.Connect(gns3.WithTimeout(cfg.RequestTimeout))

	serverFlags := []cli.Flag{
		&cli.StringFlag{
			Name:     "url",
			Usage:    "URL target of the GNS3 server",
			EnvVars:  []string{"GNS3_URL"},
			Required: true,
		},
		&cli.IntFlag{
			Name:  "port",
			Usage: "TCP port to connect to server REST API",
			Value: inventory.DefaultPort,
		},
		&cli.StringFlag{
			Name:    "user",
			Usage:   "User to connect to GNS3 server",
			EnvVars: []string{"GNS3_USER"},
		},
		&cli.StringFlag{
			Name:    "password",
			Usage:   "Password to connect to GNS3 server",
			EnvVars: []string{"GNS3_PASSWORD"},
		},
	}

	app := &cli.App{
		Name:                 "gns3facts",
		Usage:                "Retrieve node inventory facts from GNS3 projects",
		ArgsUsage:            "[module-args-file]",
		EnableBashCompletion: true,
		// Ansible runs binary modules as "<binary> <args-file>".
		Action: func(cliCtx *cli.Context) error {
			if cliCtx.Args().Len() == 0 {
				return cli.ShowAppHelp(cliCtx)
			}
			return runModule(ctx, cfg, log, connect, cliCtx.Args().First())
		},
		Commands: []*cli.Command{
			{
				Name:  "inventory",
				Usage: "Retrieve the nodes inventory of a project",
				Flags: append(serverFlags,
					&cli.StringFlag{
						Name:  "project-name",
						Usage: "Project name",
					},
					&cli.StringFlag{
						Name:  "project-id",
						Usage: "Project ID",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format (json, yaml, ini)",
						Value:   cfg.OutputFormat,
					},
					&cli.StringFlag{
						Name:  "layout",
						Usage: "Placement of node facts in the result (nested, legacy)",
						Value: cfg.Layout,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the result to a file instead of stdout",
					},
				),
				Action: func(cliCtx *cli.Context) error {
					req := api.InventoryRequest{
						URL:         cliCtx.String("url"),
						Port:        cliCtx.Int("port"),
						User:        cliCtx.String("user"),
						Password:    cliCtx.String("password"),
						ProjectName: cliCtx.String("project-name"),
						ProjectID:   cliCtx.String("project-id"),
						Layout:      api.Layout(cliCtx.String("layout")),
					}
					if err := adapter.ValidateInventoryRequest(req); err != nil {
						return err
					}

					// Adapt CLI contract to fetcher params
					conn, selector := adapter.AdaptInventoryRequest(req)

					fetcher := inventory.NewFetcher(connect, log)
					result, err := fetcher.Fetch(ctx, conn, selector)
					if err != nil {
						return fmt.Errorf("unable to retrieve nodes inventory: %w", err)
					}

					output, err := renderInventory(cfg, cliCtx.String("format"), req.Layout, adapter.AdaptResultToAPI(result))
					if err != nil {
						return err
					}
					return writeOutput(cliCtx.String("output"), output)
				},
			},
			{
				Name:  "version",
				Usage: "Show the GNS3 server version",
				Flags: serverFlags,
				Action: func(cliCtx *cli.Context) error {
					conn := inventory.ConnectionParameters{
						URL:      cliCtx.String("url"),
						Port:     cliCtx.Int("port"),
						User:     cliCtx.String("user"),
						Password: cliCtx.String("password"),
					}
					connector := connect(conn.ServerURL(), conn.User, conn.Password)

					version, err := connector.ServerVersion(ctx)
					if err != nil {
						return fmt.Errorf("unable to query server version: %w", err)
					}

					fmt.Printf("%s %s (local: %t)\n", connector.BaseURL(), version.Version, version.Local)
					return nil
				},
			},
			{
				Name:      "module",
				Usage:     "Run as an Ansible module with the given arguments file",
				ArgsUsage: "<module-args-file>",
				Action: func(cliCtx *cli.Context) error {
					filepath := cliCtx.Args().First()
					if filepath == "" {
						return errors.New("empty file path to module arguments")
					}
					return runModule(ctx, cfg, log, connect, filepath)
				},
			},
			{
				Name:  "server",
				Usage: "Start HTTP API server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "address",
						Aliases: []string{"a"},
						Usage:   "Server address",
						Value:   ":8080",
					},
				},
				Action: func(cliCtx *cli.Context) error {
					return runServer(ctx, cfg, log, connect, cliCtx.String("address"))
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func writeOutput(path string, output []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(output)
		return err
	}
	if err := os.WriteFile(path, output, 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}

// runModule executes the Ansible module protocol and exits with its status.
func runModule(ctx context.Context, cfg *config.Config, log *slog.Logger, connect inventory.ConnectFunc, filepath string) error {
	f, err := os.Open(filepath)
	if err != nil {
		return err
	}
	defer f.Close()

	runner := ansible.NewRunner(inventory.NewFetcher(connect, log), api.Layout(cfg.Layout), log)
	if code := runner.Run(ctx, f, os.Stdout); code != 0 {
		return cli.Exit("", code)
	}
	return nil
}

// runServer starts the HTTP API server
func runServer(ctx context.Context, cfg *config.Config, log *slog.Logger, connect inventory.ConnectFunc, address string) error {
	log.Info("initializing HTTP server", slog.String("address", address))

	inventoryHandler := handler.NewInventory(
		inventory.NewFetcher(connect, log),
		connect,
		api.Layout(cfg.Layout),
		log,
	)

	router := routes.SetupMux(inventoryHandler, log)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", slog.String("address", address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case err := <-serverErrChan:
		return err
	case <-ctx.Done():
		log.Info("shutting down HTTP server")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		log.Info("HTTP server stopped")
		return nil
	}
}
