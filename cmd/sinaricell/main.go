package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/sinaricell/storefront/internal/client/api"
	"github.com/sinaricell/storefront/internal/client/auth"
	"github.com/sinaricell/storefront/internal/client/catalog"
	"github.com/sinaricell/storefront/internal/client/cli"
	"github.com/sinaricell/storefront/internal/client/config"
	"github.com/sinaricell/storefront/internal/client/iocli"
	"github.com/sinaricell/storefront/internal/client/storage/boltdb"
	"github.com/sinaricell/storefront/internal/client/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, args, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.ShowVersion {
		printVersion()
		os.Exit(0)
	}

	// Получаем команду
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}
	command := args[0]

	ctx := context.Background()

	// Открываем локальную базу: credential, cooldown, email cache
	boltStorage, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	// Кеш каталога опционален: без него работают все команды кроме
	// 'products search -cached'
	var catalogCache *sqlite.Storage
	if cache, err := sqlite.New(ctx, cfg.CachePath); err != nil {
		slog.Warn("failed to open catalog cache, offline search disabled", "error", err)
	} else {
		catalogCache = cache
		defer func() {
			if err := catalogCache.Close(); err != nil {
				slog.Error("failed to close catalog cache", "error", err)
			}
		}()
	}

	apiClient := api.NewClient(cfg.ServerURL, boltStorage)
	authService := auth.NewService(apiClient, boltStorage)
	guard := auth.NewGuard(boltStorage)

	var catalogService *catalog.Service
	if catalogCache != nil {
		catalogService = catalog.NewService(apiClient, catalogCache)
	} else {
		catalogService = catalog.NewService(apiClient, nil)
	}

	app := cli.New(iocli.NewStdio(), apiClient, authService, catalogService, guard, boltStorage, boltStorage)

	if err := app.Run(ctx, command, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("Sinari Cell Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
