package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"shagun/internal/config"
	"shagun/internal/repository"
	"shagun/internal/seed"
)

func main() {
	var destroy bool

	root := &cobra.Command{
		Use:           "seeder",
		Short:         "Import or destroy sample catalog data",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if destroy {
				return runDestroy(cmd.Context())
			}
			return runImport(cmd.Context())
		},
	}
	root.Flags().BoolVarP(&destroy, "destroy", "d", false, "wipe orders, products and users instead of importing")

	root.AddCommand(&cobra.Command{
		Use:   "import",
		Short: "Replace all data with the seed admin and sample products",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context())
		},
	}, &cobra.Command{
		Use:   "destroy",
		Short: "Wipe orders, products and users",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDestroy(cmd.Context())
		},
	})

	if err := root.ExecuteContext(context.Background()); err != nil {
		slog.Error("seeder failed", "error", err)
		os.Exit(1)
	}
}

func openStores(ctx context.Context) (*repository.Stores, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL or MONGO_URI must be set")
	}
	return repository.Open(ctx, cfg.DatabaseURL, cfg.MongoDatabase)
}

func runImport(ctx context.Context) error {
	stores, err := openStores(ctx)
	if err != nil {
		return err
	}
	defer closeStores(ctx, stores)

	n, err := seed.Import(ctx, stores)
	if err != nil {
		return err
	}
	slog.Info("Data Imported!", "products", n, "backend", stores.Backend)
	return nil
}

func runDestroy(ctx context.Context) error {
	stores, err := openStores(ctx)
	if err != nil {
		return err
	}
	defer closeStores(ctx, stores)

	if err := seed.Destroy(ctx, stores); err != nil {
		return err
	}
	slog.Info("Data Destroyed!", "backend", stores.Backend)
	return nil
}

func closeStores(ctx context.Context, stores interface {
	Close(ctx context.Context) error
}) {
	if err := stores.Close(ctx); err != nil {
		slog.Error("database close error", "error", err)
	}
}
