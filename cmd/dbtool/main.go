package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"pdf-chatbot-api/internal/config"
	"pdf-chatbot-api/internal/repository"
	"pdf-chatbot-api/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var timeout time.Duration

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	rootCmd := &cobra.Command{
		Use:          "dbtool",
		Short:        "Maintenance commands for the PDF chatbot document store",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "overall command timeout")

	rootCmd.AddCommand(initCmd(), checkCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the collections and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(ctx context.Context, client *repository.MongoClient) error {
				if err := client.EnsureCollections(ctx); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Database %q initialized with collections: %v\n",
					client.Database().Name(), repository.Collections)
				return nil
			})
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "List databases and document counts per collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(ctx context.Context, client *repository.MongoClient) error {
				out := cmd.OutOrStdout()

				names, err := client.DatabaseNames(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Databases: %v\n", names)

				stats, err := client.Stats(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Collections in %q:\n", client.Database().Name())
				for _, s := range stats {
					fmt.Fprintf(out, "  %-16s %d\n", s.Name, s.Count)
				}
				return nil
			})
		},
	}
}

func withClient(parent context.Context, fn func(ctx context.Context, client *repository.MongoClient) error) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	cfg, err := config.NewStoreConfig()
	if err != nil {
		return err
	}
	appLogger := logger.NewLoggerWithFormat(cfg.GetLogLevel(), "console", os.Stderr)

	client := repository.NewMongoClient(cfg, appLogger)
	if err := client.Initialize(ctx); err != nil {
		return err
	}
	defer client.Close(context.Background())

	return fn(ctx, client)
}
