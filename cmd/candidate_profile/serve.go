package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jonathan/candidate-profile/internal/ingestion"
	"github.com/jonathan/candidate-profile/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort       int
	serveIngestMode string
	serveChromePath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start an HTTP server that serves the upload, form, preview and export workflow and its JSON API.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveIngestMode, "ingest-mode", "", "Ingestion mode: fixture or generative")
	serveCmd.Flags().StringVar(&serveChromePath, "chrome-path", "", "Path to the Chrome executable used for PDF export")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(configPath, os.Getenv)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if serveIngestMode != "" {
		cfg.IngestMode = serveIngestMode
	}
	if serveChromePath != "" {
		cfg.ChromePath = serveChromePath
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ingester, err := ingestion.NewIngester(ingestion.Mode(cfg.IngestMode), cfg.Delay())
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:        cfg.Port,
		CORSOrigins: cfg.CORSOrigins,
		SessionTTL:  cfg.SessionTTL.Std(),
	}, server.Deps{
		Ingester: ingester,
		PDF:      newPDFRenderer(cfg),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	log.Printf("Ingest mode: %s (delay %s)", cfg.IngestMode, cfg.Delay())
	return srv.Start(context.Background())
}
