package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"

	"mysql-adapter/internal/adapter"
	"mysql-adapter/internal/config"
	"mysql-adapter/internal/exporter"
	"mysql-adapter/internal/sqlclient"
	"mysql-adapter/internal/storage"
)

var version = "dev"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "mysql-adapter export %s\n\n", version)
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  export -query <sql> [-format csv|jsonl|xlsx|pdf] [-out <key>]\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables (Required):\n")
		fmt.Fprintf(os.Stderr, "  MYSQL_DSN    Database connection string (user:pass@tcp(host:3306)/db)\n")
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  export MYSQL_DSN=\"user:pass@tcp(localhost:3306)/db\"\n")
		fmt.Fprintf(os.Stderr, "  export -query \"SELECT id, name FROM users\" -format csv -out users.csv\n")
	}

	query := flag.String("query", "", "SQL query to execute")
	format := flag.String("format", "csv", "Output format: csv, jsonl, xlsx or pdf")
	out := flag.String("out", "export.csv", "Output key (filename) in the storage destination")
	showVersion := flag.Bool("version", false, "Show version")
	flag.Parse()

	if *showVersion {
		fmt.Printf("mysql-adapter export %s\n", version)
		os.Exit(0)
	}

	_ = godotenv.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *query == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), cfg.QueryTimeout)
	defer cancel()

	client, err := sqlclient.New(cfg.MySQLDSN, cfg.MaxDBConcurrency)
	if err != nil {
		slog.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	if err := client.Ping(ctx); err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	provider := newProvider(cfg)
	writer, done := provider.StreamToFile(ctx, *out)
	if writer == nil {
		slog.Error("Failed to open storage destination", "error", <-done)
		os.Exit(1)
	}

	encoder, err := newEncoder(*format, writer)
	if err != nil {
		slog.Error("Unknown format", "format", *format, "error", err)
		os.Exit(2)
	}

	marshaller := adapter.New(client)
	result, err := exporter.Export(ctx, marshaller, *query, encoder)
	if err != nil {
		slog.Error("Export failed", "error", err)
		os.Exit(1)
	}

	_ = encoder.Close()
	if err := writer.Close(); err != nil {
		slog.Error("Failed to finalize output", "error", err)
		os.Exit(1)
	}
	if err := <-done; err != nil {
		slog.Error("Storage write failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Export completed",
		"rows", result.RowsProcessed,
		"duration", result.Duration.String(),
		"url", provider.GetDownloadURL(*out))
}

func newEncoder(format string, w io.Writer) (exporter.RowEncoder, error) {
	switch format {
	case "csv":
		return exporter.NewCSVEncoder(w), nil
	case "jsonl":
		return exporter.NewJSONEncoder(w), nil
	case "xlsx":
		return exporter.NewExcelEncoder(w), nil
	case "pdf":
		return exporter.NewPDFEncoder(w), nil
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

func newProvider(cfg *config.Config) storage.Provider {
	if cfg.StorageType == "s3" {
		client := s3.New(s3.Options{
			Region:       cfg.AWSRegion,
			UsePathStyle: cfg.S3PathStyle,
			BaseEndpoint: endpointOrNil(cfg.S3Endpoint),
		})
		return storage.NewS3Provider(client, cfg.S3Bucket)
	}
	return storage.NewLocalProvider(cfg.LocalStoragePath)
}

func endpointOrNil(endpoint string) *string {
	if endpoint == "" {
		return nil
	}
	return aws.String(endpoint)
}
