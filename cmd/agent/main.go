package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"

	"mysql-adapter/internal/adapter"
	"mysql-adapter/internal/classify"
	"mysql-adapter/internal/config"
	"mysql-adapter/internal/dberr"
	"mysql-adapter/internal/sqlclient"
)

var version = "dev"

// JobCommand is a query request pushed by the control plane.
type JobCommand struct {
	ID string `json:"id"`
	// Kind selects the execution path: "query" marshals an envelope,
	// "mutation" reports the affected row count.
	Kind  string `json:"kind"`
	Query string `json:"query"`
}

// JobResult is the reply for one job. Exactly one of Envelope,
// RowsAffected or Error is meaningful, selected by Status.
type JobResult struct {
	ID       string `json:"id"`
	StreamID string `json:"streamId"`
	Status   string `json:"status"` // "ok", "unsupported_type", "database_error", "error"

	Envelope     *adapter.ResultEnvelope `json:"envelope,omitempty"`
	RowsAffected uint64                  `json:"rowsAffected,omitempty"`

	ErrorType    string `json:"errorType,omitempty"`
	ErrorCode    uint16 `json:"errorCode,omitempty"`
	ErrorState   string `json:"errorState,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "mysql-adapter agent %s\n\n", version)
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  agent [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables (Required):\n")
		fmt.Fprintf(os.Stderr, "  AGENT_KEY    Your unique agent key (sk_live_...)\n")
		fmt.Fprintf(os.Stderr, "  REACTOR_URL  WebSocket URL (e.g., wss://api.example.com)\n")
		fmt.Fprintf(os.Stderr, "  MYSQL_DSN    Database connection string (user:pass@tcp(host:3306)/db)\n")
	}

	showVersion := flag.Bool("version", false, "Show version")
	flag.Parse()

	if *showVersion {
		fmt.Printf("mysql-adapter agent %s\n", version)
		os.Exit(0)
	}

	_ = godotenv.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()
	if cfg.MySQLDSN == "" || cfg.ReactorURL == "" {
		slog.Error("Missing configuration (MYSQL_DSN, REACTOR_URL)")
		os.Exit(1)
	}

	slog.Info("Starting adapter agent", "reactor", cfg.ReactorURL)

	client, err := sqlclient.New(cfg.MySQLDSN, cfg.MaxDBConcurrency)
	if err != nil {
		slog.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	if err := client.Ping(context.Background()); err != nil {
		slog.Error("Failed to connect to local DB", "error", err)
		os.Exit(1)
	}
	slog.Info("Connected to local DB (MySQL)")

	marshaller := adapter.New(client)

	controlURL := cfg.ReactorURL + "/agent/control"
	headers := make(map[string][]string)
	headers["X-Agent-Key"] = []string{cfg.AgentKey}

	conn, _, err := websocket.DefaultDialer.Dial(controlURL, headers)
	if err != nil {
		slog.Error("Failed to connect to control plane", "error", err)
		os.Exit(1) // In prod, rely on restart policy or retry loop
	}
	defer conn.Close()
	slog.Info("Connected to control plane")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	go func() {
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				slog.Error("Read error", "error", err)
				return
			}

			var job JobCommand
			if err := json.Unmarshal(message, &job); err != nil {
				slog.Error("Invalid command", "error", err)
				continue
			}

			slog.Info("Received job", "id", job.ID, "kind", job.Kind)
			go executeJob(marshaller, cfg, job)
		}
	}()

	<-interrupt
	slog.Info("Agent shutting down...")
}

func executeJob(m *adapter.Marshaller, cfg *config.Config, job JobCommand) {
	streamID := uuid.NewString()
	ctx, cancel := context.WithTimeout(context.Background(), cfg.QueryTimeout)
	defer cancel()

	result := runJob(ctx, m, job)
	result.StreamID = streamID

	dataURL := cfg.ReactorURL + "/agent/data?job_id=" + job.ID
	headers := make(map[string][]string)
	headers["X-Agent-Key"] = []string{cfg.AgentKey}

	conn, _, err := websocket.DefaultDialer.Dial(dataURL, headers)
	if err != nil {
		slog.Error("Failed to connect to data stream", "id", job.ID, "error", err)
		return
	}
	defer conn.Close()

	if err := conn.WriteJSON(result); err != nil {
		slog.Error("Failed to send result", "id", job.ID, "error", err)
		return
	}
	slog.Info("Job completed", "id", job.ID, "stream", streamID, "status", result.Status)
}

// runJob executes one command and folds the error taxonomy into the
// reply: unsupported column metadata and server errors get distinct
// statuses so the control plane can tell schema problems from faults.
func runJob(ctx context.Context, m *adapter.Marshaller, job JobCommand) JobResult {
	result := JobResult{ID: job.ID, Status: "ok"}

	var err error
	if job.Kind == "mutation" {
		result.RowsAffected, err = m.ExecuteMutation(ctx, job.Query, nil)
	} else {
		result.Envelope, err = m.ExecuteQuery(ctx, job.Query, nil)
	}
	if err == nil {
		return result
	}

	var unsupported *classify.UnsupportedTypeError
	var dbErr *dberr.DatabaseError
	switch {
	case errors.As(err, &unsupported):
		result.Status = "unsupported_type"
		result.ErrorType = unsupported.TypeName
		result.ErrorMessage = unsupported.Error()
	case errors.As(err, &dbErr):
		result.Status = "database_error"
		result.ErrorCode = dbErr.Code
		result.ErrorState = dbErr.State
		result.ErrorMessage = dbErr.Message
	default:
		result.Status = "error"
		result.ErrorMessage = err.Error()
	}
	result.Envelope = nil
	return result
}
