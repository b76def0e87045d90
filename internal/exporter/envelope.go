package exporter

import (
	"context"
	"fmt"
	"time"

	"mysql-adapter/internal/adapter"
)

// ExportResult contains stats about the export.
type ExportResult struct {
	RowsProcessed int64
	Duration      time.Duration
}

// Stream writes one result envelope through an encoder: header first,
// then every row in order. The envelope is already fully typed, so no
// per-cell guessing happens here.
func Stream(env *adapter.ResultEnvelope, encoder RowEncoder) (*ExportResult, error) {
	start := time.Now()

	if err := encoder.WriteHeader(env.Columns, env.Types); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	var rowCount int64
	for _, row := range env.Rows {
		if err := encoder.WriteRow(row); err != nil {
			return nil, fmt.Errorf("row write failed: %w", err)
		}
		rowCount++
	}

	if err := encoder.Flush(); err != nil {
		return nil, fmt.Errorf("flush failed: %w", err)
	}
	if err := encoder.Error(); err != nil {
		return nil, fmt.Errorf("encoder error: %w", err)
	}

	return &ExportResult{
		RowsProcessed: rowCount,
		Duration:      time.Since(start),
	}, nil
}

// Export runs one query through the marshaller and streams the envelope
// to the encoder.
func Export(ctx context.Context, m *adapter.Marshaller, query string, encoder RowEncoder) (*ExportResult, error) {
	env, err := m.ExecuteQuery(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("query execution failed: %w", err)
	}
	return Stream(env, encoder)
}
