package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/geoshelf/geoshelf/internal/model"
)

// OrganizationRun is one recorded execution of an organization plan.
type OrganizationRun struct {
	ExecutedAt  time.Time `json:"executed_at"`
	ID          string    `json:"id"`
	Template    string    `json:"template"`
	Destination string    `json:"destination"`
	Message     string    `json:"message"`
	Successful  int       `json:"successful"`
	Failed      int       `json:"failed"`
	DryRun      bool      `json:"dry_run"`
}

// RecordRun persists the outcome of an organization execution.
func (s *SQLiteCatalog) RecordRun(ctx context.Context, result *model.OrganizationResult, dryRun bool) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if result == nil {
		return "", fmt.Errorf("%w: result", ErrNilParameter)
	}

	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO organization_runs (id, template, destination, dry_run, successful, failed, message, executed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, result.Plan.Template.Name, result.Plan.DestinationRoot, dryRun,
		result.Successful, result.Failed, result.Message, result.Timestamp.UTC())
	if err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}
	return id, nil
}

// ListRuns returns recorded runs, newest first.
func (s *SQLiteCatalog) ListRuns(ctx context.Context, limit int) ([]OrganizationRun, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, template, destination, dry_run, successful, failed, COALESCE(message, ''), executed_at
		FROM organization_runs
		ORDER BY executed_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []OrganizationRun
	for rows.Next() {
		var run OrganizationRun
		if err := rows.Scan(
			&run.ID, &run.Template, &run.Destination, &run.DryRun,
			&run.Successful, &run.Failed, &run.Message, &run.ExecutedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}
	return runs, nil
}
