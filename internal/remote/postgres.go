// Package remote talks to the call-state backend: the active_calls
// intake table that the client-facing flow writes and this service
// updates before committing any local call transition.
package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mglaser/bankdesk/internal/types"
	"github.com/rs/zerolog"
)

// PostgresBackend implements the call-state backend on Postgres
type PostgresBackend struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgres connects a PostgresBackend and verifies the connection
func NewPostgres(ctx context.Context, databaseURL string, logger zerolog.Logger) (*PostgresBackend, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping failed: %w", err)
	}

	logger.Info().Msg("remote call-state backend connected")
	return &PostgresBackend{pool: pool, logger: logger}, nil
}

// buildCallUpdate renders the partial UPDATE for a patch; only non-zero
// patch fields are written.
func buildCallUpdate(id string, patch types.CallPatch) (string, []interface{}) {
	query := "UPDATE active_calls SET status = $1"
	args := []interface{}{string(patch.Status)}

	if patch.AgentID != "" {
		args = append(args, patch.AgentID)
		query += fmt.Sprintf(", agent_id = $%d", len(args))
	}
	if patch.Duration != nil {
		args = append(args, *patch.Duration)
		query += fmt.Sprintf(", duration = $%d", len(args))
	}
	if patch.EndedAt != nil {
		args = append(args, *patch.EndedAt)
		query += fmt.Sprintf(", ended_at = $%d", len(args))
	}

	args = append(args, id)
	query += fmt.Sprintf(" WHERE id = $%d", len(args))
	return query, args
}

// UpdateCall applies a state patch to the active_calls row with the
// given id.
func (b *PostgresBackend) UpdateCall(ctx context.Context, id string, patch types.CallPatch) error {
	query, args := buildCallUpdate(id, patch)

	tag, err := b.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update call %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		// Scheduler-generated calls have no intake row; that is not an
		// error, the row simply never existed remotely.
		b.logger.Debug().Str("call_id", id).Msg("remote update matched no row")
	}
	return nil
}

// InsertCall creates an intake row, the path the client intake form uses
func (b *PostgresBackend) InsertCall(ctx context.Context, req types.CallRequest) error {
	_, err := b.pool.Exec(ctx,
		`INSERT INTO active_calls (id, customer_phone, customer_name, issue_type, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		req.ID, req.CustomerPhone, req.CustomerName, req.IssueType, string(req.Status), req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert call request %s: %w", req.ID, err)
	}
	return nil
}

// Close releases the connection pool
func (b *PostgresBackend) Close() {
	b.pool.Close()
}
