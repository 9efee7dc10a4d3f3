package db

import (
	"context"
	"fmt"

	"gridboard/internal/stats"

	"github.com/google/uuid"
)

// IngestResult reports one batch insert of play rows.
type IngestResult struct {
	BatchID  string `json:"batch_id"`
	Inserted int    `json:"inserted"`
}

// IngestPlays inserts a batch of plays for one season inside a single
// transaction, tagged with a fresh batch ID so a bad feed can be traced
// and removed later.
func (d *DB) IngestPlays(ctx context.Context, season int, plays []stats.Play) (*IngestResult, error) {
	batchID := uuid.New().String()

	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO plays (ingest_batch, season, week, play_type, passer, rusher, receiver,
			pass_touchdown, interception, passing_yards,
			rush_touchdown, rushing_yards,
			touchdown, complete_pass, receiving_yards, fumble_lost)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`)
	if err != nil {
		return nil, fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range plays {
		playSeason := p.Season
		if playSeason == 0 {
			playSeason = season
		}
		if _, err := stmt.ExecContext(ctx, batchID, playSeason, p.Week, p.PlayType,
			p.Passer, p.Rusher, p.Receiver,
			p.PassTouchdown, p.Interception, p.PassingYards,
			p.RushTouchdown, p.RushingYards,
			p.Touchdown, p.CompletePass, p.ReceivingYards, p.FumbleLost); err != nil {
			return nil, fmt.Errorf("inserting play in batch: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing batch: %w", err)
	}
	return &IngestResult{BatchID: batchID, Inserted: len(plays)}, nil
}

// Plays returns the stored plays for a season, restricted to one week
// when week > 0, in insertion order. Implements provider.PlayProvider.
func (d *DB) Plays(ctx context.Context, season, week int) ([]stats.Play, error) {
	query := `
		SELECT season, week, play_type, passer, rusher, receiver,
			pass_touchdown, interception, passing_yards,
			rush_touchdown, rushing_yards,
			touchdown, complete_pass, receiving_yards, fumble_lost
		FROM plays
		WHERE season = $1 AND ($2 = 0 OR week = $2)
		ORDER BY id
	`
	rows, err := d.conn.QueryContext(ctx, query, season, week)
	if err != nil {
		return nil, fmt.Errorf("querying plays: %w", err)
	}
	defer rows.Close()

	var plays []stats.Play
	for rows.Next() {
		var p stats.Play
		if err := rows.Scan(&p.Season, &p.Week, &p.PlayType, &p.Passer, &p.Rusher, &p.Receiver,
			&p.PassTouchdown, &p.Interception, &p.PassingYards,
			&p.RushTouchdown, &p.RushingYards,
			&p.Touchdown, &p.CompletePass, &p.ReceivingYards, &p.FumbleLost); err != nil {
			return nil, fmt.Errorf("scanning play: %w", err)
		}
		plays = append(plays, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plays: %w", err)
	}
	return plays, nil
}

// Seasons lists the seasons with stored plays, oldest first. Implements
// provider.PlayProvider.
func (d *DB) Seasons(ctx context.Context) ([]int, error) {
	rows, err := d.conn.QueryContext(ctx, `SELECT DISTINCT season FROM plays ORDER BY season`)
	if err != nil {
		return nil, fmt.Errorf("querying seasons: %w", err)
	}
	defer rows.Close()

	var seasons []int
	for rows.Next() {
		var s int
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scanning season: %w", err)
		}
		seasons = append(seasons, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating seasons: %w", err)
	}
	return seasons, nil
}

// DeleteBatch removes every play from one ingest batch.
func (d *DB) DeleteBatch(ctx context.Context, batchID string) (int64, error) {
	res, err := d.conn.ExecContext(ctx, `DELETE FROM plays WHERE ingest_batch = $1`, batchID)
	if err != nil {
		return 0, fmt.Errorf("deleting batch: %w", err)
	}
	return res.RowsAffected()
}
