package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// CurrentSnapshotVersion is the schema version written by this build.
const CurrentSnapshotVersion = 2

// Snapshot is one stored session state row.
type Snapshot struct {
	ID        int64
	Timestamp time.Time
	Data      SnapshotData
}

// AttemptData is one history entry inside a snapshot.
type AttemptData struct {
	ItemID    string `json:"item_id"`
	Correct   bool   `json:"correct"`
	LatencyMs int64  `json:"latency_ms"`
	HintsUsed int    `json:"hints_used"`
	Retries   int    `json:"retries"`
}

// legacyAttempt is the version 1 history entry shape.
type legacyAttempt struct {
	ItemID    string `json:"item"`
	Correct   bool   `json:"ok"`
	LatencyMs int64  `json:"ms"`
}

// SnapshotData is the serialized session state. Version 1 snapshots used
// shorter field names and lacked hint and retry tracking; MigrateSnapshot
// upgrades them in memory without touching the stored row.
type SnapshotData struct {
	SchemaVersion    int           `json:"schema_version"`
	SessionID        string        `json:"session_id,omitempty"`
	Started          bool          `json:"started"`
	Completed        bool          `json:"done"`
	CurrentItemIndex int           `json:"item_index"`
	SeenCounts       []int         `json:"seen"`
	IncorrectSet     []int         `json:"missed"`
	Recent           []int         `json:"recent,omitempty"`
	History          []AttemptData `json:"history,omitempty"`

	// Version 1 only.
	LegacyAttempts []legacyAttempt `json:"attempts,omitempty"`
}

// MigrateSnapshot upgrades data to the current schema version. It is pure
// and idempotent: current-version input passes through unchanged. The
// second return value is false when the version is unknown and the
// snapshot cannot be used.
func MigrateSnapshot(data SnapshotData) (SnapshotData, bool) {
	switch data.SchemaVersion {
	case CurrentSnapshotVersion:
		return data, true
	case 1:
		out := data
		out.SchemaVersion = CurrentSnapshotVersion
		out.LegacyAttempts = nil
		for _, a := range data.LegacyAttempts {
			out.History = append(out.History, AttemptData{
				ItemID:    a.ItemID,
				Correct:   a.Correct,
				LatencyMs: a.LatencyMs,
			})
		}
		return out, true
	default:
		return SnapshotData{}, false
	}
}

type snapshotRepo struct {
	db *sql.DB
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	raw, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO snapshots (timestamp, data) VALUES (?, ?)`,
		now(), string(raw),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("snapshot id: %w", err)
	}
	snap.ID = id

	// Keep only the latest row; snapshots are not a history.
	_, err = r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id != ?`, id)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	var (
		snap Snapshot
		ts   string
		raw  string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, timestamp, data FROM snapshots ORDER BY id DESC LIMIT 1`,
	).Scan(&snap.ID, &ts, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	if err := json.Unmarshal([]byte(raw), &snap.Data); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	snap.Timestamp = parseTime(ts)
	return &snap, nil
}

func (r *snapshotRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM snapshots`); err != nil {
		return fmt.Errorf("clear snapshots: %w", err)
	}
	return nil
}
