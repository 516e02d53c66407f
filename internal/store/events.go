package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"
)

// eventRepo implements EventRepo over the raw SQLite tables.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO session_events
			(sequence, timestamp, session_id, action, final_streak, final_avg_latency_ms, final_hints, total_items)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, now(), data.SessionID, data.Action,
		data.FinalStreak, data.FinalAvgLatencyMs, data.FinalHints, data.TotalItems,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendHintEvent(ctx context.Context, data HintEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO hint_events (sequence, timestamp, session_id, item_id, hint_index, hint_text)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		seqNum, now(), data.SessionID, data.ItemID, data.HintIndex, data.HintText,
	)
	if err != nil {
		return fmt.Errorf("save hint event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAttemptEvent(ctx context.Context, data AttemptEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO attempt_events
			(sequence, timestamp, session_id, item_id, objective_id, mechanic,
			 correct, latency_ms, hints_used, misconception_id, retries, response)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, now(), data.SessionID, data.ItemID, data.ObjectiveID, data.Mechanic,
		boolToInt(data.Correct), data.LatencyMs, data.HintsUsed,
		data.MisconceptionID, data.Retries, data.Response,
	)
	if err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendCoachEvent(ctx context.Context, data CoachEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO coach_events
			(sequence, timestamp, provider, model, purpose,
			 input_tokens, output_tokens, latency_ms, success, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, now(), data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs,
		boolToInt(data.Success), data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("save coach event: %w", err)
	}
	return nil
}

// Events merges all event tables into one sequence-ordered slice.
func (r *eventRepo) Events(ctx context.Context) ([]Event, error) {
	var out []Event

	rows, err := r.db.QueryContext(ctx,
		`SELECT sequence, timestamp, session_id, action,
		        final_streak, final_avg_latency_ms, final_hints, total_items
		 FROM session_events`)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	for rows.Next() {
		var e Event
		var ts string
		e.Type = "session"
		if err := rows.Scan(&e.Sequence, &ts, &e.SessionID, &e.Action,
			&e.FinalStreak, &e.FinalAvgLatencyMs, &e.FinalHints, &e.TotalItems); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		e.Timestamp = parseTime(ts)
		out = append(out, e)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = r.db.QueryContext(ctx,
		`SELECT sequence, timestamp, session_id, item_id, hint_index, hint_text FROM hint_events`)
	if err != nil {
		return nil, fmt.Errorf("query hint events: %w", err)
	}
	for rows.Next() {
		var e Event
		var ts string
		e.Type = "hint"
		if err := rows.Scan(&e.Sequence, &ts, &e.SessionID, &e.ItemID, &e.HintIndex, &e.HintText); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan hint event: %w", err)
		}
		e.Timestamp = parseTime(ts)
		out = append(out, e)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = r.db.QueryContext(ctx,
		`SELECT sequence, timestamp, session_id, item_id, objective_id, mechanic,
		        correct, latency_ms, hints_used, misconception_id, retries, response
		 FROM attempt_events`)
	if err != nil {
		return nil, fmt.Errorf("query attempt events: %w", err)
	}
	for rows.Next() {
		var e Event
		var ts string
		var correct int
		e.Type = "attempt"
		if err := rows.Scan(&e.Sequence, &ts, &e.SessionID, &e.ItemID, &e.ObjectiveID,
			&e.Mechanic, &correct, &e.LatencyMs, &e.HintsUsed,
			&e.MisconceptionID, &e.Retries, &e.Response); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan attempt event: %w", err)
		}
		e.Correct = correct != 0
		e.Timestamp = parseTime(ts)
		out = append(out, e)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = r.db.QueryContext(ctx,
		`SELECT sequence, timestamp, provider, model, purpose, latency_ms, success
		 FROM coach_events`)
	if err != nil {
		return nil, fmt.Errorf("query coach events: %w", err)
	}
	for rows.Next() {
		var e Event
		var ts string
		var success int
		e.Type = "coach"
		if err := rows.Scan(&e.Sequence, &ts, &e.Provider, &e.Model, &e.Purpose, &e.LatencyMs, &success); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan coach event: %w", err)
		}
		e.Correct = success != 0
		e.Timestamp = parseTime(ts)
		out = append(out, e)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out, nil
}

func (r *eventRepo) Summary(ctx context.Context) (*LogSummary, error) {
	sum := &LogSummary{Misconception: make(map[string]int)}

	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM session_events WHERE action = 'start'`).Scan(&sum.Sessions)
	if err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(correct), 0), COALESCE(SUM(hints_used), 0) FROM attempt_events`).
		Scan(&sum.Attempts, &sum.Correct, &sum.TotalHints)
	if err != nil {
		return nil, fmt.Errorf("aggregate attempts: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT objective_id, COUNT(*), SUM(correct)
		 FROM attempt_events GROUP BY objective_id ORDER BY objective_id`)
	if err != nil {
		return nil, fmt.Errorf("aggregate objectives: %w", err)
	}
	for rows.Next() {
		var oa ObjectiveAccuracy
		if err := rows.Scan(&oa.ObjectiveID, &oa.Attempts, &oa.Correct); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan objective accuracy: %w", err)
		}
		sum.ByObjective = append(sum.ByObjective, oa)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = r.db.QueryContext(ctx,
		`SELECT misconception_id, COUNT(*)
		 FROM attempt_events WHERE misconception_id != '' GROUP BY misconception_id`)
	if err != nil {
		return nil, fmt.Errorf("aggregate misconceptions: %w", err)
	}
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan misconception count: %w", err)
		}
		sum.Misconception[id] = n
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	return sum, nil
}

func (r *eventRepo) Reset(ctx context.Context) error {
	for _, table := range []string{"session_events", "hint_events", "attempt_events", "coach_events"} {
		if _, err := r.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterate rows: %w", err)
	}
	return rows.Close()
}
