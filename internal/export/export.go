package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rsuresh/quizcraft/internal/store"
)

// header is the CSV column layout. Column order is part of the export
// contract; append new columns at the end only.
var header = []string{
	"sequence", "timestamp", "type", "session_id", "action",
	"item_id", "objective_id", "mechanic", "correct", "latency_ms",
	"hints_used", "misconception_id", "retries",
	"hint_index", "hint_text",
	"final_streak", "final_avg_latency_ms", "final_hints", "total_items",
	"provider", "model", "purpose",
}

// WriteCSV streams the full event log as CSV in sequence order.
func WriteCSV(ctx context.Context, events store.EventRepo, w io.Writer) error {
	all, err := events.Events(ctx)
	if err != nil {
		return fmt.Errorf("read events: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, e := range all {
		if err := cw.Write(row(e)); err != nil {
			return fmt.Errorf("write event %d: %w", e.Sequence, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

func row(e store.Event) []string {
	return []string{
		strconv.FormatInt(e.Sequence, 10),
		e.Timestamp.UTC().Format(time.RFC3339Nano),
		e.Type,
		e.SessionID,
		e.Action,
		e.ItemID,
		e.ObjectiveID,
		e.Mechanic,
		strconv.FormatBool(e.Correct),
		strconv.FormatInt(e.LatencyMs, 10),
		strconv.Itoa(e.HintsUsed),
		e.MisconceptionID,
		strconv.Itoa(e.Retries),
		strconv.Itoa(e.HintIndex),
		e.HintText,
		strconv.Itoa(e.FinalStreak),
		strconv.FormatInt(e.FinalAvgLatencyMs, 10),
		strconv.Itoa(e.FinalHints),
		strconv.Itoa(e.TotalItems),
		e.Provider,
		e.Model,
		e.Purpose,
	}
}
