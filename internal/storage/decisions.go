package storage

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/vovakirdan/blockfall/internal/bot"
	"github.com/vovakirdan/blockfall/internal/tetris"
)

// DecisionRow is a stored bot decision flattened for offline training.
type DecisionRow struct {
	ID        int64
	RunID     string
	Seq       int
	Grid      string // tetris.Grid.Occupancy, row 0 first
	Current   string
	Next      string // Empty when the decision had no look-ahead piece
	Rotation  int
	Offset    int
	Score     float64
	CreatedAt time.Time
}

// DecisionRecorder stores decisions for one run. It implements bot.Recorder.
type DecisionRecorder struct {
	store *Store
	runID string
	seq   atomic.Int64
}

var _ bot.Recorder = (*DecisionRecorder)(nil)

// Recorder returns a recorder writing decisions under runID.
func (s *Store) Recorder(runID string) *DecisionRecorder {
	if runID == "" {
		runID = NewRunID()
	}
	return &DecisionRecorder{store: s, runID: runID}
}

// RunID returns the run the recorder writes under.
func (r *DecisionRecorder) RunID() string {
	return r.runID
}

// Record stores one decision.
func (r *DecisionRecorder) Record(d bot.Decision) error {
	var next any
	if d.HasNext {
		next = d.Next.String()
	}
	_, err := r.store.db.Exec(
		`INSERT INTO decisions (run_id, seq, grid, current_piece, next_piece, rotation, x_offset, score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.runID, r.seq.Add(1), d.Grid.Occupancy(), d.Current.String(), next,
		d.Rotation, d.Offset, d.Score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save decision: %w", err)
	}
	return nil
}

// Decisions returns the decisions of a run in recording order.
func (s *Store) Decisions(runID string) ([]DecisionRow, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, seq, grid, current_piece, COALESCE(next_piece, ''), rotation, x_offset, score, created_at
		 FROM decisions
		 WHERE run_id = ?
		 ORDER BY seq`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query decisions: %w", err)
	}
	defer rows.Close()

	var out []DecisionRow
	for rows.Next() {
		var d DecisionRow
		var createdAt any
		if err := rows.Scan(&d.ID, &d.RunID, &d.Seq, &d.Grid, &d.Current, &d.Next, &d.Rotation, &d.Offset, &d.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		d.CreatedAt = parseTime(createdAt)
		out = append(out, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// CurrentShape parses the stored current piece.
func (d DecisionRow) CurrentShape() (tetris.Shape, error) {
	return tetris.ParseShape(d.Current)
}
