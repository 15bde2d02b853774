package recorder

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite"

	"InvestAdvisor/internal/model"
)

// SQLiteRecorder persists advice runs to a SQLite database. Each run is
// stored as a summary row, one row per recommendation for querying, and the
// full response as a msgpack payload.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log zerolog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets dashboards read while the advisor writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log.With().Str("component", "recorder").Logger()}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS advice_runs (
			run_id                TEXT PRIMARY KEY,
			timestamp             INTEGER NOT NULL,
			client_id             TEXT NOT NULL,
			trigger_source        TEXT NOT NULL,
			risk_profile          TEXT,
			total_value           REAL,
			market_trend          REAL,
			risk_tolerance        REAL,
			diversification       REAL,
			age_based_allocation  REAL,
			goal_alignment        REAL,
			increases             INTEGER,
			reductions            INTEGER,
			sells                 INTEGER,
			holds                 INTEGER,
			payload               BLOB NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_client_ts ON advice_runs(client_id, timestamp)`,

		`CREATE TABLE IF NOT EXISTS advice_recommendations (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id             TEXT NOT NULL REFERENCES advice_runs(run_id),
			rank               INTEGER NOT NULL,
			asset_class        TEXT NOT NULL,
			action             TEXT NOT NULL,
			current_allocation REAL,
			allocation_change  REAL,
			target_allocation  REAL,
			confidence_score   REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_recs_run ON advice_recommendations(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func encodePayload(resp *model.AdviceResponse) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(resp); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodePayload(b []byte) (*model.AdviceResponse, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(b))
	dec.SetCustomStructTag("json")
	var resp model.AdviceResponse
	if err := dec.Decode(&resp); err != nil {
		return nil, err
	}
	resp.GeneratedAt = resp.GeneratedAt.UTC()
	return &resp, nil
}

func (r *SQLiteRecorder) RecordAdvice(run *AdviceRun) error {
	resp := run.Response
	payload, err := encodePayload(resp)
	if err != nil {
		return fmt.Errorf("encode advice payload: %w", err)
	}
	counts := resp.CountActions()
	f := resp.InvestmentFactors

	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO advice_runs
		(run_id, timestamp, client_id, trigger_source, risk_profile, total_value,
		 market_trend, risk_tolerance, diversification, age_based_allocation, goal_alignment,
		 increases, reductions, sells, holds, payload)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		run.RunID.String(), resp.GeneratedAt.Unix(), resp.ClientID, string(run.Trigger),
		string(resp.RiskProfile), resp.TotalPortfolioValue,
		f.MarketTrend, f.RiskTolerance, f.Diversification, f.AgeBasedAllocation, f.GoalAlignment,
		counts[model.ActionIncrease], counts[model.ActionReduce], counts[model.ActionSell], counts[model.ActionHold],
		payload,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, rec := range resp.Recommendations {
		_, err := tx.Exec(`INSERT INTO advice_recommendations
			(run_id, rank, asset_class, action, current_allocation, allocation_change, target_allocation, confidence_score)
			VALUES (?,?,?,?,?,?,?,?)`,
			run.RunID.String(), i+1, string(rec.AssetClass), string(rec.Action),
			rec.CurrentAllocation, rec.AllocationChange, rec.TargetAllocation, rec.ConfidenceScore,
		)
		if err != nil {
			return fmt.Errorf("insert recommendation %d: %w", i, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) LoadAdvice(runID uuid.UUID) (*AdviceRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var trigger string
	var payload []byte
	err := r.db.QueryRow(`SELECT trigger_source, payload FROM advice_runs WHERE run_id = ?`, runID.String()).
		Scan(&trigger, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query run %s: %w", runID, err)
	}

	resp, err := decodePayload(payload)
	if err != nil {
		return nil, fmt.Errorf("decode run %s: %w", runID, err)
	}
	return &AdviceRun{RunID: runID, Trigger: model.Trigger(trigger), Response: resp}, nil
}

func (r *SQLiteRecorder) RecentRuns(clientID string, limit int) ([]RunSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT run_id, client_id, trigger_source, timestamp, increases, reductions, sells, holds
		FROM advice_runs WHERE client_id = ? ORDER BY timestamp DESC, rowid DESC LIMIT ?`, clientID, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var s RunSummary
		var id, trigger string
		var ts int64
		if err := rows.Scan(&id, &s.ClientID, &trigger, &ts, &s.Increases, &s.Reductions, &s.Sells, &s.Holds); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if s.RunID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse run id %q: %w", id, err)
		}
		s.Trigger = model.Trigger(trigger)
		s.GeneratedAt = time.Unix(ts, 0).UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
