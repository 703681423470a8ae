package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/petrijr/flowwire/pkg/api"
)

// sqlStore holds the queries shared by the SQLite and PostgreSQL stores.
// Queries are written with '?' placeholders and rebound per dialect.
type sqlStore struct {
	db     *sql.DB
	rebind func(string) string
}

func (s *sqlStore) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.rebind(query), args...)
}

func (s *sqlStore) appendEvents(ctx context.Context, runID string, records []byte) error {
	if err := validateRecords(runID, records); err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}
	_, err := s.exec(ctx, `INSERT INTO history_chunks (run_id, records) VALUES (?, ?)`, runID, records)
	return err
}

func (s *sqlStore) loadHistory(ctx context.Context, runID string) ([]byte, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT records
		FROM history_chunks
		WHERE run_id = ?
		ORDER BY id ASC`), runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		out   []byte
		found bool
	)
	for rows.Next() {
		var chunk []byte
		if err := rows.Scan(&chunk); err != nil {
			return nil, err
		}
		out = append(out, chunk...)
		found = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrRunNotFound
	}
	return out, nil
}

func (s *sqlStore) saveActivation(ctx context.Context, rec ActivationRecord) error {
	commands, err := encodeCommands(rec.Commands)
	if err != nil {
		return fmt.Errorf("encode commands: %w", err)
	}

	_, err = s.exec(ctx, `
		INSERT INTO activations (run_id, workflow, status, error, output, commands, history_size, replayed, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID,
		rec.Workflow,
		string(rec.Status),
		rec.Error,
		rec.Output,
		commands,
		rec.HistorySize,
		rec.Replayed,
		rec.RecordedAt.UnixNano(),
	)
	return err
}

func (s *sqlStore) listActivations(ctx context.Context, runID string) ([]ActivationRecord, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT workflow, status, error, output, commands, history_size, replayed, recorded_at
		FROM activations
		WHERE run_id = ?
		ORDER BY id ASC`), runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ActivationRecord
	for rows.Next() {
		var (
			rec        = ActivationRecord{RunID: runID}
			status     string
			commands   []byte
			recordedAt int64
		)
		if err := rows.Scan(
			&rec.Workflow,
			&status,
			&rec.Error,
			&rec.Output,
			&commands,
			&rec.HistorySize,
			&rec.Replayed,
			&recordedAt,
		); err != nil {
			return nil, err
		}
		rec.Status = api.Status(status)
		rec.RecordedAt = time.Unix(0, recordedAt).UTC()
		if rec.Commands, err = decodeValue[[]CommandRecord](commands); err != nil {
			return nil, fmt.Errorf("decode commands: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrRunNotFound
	}
	return out, nil
}

func sqliteBind(q string) string { return q }

// postgresBind rewrites '?' placeholders to $1, $2, ...
func postgresBind(q string) string {
	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
