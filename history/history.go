package history

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/honganh1206/datetime/datetime"
	"github.com/honganh1206/datetime/db"
	"github.com/honganh1206/datetime/utils"
)

//go:embed schema.sql
var Schema string

var ErrRecordNotFound = errors.New("record not found")

// Sortable and still readable by utils.ParseTimeWithFallback
const timeLayout = "2006-01-02 15:04:05.000000000"

// Record is one parse or guess attempt. Result is nil when the attempt failed.
type Record struct {
	ID        string             `json:"id"`
	Input     string             `json:"input"`
	Format    string             `json:"format"`
	Guessed   bool               `json:"guessed"`
	Result    *datetime.Datetime `json:"result,omitempty"`
	Error     string             `json:"error,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

func NewRecord(input, format string, guessed bool, result *datetime.Datetime, parseErr error) *Record {
	r := &Record{
		ID:        uuid.NewString(),
		Input:     input,
		Format:    format,
		Guessed:   guessed,
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}
	if parseErr != nil {
		r.Error = parseErr.Error()
	}
	return r
}

type Model struct {
	DB *sql.DB
}

func InitDB(dsn string) (*sql.DB, error) {
	return db.OpenDB(db.DefaultConfig(dsn), Schema)
}

func (m *Model) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

func (m *Model) Save(ctx context.Context, r *Record) error {
	var result sql.NullString
	if r.Result != nil {
		payload, err := json.Marshal(r.Result)
		if err != nil {
			return err
		}
		result = sql.NullString{String: string(payload), Valid: true}
	}

	query := `
	INSERT INTO parse_history (id, input, format, guessed, result, error, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`

	_, err := m.DB.ExecContext(ctx, query,
		r.ID, r.Input, r.Format, r.Guessed, result,
		sql.NullString{String: r.Error, Valid: r.Error != ""},
		r.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to save record '%s': %w", r.ID, err)
	}
	return nil
}

// List returns the newest records first. A non-positive limit means no limit.
func (m *Model) List(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = -1
	}

	query := `
	SELECT id, input, format, guessed, result, error, created_at
	FROM parse_history
	ORDER BY created_at DESC, rowid DESC
	LIMIT ?;
	`

	rows, err := m.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	records := []*Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}

	return records, nil
}

func (m *Model) Get(ctx context.Context, id string) (*Record, error) {
	query := `
	SELECT id, input, format, guessed, result, error, created_at
	FROM parse_history
	WHERE id = ?;
	`

	r, err := scanRecord(m.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return r, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*Record, error) {
	var (
		r         Record
		result    sql.NullString
		errText   sql.NullString
		createdAt string
	)

	if err := s.Scan(&r.ID, &r.Input, &r.Format, &r.Guessed, &result, &errText, &createdAt); err != nil {
		return nil, err
	}

	if result.Valid {
		var dt datetime.Datetime
		if err := json.Unmarshal([]byte(result.String), &dt); err != nil {
			return nil, fmt.Errorf("failed to decode result of record '%s': %w", r.ID, err)
		}
		r.Result = &dt
	}
	r.Error = errText.String

	t, err := utils.ParseTimeWithFallback(createdAt)
	if err != nil {
		return nil, err
	}
	r.CreatedAt = t

	return &r, nil
}
