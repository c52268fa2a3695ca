// Package persistence implements the host-side event store. The
// conflict engine never touches these repositories; the CLI host loads
// events through them and hands plain values to the engine.
package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/slatehq/slate/internal/scheduling/domain"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS events (
	id             TEXT PRIMARY KEY,
	title          TEXT NOT NULL,
	start_date     TEXT NOT NULL,
	end_date       TEXT NOT NULL,
	priority       TEXT NOT NULL,
	project_id     TEXT NOT NULL,
	project_name   TEXT NOT NULL,
	project_status TEXT NOT NULL,
	phase_id       TEXT NOT NULL,
	phase_type     TEXT NOT NULL,
	phase_start    TEXT NOT NULL,
	phase_end      TEXT NOT NULL,
	phase_movable  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_project ON events(project_id);
CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_date);
`

// SQLiteEventRepository implements domain.EventRepository using SQLite.
type SQLiteEventRepository struct {
	dbConn *sql.DB
}

// NewSQLiteEventRepository creates a new SQLite event repository.
func NewSQLiteEventRepository(dbConn *sql.DB) *SQLiteEventRepository {
	return &SQLiteEventRepository{dbConn: dbConn}
}

// Migrate creates the events table if it does not exist.
func (r *SQLiteEventRepository) Migrate(ctx context.Context) error {
	if _, err := r.dbConn.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("apply events schema: %w", err)
	}
	return nil
}

// Save inserts or replaces an event.
func (r *SQLiteEventRepository) Save(ctx context.Context, e domain.Event) error {
	_, err := r.dbConn.ExecContext(ctx, `
		INSERT INTO events (
			id, title, start_date, end_date, priority,
			project_id, project_name, project_status,
			phase_id, phase_type, phase_start, phase_end, phase_movable
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			priority = excluded.priority,
			project_id = excluded.project_id,
			project_name = excluded.project_name,
			project_status = excluded.project_status,
			phase_id = excluded.phase_id,
			phase_type = excluded.phase_type,
			phase_start = excluded.phase_start,
			phase_end = excluded.phase_end,
			phase_movable = excluded.phase_movable`,
		e.ID, e.Title,
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339),
		string(e.Priority),
		e.Project.ID, e.Project.Name, e.Project.Status,
		e.Phase.ID, string(e.Phase.Type),
		e.Phase.Start.Format(time.RFC3339), e.Phase.End.Format(time.RFC3339),
		boolToInt64(e.Phase.Movable),
	)
	if err != nil {
		return fmt.Errorf("save event %s: %w", e.ID, err)
	}
	return nil
}

// FindByID retrieves an event by ID.
func (r *SQLiteEventRepository) FindByID(ctx context.Context, id string) (domain.Event, error) {
	row := r.dbConn.QueryRowContext(ctx, selectEvents+" WHERE id = ?", id)

	event, err := scanSQLiteEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("find event %s: %w", id, err)
	}
	return event, nil
}

// FindAll retrieves every stored event ordered by start date.
func (r *SQLiteEventRepository) FindAll(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.dbConn.QueryContext(ctx, selectEvents+" ORDER BY start_date, id")
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	return collectSQLiteEvents(rows)
}

// FindByProject retrieves all events of one project.
func (r *SQLiteEventRepository) FindByProject(ctx context.Context, projectID string) ([]domain.Event, error) {
	rows, err := r.dbConn.QueryContext(ctx,
		selectEvents+" WHERE project_id = ? ORDER BY start_date, id", projectID)
	if err != nil {
		return nil, fmt.Errorf("list events for project %s: %w", projectID, err)
	}
	defer rows.Close()

	return collectSQLiteEvents(rows)
}

// Delete removes an event.
func (r *SQLiteEventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.dbConn.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

const selectEvents = `
	SELECT id, title, start_date, end_date, priority,
	       project_id, project_name, project_status,
	       phase_id, phase_type, phase_start, phase_end, phase_movable
	FROM events`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteEvent(row rowScanner) (domain.Event, error) {
	var (
		e                                        domain.Event
		startDate, endDate, phaseStart, phaseEnd string
		priority, phaseType                      string
		movable                                  int64
	)

	err := row.Scan(&e.ID, &e.Title, &startDate, &endDate, &priority,
		&e.Project.ID, &e.Project.Name, &e.Project.Status,
		&e.Phase.ID, &phaseType, &phaseStart, &phaseEnd, &movable)
	if err != nil {
		return domain.Event{}, err
	}

	if e.Start, err = time.Parse(time.RFC3339, startDate); err != nil {
		return domain.Event{}, fmt.Errorf("parse start date: %w", err)
	}
	if e.End, err = time.Parse(time.RFC3339, endDate); err != nil {
		return domain.Event{}, fmt.Errorf("parse end date: %w", err)
	}
	if e.Phase.Start, err = time.Parse(time.RFC3339, phaseStart); err != nil {
		return domain.Event{}, fmt.Errorf("parse phase start: %w", err)
	}
	if e.Phase.End, err = time.Parse(time.RFC3339, phaseEnd); err != nil {
		return domain.Event{}, fmt.Errorf("parse phase end: %w", err)
	}

	e.Priority = domain.Priority(priority)
	e.Phase.Type = domain.PhaseType(phaseType)
	e.Phase.Movable = movable != 0
	return e, nil
}

func collectSQLiteEvents(rows *sql.Rows) ([]domain.Event, error) {
	var events []domain.Event
	for rows.Next() {
		event, err := scanSQLiteEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func boolToInt64(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
