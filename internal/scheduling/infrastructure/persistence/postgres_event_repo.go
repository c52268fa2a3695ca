package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slatehq/slate/internal/scheduling/domain"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS events (
	id             TEXT PRIMARY KEY,
	title          TEXT NOT NULL,
	start_date     TIMESTAMPTZ NOT NULL,
	end_date       TIMESTAMPTZ NOT NULL,
	priority       TEXT NOT NULL,
	project_id     TEXT NOT NULL,
	project_name   TEXT NOT NULL,
	project_status TEXT NOT NULL,
	phase_id       TEXT NOT NULL,
	phase_type     TEXT NOT NULL,
	phase_start    TIMESTAMPTZ NOT NULL,
	phase_end      TIMESTAMPTZ NOT NULL,
	phase_movable  BOOLEAN NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_project ON events(project_id);
CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_date);
`

// PostgresEventRepository implements domain.EventRepository using
// PostgreSQL. It is the shared-store counterpart of the SQLite
// repository; both satisfy the same interface.
type PostgresEventRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEventRepository creates a new PostgreSQL event repository.
func NewPostgresEventRepository(pool *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{pool: pool}
}

// Migrate creates the events table if it does not exist.
func (r *PostgresEventRepository) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("apply events schema: %w", err)
	}
	return nil
}

// Save inserts or updates an event.
func (r *PostgresEventRepository) Save(ctx context.Context, e domain.Event) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO events (
			id, title, start_date, end_date, priority,
			project_id, project_name, project_status,
			phase_id, phase_type, phase_start, phase_end, phase_movable
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			priority = EXCLUDED.priority,
			project_id = EXCLUDED.project_id,
			project_name = EXCLUDED.project_name,
			project_status = EXCLUDED.project_status,
			phase_id = EXCLUDED.phase_id,
			phase_type = EXCLUDED.phase_type,
			phase_start = EXCLUDED.phase_start,
			phase_end = EXCLUDED.phase_end,
			phase_movable = EXCLUDED.phase_movable`,
		e.ID, e.Title, e.Start, e.End, string(e.Priority),
		e.Project.ID, e.Project.Name, e.Project.Status,
		e.Phase.ID, string(e.Phase.Type), e.Phase.Start, e.Phase.End, e.Phase.Movable,
	)
	if err != nil {
		return fmt.Errorf("save event %s: %w", e.ID, err)
	}
	return nil
}

// FindByID retrieves an event by ID.
func (r *PostgresEventRepository) FindByID(ctx context.Context, id string) (domain.Event, error) {
	row := r.pool.QueryRow(ctx, selectEvents+" WHERE id = $1", id)

	event, err := scanPostgresEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("find event %s: %w", id, err)
	}
	return event, nil
}

// FindAll retrieves every stored event ordered by start date.
func (r *PostgresEventRepository) FindAll(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.pool.Query(ctx, selectEvents+" ORDER BY start_date, id")
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	return collectPostgresEvents(rows)
}

// FindByProject retrieves all events of one project.
func (r *PostgresEventRepository) FindByProject(ctx context.Context, projectID string) ([]domain.Event, error) {
	rows, err := r.pool.Query(ctx,
		selectEvents+" WHERE project_id = $1 ORDER BY start_date, id", projectID)
	if err != nil {
		return nil, fmt.Errorf("list events for project %s: %w", projectID, err)
	}
	defer rows.Close()

	return collectPostgresEvents(rows)
}

// Delete removes an event.
func (r *PostgresEventRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func scanPostgresEvent(row pgx.Row) (domain.Event, error) {
	var (
		e                   domain.Event
		priority, phaseType string
	)

	err := row.Scan(&e.ID, &e.Title, &e.Start, &e.End, &priority,
		&e.Project.ID, &e.Project.Name, &e.Project.Status,
		&e.Phase.ID, &phaseType, &e.Phase.Start, &e.Phase.End, &e.Phase.Movable)
	if err != nil {
		return domain.Event{}, err
	}

	e.Priority = domain.Priority(priority)
	e.Phase.Type = domain.PhaseType(phaseType)
	return e, nil
}

func collectPostgresEvents(rows pgx.Rows) ([]domain.Event, error) {
	var events []domain.Event
	for rows.Next() {
		event, err := scanPostgresEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
