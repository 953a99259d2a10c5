package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clubware/server/internal/domain/entity"
	"github.com/clubware/server/internal/domain/repository"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

const eventColumns = `id, title, description, location, date, price, form_url, image, visible, created_at, updated_at`

func (r *EventRepository) Create(ctx context.Context, ev *entity.ClubEvent) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO events (id, title, description, location, date, price, form_url, image, visible)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`, ev.ID, ev.Title, ev.Description, ev.Location, ev.Date, ev.Price, ev.FormURL, ev.Image, ev.Visible)

	return row.Scan(&ev.CreatedAt, &ev.UpdatedAt)
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*entity.ClubEvent, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE id = $1
	`, id)
	return scanEvent(row)
}

func (r *EventRepository) GetAll(ctx context.Context) ([]*entity.ClubEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+eventColumns+`
		FROM events
		ORDER BY date DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*entity.ClubEvent, 0)
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (r *EventRepository) Update(ctx context.Context, ev *entity.ClubEvent) error {
	ev.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE events
		SET title = $2, description = $3, location = $4, date = $5,
		    price = $6, form_url = $7, image = $8, visible = $9, updated_at = $10
		WHERE id = $1
	`, ev.ID, ev.Title, ev.Description, ev.Location, ev.Date, ev.Price, ev.FormURL, ev.Image, ev.Visible, ev.UpdatedAt)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) (*entity.ClubEvent, error) {
	row := r.pool.QueryRow(ctx, `
		DELETE FROM events
		WHERE id = $1
		RETURNING `+eventColumns+`
	`, id)
	return scanEvent(row)
}

func scanEvent(row pgx.Row) (*entity.ClubEvent, error) {
	ev := &entity.ClubEvent{}
	if err := row.Scan(&ev.ID, &ev.Title, &ev.Description, &ev.Location, &ev.Date,
		&ev.Price, &ev.FormURL, &ev.Image, &ev.Visible, &ev.CreatedAt, &ev.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return ev, nil
}

var _ repository.EventRepository = (*EventRepository)(nil)
