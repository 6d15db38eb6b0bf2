package postgres

import (
	"context"

	"github.com/bolsoapp/bolso-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NoteRepository implements domain.NoteRepository using PostgreSQL
type NoteRepository struct {
	pool *pgxpool.Pool
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(pool *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{pool: pool}
}

// UpsertMonthly stores or replaces the note for one (year, month)
func (r *NoteRepository) UpsertMonthly(note *domain.MonthlyNote) (*domain.MonthlyNote, error) {
	ctx := context.Background()

	var stored domain.MonthlyNote
	err := r.pool.QueryRow(ctx, `
		INSERT INTO monthly_notes (year, month, note, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (year, month)
		DO UPDATE SET note = EXCLUDED.note, updated_at = EXCLUDED.updated_at
		RETURNING year, month, note, updated_at`,
		note.Year, note.Month, note.Note, note.UpdatedAt,
	).Scan(&stored.Year, &stored.Month, &stored.Note, &stored.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// GetMonthly retrieves the note for one (year, month)
func (r *NoteRepository) GetMonthly(year, month int) (*domain.MonthlyNote, error) {
	ctx := context.Background()

	var note domain.MonthlyNote
	err := r.pool.QueryRow(ctx, `
		SELECT year, month, note, updated_at
		FROM monthly_notes
		WHERE year = $1 AND month = $2`, year, month,
	).Scan(&note.Year, &note.Month, &note.Note, &note.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &note, nil
}

// UpsertAnnual stores or replaces the note for one year
func (r *NoteRepository) UpsertAnnual(note *domain.AnnualNote) (*domain.AnnualNote, error) {
	ctx := context.Background()

	var stored domain.AnnualNote
	err := r.pool.QueryRow(ctx, `
		INSERT INTO annual_notes (year, note, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (year)
		DO UPDATE SET note = EXCLUDED.note, updated_at = EXCLUDED.updated_at
		RETURNING year, note, updated_at`,
		note.Year, note.Note, note.UpdatedAt,
	).Scan(&stored.Year, &stored.Note, &stored.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// GetAnnual retrieves the note for one year
func (r *NoteRepository) GetAnnual(year int) (*domain.AnnualNote, error) {
	ctx := context.Background()

	var note domain.AnnualNote
	err := r.pool.QueryRow(ctx, `
		SELECT year, note, updated_at
		FROM annual_notes
		WHERE year = $1`, year,
	).Scan(&note.Year, &note.Note, &note.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &note, nil
}
