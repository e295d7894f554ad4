package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"smartnotes/internal/common"
	"smartnotes/internal/domain/model"
)

// NoteRepository is owner-scoped by construction: every lookup filters on
// the owning user, so a note belonging to someone else is indistinguishable
// from a note that does not exist.
type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	ListByOwner(ctx context.Context, ownerID string) ([]model.Note, error)
	FindByOwnerAndID(ctx context.Context, ownerID, id string) (*model.Note, error)
	Update(ctx context.Context, note *model.Note) error
	Delete(ctx context.Context, ownerID, id string) error
}

type pgNoteRepository struct {
	db *sql.DB
}

func NewPgNoteRepository(db *sql.DB) NoteRepository {
	return &pgNoteRepository{db: db}
}

func (r *pgNoteRepository) Create(ctx context.Context, note *model.Note) error {
	query := `INSERT INTO notes (id, owner_id, title, slug, text)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, note.ID, note.OwnerID, note.Title, note.Slug, note.Text).
		Scan(&note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgNoteRepository.Create: %w", err)
	}
	return nil
}

func (r *pgNoteRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Note, error) {
	query := `SELECT id, owner_id, title, slug, text, created_at, updated_at
	          FROM notes WHERE owner_id = $1
	          ORDER BY created_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("pgNoteRepository.ListByOwner: %w", err)
	}
	defer rows.Close()

	notes := []model.Note{}
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Slug, &n.Text, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgNoteRepository.ListByOwner scan: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgNoteRepository.ListByOwner rows: %w", err)
	}
	return notes, nil
}

func (r *pgNoteRepository) FindByOwnerAndID(ctx context.Context, ownerID, id string) (*model.Note, error) {
	query := `SELECT id, owner_id, title, slug, text, created_at, updated_at
	          FROM notes WHERE owner_id = $1 AND id = $2`
	note := &model.Note{}
	err := r.db.QueryRowContext(ctx, query, ownerID, id).Scan(
		&note.ID, &note.OwnerID, &note.Title, &note.Slug, &note.Text, &note.CreatedAt, &note.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgNoteRepository.FindByOwnerAndID: %w", err)
	}
	return note, nil
}

func (r *pgNoteRepository) Update(ctx context.Context, note *model.Note) error {
	query := `UPDATE notes SET title = $1, slug = $2, text = $3, updated_at = CURRENT_TIMESTAMP
	          WHERE owner_id = $4 AND id = $5
	          RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, note.Title, note.Slug, note.Text, note.OwnerID, note.ID).
		Scan(&note.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return fmt.Errorf("pgNoteRepository.Update: %w", err)
	}
	return nil
}

func (r *pgNoteRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM notes WHERE owner_id = $1 AND id = $2`
	res, err := r.db.ExecContext(ctx, query, ownerID, id)
	if err != nil {
		return fmt.Errorf("pgNoteRepository.Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgNoteRepository.Delete rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
