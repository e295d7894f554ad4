package service

import (
	"context"
	"time"

	"smartnotes/internal/app/validation"
	"smartnotes/internal/common"
	"smartnotes/internal/domain/model"
	"smartnotes/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type NoteService struct {
	noteRepo repository.NoteRepository
}

func NewNoteService(noteRepo repository.NoteRepository) *NoteService {
	return &NoteService{noteRepo: noteRepo}
}

type CreateNoteRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type UpdateNoteRequest struct {
	Title *string `json:"title,omitempty"`
	Text  *string `json:"text,omitempty"`
}

// NoteListItem is the list-view projection of a note: full record plus a
// short text preview.
type NoteListItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Text      string    `json:"text"`
	Preview   string    `json:"preview"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateNote validates both fields, reporting every violation at once.
func (s *NoteService) CreateNote(ctx context.Context, ownerID string, req CreateNoteRequest) (*model.Note, error) {
	fe := validation.FieldErrors{}
	title, err := validation.Title(req.Title)
	if err != nil {
		fe.Add("title", err)
	}
	text, err := validation.Text(req.Text)
	if err != nil {
		fe.Add("text", err)
	}
	if len(fe) > 0 {
		return nil, fe
	}

	note := &model.Note{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
		Title:   title,
		Slug:    slug.Make(title),
		Text:    text,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, common.Errorf("failed to create note: %w", err)
	}
	return note, nil
}

func (s *NoteService) ListNotes(ctx context.Context, ownerID string) ([]NoteListItem, error) {
	notes, err := s.noteRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, common.Errorf("failed to list notes: %w", err)
	}
	items := make([]NoteListItem, 0, len(notes))
	for i := range notes {
		n := &notes[i]
		items = append(items, NoteListItem{
			ID:        n.ID,
			Title:     n.Title,
			Slug:      n.Slug,
			Text:      n.Text,
			Preview:   n.Preview(),
			CreatedAt: n.CreatedAt,
			UpdatedAt: n.UpdatedAt,
		})
	}
	return items, nil
}

func (s *NoteService) GetNote(ctx context.Context, ownerID, id string) (*model.Note, error) {
	return s.noteRepo.FindByOwnerAndID(ctx, ownerID, id)
}

// UpdateNote applies a partial update: each provided field is re-validated
// independently; absent fields keep their stored values.
func (s *NoteService) UpdateNote(ctx context.Context, ownerID, id string, req UpdateNoteRequest) (*model.Note, error) {
	if req.Title == nil && req.Text == nil {
		fe := validation.FieldErrors{}
		fe.Add("non_field_errors", common.Errorf("no fields to update"))
		return nil, fe
	}

	note, err := s.noteRepo.FindByOwnerAndID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	fe := validation.FieldErrors{}
	if req.Title != nil {
		title, err := validation.Title(*req.Title)
		if err != nil {
			fe.Add("title", err)
		} else {
			note.Title = title
			note.Slug = slug.Make(title)
		}
	}
	if req.Text != nil {
		text, err := validation.Text(*req.Text)
		if err != nil {
			fe.Add("text", err)
		} else {
			note.Text = text
		}
	}
	if len(fe) > 0 {
		return nil, fe
	}

	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) DeleteNote(ctx context.Context, ownerID, id string) error {
	return s.noteRepo.Delete(ctx, ownerID, id)
}
