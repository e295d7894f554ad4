package service

import (
	"context"
	"strings"
	"testing"

	"smartnotes/internal/app/validation"
	"smartnotes/internal/common"
	"smartnotes/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNoteService() *NoteService {
	return NewNoteService(repository.NewMemoryNoteRepository())
}

func TestCreateNote_TrimRoundTrip(t *testing.T) {
	s := newTestNoteService()
	ctx := context.Background()

	created, err := s.CreateNote(ctx, "owner-1", CreateNoteRequest{
		Title: "  T  ",
		Text:  " X \n",
	})
	require.NoError(t, err)
	assert.Equal(t, "T", created.Title)
	assert.Equal(t, "X", created.Text)
	assert.Equal(t, "t", created.Slug)

	got, err := s.GetNote(ctx, "owner-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.Text, got.Text)
}

func TestCreateNote_CollectsAllFieldErrors(t *testing.T) {
	s := newTestNoteService()

	_, err := s.CreateNote(context.Background(), "owner-1", CreateNoteRequest{
		Title: "   ",
		Text:  "",
	})
	var fe validation.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "title")
	assert.Contains(t, fe, "text")
}

func TestGetNote_OtherOwnerIsNotFound(t *testing.T) {
	s := newTestNoteService()
	ctx := context.Background()

	created, err := s.CreateNote(ctx, "user-a", CreateNoteRequest{Title: "secret", Text: "body"})
	require.NoError(t, err)

	_, err = s.GetNote(ctx, "user-b", created.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	title := "hijack"
	_, err = s.UpdateNote(ctx, "user-b", created.ID, UpdateNoteRequest{Title: &title})
	assert.ErrorIs(t, err, common.ErrNotFound)

	err = s.DeleteNote(ctx, "user-b", created.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	// Still intact for its owner.
	got, err := s.GetNote(ctx, "user-a", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "secret", got.Title)
}

func TestUpdateNote_PartialTitleKeepsText(t *testing.T) {
	s := newTestNoteService()
	ctx := context.Background()

	created, err := s.CreateNote(ctx, "owner-1", CreateNoteRequest{Title: "old title", Text: "unchanged body"})
	require.NoError(t, err)

	title := " new title "
	updated, err := s.UpdateNote(ctx, "owner-1", created.ID, UpdateNoteRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "new title", updated.Title)
	assert.Equal(t, "new-title", updated.Slug)
	assert.Equal(t, "unchanged body", updated.Text)
}

func TestUpdateNote_ProvidedFieldRevalidated(t *testing.T) {
	s := newTestNoteService()
	ctx := context.Background()

	created, err := s.CreateNote(ctx, "owner-1", CreateNoteRequest{Title: "t", Text: "x"})
	require.NoError(t, err)

	long := strings.Repeat("a", 201)
	_, err = s.UpdateNote(ctx, "owner-1", created.ID, UpdateNoteRequest{Title: &long})
	var fe validation.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "title")

	// Unchanged after the failed update.
	got, err := s.GetNote(ctx, "owner-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "t", got.Title)
}

func TestUpdateNote_NoFields(t *testing.T) {
	s := newTestNoteService()
	ctx := context.Background()

	created, err := s.CreateNote(ctx, "owner-1", CreateNoteRequest{Title: "t", Text: "x"})
	require.NoError(t, err)

	_, err = s.UpdateNote(ctx, "owner-1", created.ID, UpdateNoteRequest{})
	var fe validation.FieldErrors
	require.ErrorAs(t, err, &fe)
}

func TestDeleteNote(t *testing.T) {
	s := newTestNoteService()
	ctx := context.Background()

	created, err := s.CreateNote(ctx, "owner-1", CreateNoteRequest{Title: "t", Text: "x"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteNote(ctx, "owner-1", created.ID))
	_, err = s.GetNote(ctx, "owner-1", created.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	err = s.DeleteNote(ctx, "owner-1", created.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestListNotes_OwnerScopedWithPreview(t *testing.T) {
	s := newTestNoteService()
	ctx := context.Background()

	longText := strings.Repeat("b", 80)
	_, err := s.CreateNote(ctx, "user-a", CreateNoteRequest{Title: "mine", Text: longText})
	require.NoError(t, err)
	_, err = s.CreateNote(ctx, "user-b", CreateNoteRequest{Title: "theirs", Text: "other"})
	require.NoError(t, err)

	items, err := s.ListNotes(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "mine", items[0].Title)
	assert.Equal(t, strings.Repeat("b", 50)+"...", items[0].Preview)

	empty, err := s.ListNotes(ctx, "user-c")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
