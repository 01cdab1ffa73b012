package app

import (
	"context"
	"strings"

	"front_desk/internal/domain"
	"front_desk/internal/storage/memory"
)

// NoteService is the reception quick-add board.
type NoteService struct{ *deps }

// Add posts a note on top of the board. An empty category means Info.
func (s *NoteService) Add(ctx context.Context, text, category string) (domain.ReceptionNote, error) {
	ve := domain.NewValidationError()
	text = strings.TrimSpace(text)
	if text == "" {
		ve.Add("text", "write something")
	}
	cat, ok := domain.ParseNoteCategory(category)
	if !ok {
		ve.Add("category", "use Info, Warning or Request")
	}
	if err := ve.Err(); err != nil {
		return domain.ReceptionNote{}, err
	}

	now := s.now()
	n := domain.ReceptionNote{
		ID:        s.newID(),
		Text:      text,
		Category:  cat,
		Time:      now.Format("15:04"),
		Timestamp: now.UTC(),
	}
	if err := s.store.Update(ctx, func(tx *memory.Tx) error {
		return tx.Notes.Insert(n)
	}); err != nil {
		return domain.ReceptionNote{}, err
	}
	return n, nil
}

func (s *NoteService) Remove(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(tx *memory.Tx) error {
		return tx.Notes.Remove(id)
	})
}

// List returns the board newest first.
func (s *NoteService) List(ctx context.Context) ([]domain.ReceptionNote, error) {
	var out []domain.ReceptionNote
	err := s.store.View(ctx, func(tx *memory.Tx) error {
		out = tx.Notes.List(nil)
		return nil
	})
	return out, err
}
