package service

import (
	"errors"
	"strings"
	"time"

	"github.com/bolsoapp/bolso-backend/internal/domain"
)

// NoteService handles planning note business logic
type NoteService struct {
	noteRepo domain.NoteRepository
}

// NewNoteService creates a new NoteService
func NewNoteService(noteRepo domain.NoteRepository) *NoteService {
	return &NoteService{noteRepo: noteRepo}
}

func validateNote(note string) (string, error) {
	note = strings.TrimSpace(note)
	if len(note) > domain.MaxNoteLength {
		return "", domain.ErrInvalidInput
	}
	return note, nil
}

// UpsertMonthlyNote replaces the note for one (year, month).
func (s *NoteService) UpsertMonthlyNote(year, month int, note string) (*domain.MonthlyNote, error) {
	if month < 1 || month > 12 {
		return nil, domain.ErrInvalidMonth
	}
	note, err := validateNote(note)
	if err != nil {
		return nil, err
	}
	return s.noteRepo.UpsertMonthly(&domain.MonthlyNote{
		Year:      year,
		Month:     month,
		Note:      note,
		UpdatedAt: time.Now().UTC(),
	})
}

// GetMonthlyNote returns the note for one (year, month); an absent note reads
// as empty rather than an error.
func (s *NoteService) GetMonthlyNote(year, month int) (*domain.MonthlyNote, error) {
	if month < 1 || month > 12 {
		return nil, domain.ErrInvalidMonth
	}
	note, err := s.noteRepo.GetMonthly(year, month)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.MonthlyNote{Year: year, Month: month}, nil
	}
	if err != nil {
		return nil, err
	}
	return note, nil
}

// UpsertAnnualNote replaces the note for one year.
func (s *NoteService) UpsertAnnualNote(year int, note string) (*domain.AnnualNote, error) {
	note, err := validateNote(note)
	if err != nil {
		return nil, err
	}
	return s.noteRepo.UpsertAnnual(&domain.AnnualNote{
		Year:      year,
		Note:      note,
		UpdatedAt: time.Now().UTC(),
	})
}

// GetAnnualNote returns the note for one year, empty when absent.
func (s *NoteService) GetAnnualNote(year int) (*domain.AnnualNote, error) {
	note, err := s.noteRepo.GetAnnual(year)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.AnnualNote{Year: year}, nil
	}
	if err != nil {
		return nil, err
	}
	return note, nil
}
