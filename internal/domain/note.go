package domain

import "time"

// MonthlyNote is a free-text annotation for one (year, month); at most one
// note per key, replaced on write.
type MonthlyNote struct {
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Note      string    `json:"note"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AnnualNote is the year-level counterpart of MonthlyNote.
type AnnualNote struct {
	Year      int       `json:"year"`
	Note      string    `json:"note"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type NoteRepository interface {
	UpsertMonthly(note *MonthlyNote) (*MonthlyNote, error)
	GetMonthly(year, month int) (*MonthlyNote, error)
	UpsertAnnual(note *AnnualNote) (*AnnualNote, error)
	GetAnnual(year int) (*AnnualNote, error)
}
