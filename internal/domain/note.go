package domain

import (
	"strings"
	"time"
)

type NoteCategory string

const (
	NoteInfo    NoteCategory = "Info"
	NoteWarning NoteCategory = "Warning"
	NoteRequest NoteCategory = "Request"
)

var NoteCategories = []NoteCategory{NoteInfo, NoteWarning, NoteRequest}

// ParseNoteCategory maps "" to Info, the quick-add default.
func ParseNoteCategory(s string) (NoteCategory, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NoteInfo, true
	}
	for _, v := range NoteCategories {
		if strings.EqualFold(string(v), s) {
			return v, true
		}
	}
	return "", false
}

type ReceptionNote struct {
	ID        string       `json:"id"`
	Text      string       `json:"text"`
	Category  NoteCategory `json:"category"`
	Time      string       `json:"time"` // HH:MM in the desk's display zone
	Timestamp time.Time    `json:"timestamp"`
}
