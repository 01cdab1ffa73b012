package domain

import (
	"net/mail"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for stays and bookings.
const DateLayout = "2006-01-02"

type Guest struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Document     string `json:"document"` // CPF/RG, free text
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	RoomID       string `json:"roomId"`
}

// GuestInput is the check-in form as typed by staff.
type GuestInput struct {
	Name         string `json:"name"`
	Document     string `json:"document"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
}

// Matches reports whether the guest is found by a front-desk search term:
// name case-insensitively, document verbatim.
func (g Guest) Matches(term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(g.Name), strings.ToLower(term)) ||
		strings.Contains(g.Document, term)
}

// Validate checks the form fields; phone and document are free text.
func (in *GuestInput) Validate() error {
	ve := NewValidationError()
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		ve.Add("name", "provide the guest name")
	}
	if in.Email != "" {
		if _, err := mail.ParseAddress(in.Email); err != nil {
			ve.Add("email", "provide a valid email")
		}
	}
	if in.CheckInDate != "" && !validDate(in.CheckInDate) {
		ve.Add("checkInDate", "use YYYY-MM-DD")
	}
	if in.CheckOutDate != "" && !validDate(in.CheckOutDate) {
		ve.Add("checkOutDate", "use YYYY-MM-DD")
	}
	return ve.Err()
}

func validDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
