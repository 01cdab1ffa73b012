package domain

import "strings"

type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "Confirmed"
	ReservationPending   ReservationStatus = "Pending"
	ReservationCancelled ReservationStatus = "Cancelled"
)

var ReservationStatuses = []ReservationStatus{ReservationConfirmed, ReservationPending, ReservationCancelled}

func ParseReservationStatus(s string) (ReservationStatus, bool) {
	for _, v := range ReservationStatuses {
		if strings.EqualFold(string(v), strings.TrimSpace(s)) {
			return v, true
		}
	}
	return "", false
}

type Reservation struct {
	ID        string            `json:"id"`
	GuestName string            `json:"guestName"`
	Date      string            `json:"date"`
	RoomID    string            `json:"roomId"`
	Status    ReservationStatus `json:"status"`
	Notes     string            `json:"notes"`
}

// ReservationInput is the booking form.
type ReservationInput struct {
	GuestName string `json:"guestName"`
	Date      string `json:"date"`
	RoomID    string `json:"roomId"`
	Notes     string `json:"notes"`
}

func (in *ReservationInput) Validate() error {
	ve := NewValidationError()
	in.GuestName = strings.TrimSpace(in.GuestName)
	if in.GuestName == "" {
		ve.Add("guestName", "provide the guest name")
	}
	if in.Date == "" {
		ve.Add("date", "provide the booking date")
	} else if !validDate(in.Date) {
		ve.Add("date", "use YYYY-MM-DD")
	}
	if in.RoomID == "" {
		ve.Add("roomId", "provide the room")
	}
	return ve.Err()
}

// Open reports whether the booking still holds the room.
func (r Reservation) Open() bool { return r.Status != ReservationCancelled }
