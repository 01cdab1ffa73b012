package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Purchase is a ledger entry. Name and price are copied from the product at
// recording time and never change afterwards.
type Purchase struct {
	ID          string          `json:"id"`
	RoomID      string          `json:"roomId"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Timestamp   time.Time       `json:"timestamp"`
}

// Folio is a room together with every charge accrued to it.
type Folio struct {
	Room      Room            `json:"room"`
	Purchases []Purchase      `json:"purchases"`
	Total     decimal.Decimal `json:"total"`
}

// Balanced reports whether the room balance matches its ledger entries.
func (f Folio) Balanced() bool { return f.Room.ExtraCharges.Equal(f.Total) }

// Dashboard is the front-desk summary view.
type Dashboard struct {
	Date               string             `json:"date"`
	TotalRooms         int                `json:"totalRooms"`
	ByStatus           map[RoomStatus]int `json:"byStatus"`
	GuestsInHouse      int                `json:"guestsInHouse"`
	CheckInsToday      int                `json:"checkInsToday"`
	OpenReservations   int                `json:"openReservations"`
	OutstandingCharges decimal.Decimal    `json:"outstandingCharges"`
}
