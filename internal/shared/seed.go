package shared

import (
	"github.com/shopspring/decimal"

	"front_desk/internal/domain"
)

// Seed data loaded on every start; the desk keeps no state across restarts.

var SeedRooms = []domain.Room{
	{ID: "1", Number: "101", Type: domain.RoomSimple, Status: domain.RoomAvailable},
	{ID: "2", Number: "102", Type: domain.RoomSimple, Status: domain.RoomOccupied, CurrentGuestID: "g1"},
	{ID: "3", Number: "201", Type: domain.RoomDouble, Status: domain.RoomCleaning},
	{ID: "4", Number: "202", Type: domain.RoomDouble, Status: domain.RoomAvailable},
	{ID: "5", Number: "301", Type: domain.RoomSuite, Status: domain.RoomMaintenance},
	{ID: "6", Number: "302", Type: domain.RoomSuite, Status: domain.RoomAvailable},
}

var SeedGuests = []domain.Guest{
	{
		ID:           "g1",
		Name:         "João Silva",
		Document:     "123.456.789-00",
		Phone:        "(11) 98888-7777",
		Email:        "joao@email.com",
		CheckInDate:  "2023-10-20",
		CheckOutDate: "2023-10-25",
		RoomID:       "2",
	},
}

var SeedProducts = []domain.Product{
	{ID: "p1", Name: "Água Mineral 500ml", Price: decimal.RequireFromString("5.00")},
	{ID: "p2", Name: "Cerveja Lata", Price: decimal.RequireFromString("12.00")},
	{ID: "p3", Name: "Chocolate 100g", Price: decimal.RequireFromString("8.50")},
	{ID: "p4", Name: "Salgadinho Pote", Price: decimal.RequireFromString("10.00")},
}
