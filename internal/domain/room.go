package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "AVAILABLE"
	RoomOccupied    RoomStatus = "OCCUPIED"
	RoomCleaning    RoomStatus = "CLEANING"
	RoomMaintenance RoomStatus = "MAINTENANCE"
)

// RoomStatuses lists every status in display order.
var RoomStatuses = []RoomStatus{RoomAvailable, RoomOccupied, RoomCleaning, RoomMaintenance}

// ParseRoomStatus accepts the canonical names case-insensitively.
func ParseRoomStatus(s string) (RoomStatus, bool) {
	st := RoomStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, v := range RoomStatuses {
		if v == st {
			return st, true
		}
	}
	return "", false
}

func (s RoomStatus) Valid() bool {
	for _, v := range RoomStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type RoomType string

const (
	RoomSimple RoomType = "Simple"
	RoomDouble RoomType = "Double"
	RoomSuite  RoomType = "Suite"
)

var roomTypeAliases = map[string]RoomType{
	"simple":  RoomSimple,
	"simples": RoomSimple,
	"double":  RoomDouble,
	"duplo":   RoomDouble,
	"suite":   RoomSuite,
	"suíte":   RoomSuite,
}

// ParseRoomType accepts English names and the front-desk (pt-BR) labels.
func ParseRoomType(s string) (RoomType, bool) {
	t, ok := roomTypeAliases[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

type Room struct {
	ID             string          `json:"id"`
	Number         string          `json:"number"`
	Type           RoomType        `json:"type"`
	Status         RoomStatus      `json:"status"`
	CurrentGuestID string          `json:"currentGuestId,omitempty"`
	ExtraCharges   decimal.Decimal `json:"extraCharges"`
}

// RoomPatch carries the room-management fields staff may edit; nil means keep.
type RoomPatch struct {
	Number *string
	Type   *RoomType
}
