package models

import (
	"strings"
	"time"
)

// Room represents a bookable training room.
type Room struct {
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Capacity   int       `db:"capacity" json:"capacity"`
	Equipments *string   `db:"equipments" json:"equipments,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// HasEquipment reports whether the room's equipment field contains the
// requested need. Matching is substring based: a room tagged
// "projecteur,wifi" satisfies a need of "wifi".
func (r Room) HasEquipment(need string) bool {
	if need == "" {
		return true
	}
	if r.Equipments == nil {
		return false
	}
	return strings.Contains(*r.Equipments, need)
}

// RoomFilter describes query params for listing rooms.
type RoomFilter struct {
	Page     int
	PageSize int
}
