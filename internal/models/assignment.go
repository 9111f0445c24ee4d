package models

import "time"

// Assignment books one room for one training on one calendar date.
type Assignment struct {
	ID         string    `db:"id" json:"id"`
	TrainingID string    `db:"training_id" json:"training_id"`
	RoomID     string    `db:"room_id" json:"room_id"`
	Date       string    `db:"date" json:"date"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// AssignmentDetail is the denormalized view joining training and room
// attributes, ordered by date when listed.
type AssignmentDetail struct {
	ID             string    `db:"id" json:"id"`
	Date           string    `db:"date" json:"date"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	TrainingID     string    `db:"training_id" json:"training_id"`
	TrainingName   string    `db:"training_name" json:"training_name"`
	Headcount      int       `db:"headcount" json:"headcount"`
	StartDate      string    `db:"start_date" json:"start_date"`
	EndDate        string    `db:"end_date" json:"end_date"`
	Needs          *string   `db:"needs" json:"needs,omitempty"`
	RoomID         string    `db:"room_id" json:"room_id"`
	RoomName       string    `db:"room_name" json:"room_name"`
	Capacity       int       `db:"capacity" json:"capacity"`
	RoomEquipments *string   `db:"room_equipments" json:"room_equipments,omitempty"`
}

// Proposal is an unpersisted room/date suggestion produced by the optimizer.
// FillRatio is round(headcount / capacity * 100). Accepting a proposal is an
// explicit assignment creation by the caller; the optimizer never persists.
type Proposal struct {
	TrainingID   string `json:"training_id"`
	TrainingName string `json:"training_name"`
	RoomID       string `json:"room_id"`
	RoomName     string `json:"room_name"`
	Date         string `json:"date"`
	Headcount    int    `json:"headcount"`
	Capacity     int    `json:"capacity"`
	FillRatio    int    `json:"fill_ratio"`
}
