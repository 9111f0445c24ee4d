package models

import "time"

// Training represents a scheduled course with a headcount and a date range.
// StartDate and EndDate are ISO dates (YYYY-MM-DD); the repository layer
// normalises Postgres DATE columns to that format so occupancy keys,
// proposals and API payloads all share one representation.
type Training struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Headcount int       `db:"headcount" json:"headcount"`
	StartDate string    `db:"start_date" json:"start_date"`
	EndDate   string    `db:"end_date" json:"end_date"`
	Needs     *string   `db:"needs" json:"needs,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// NeedsEquipment reports whether the training states a non-empty equipment
// need.
func (t Training) NeedsEquipment() bool {
	return t.Needs != nil && *t.Needs != ""
}

// TrainingFilter describes query params for listing trainings.
type TrainingFilter struct {
	Page     int
	PageSize int
}
