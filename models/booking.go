package models

// BookingRequest is the body of a book or draft call.
type BookingRequest struct {
	Name string `json:"name" validate:"required,max=25"` // occupant name, trimmed
}

// WeekSummary is the header information of the board.
type WeekSummary struct {
	WeekID string `json:"weekId"` // e.g. "2026-W42"
	Booked int    `json:"booked"` // number of keys with an occupant
	Total  int    `json:"total"`  // full-hour cells in the grid
}
