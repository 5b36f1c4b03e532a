package models

// Note is one entry of the shared notes wall.
type Note struct {
	ID     string `bson:"id" json:"id"`         // creation time in Unix milliseconds, decimal
	Text   string `bson:"text" json:"text"`     // 1..500 characters
	Author string `bson:"author" json:"author"` // 1..30 characters
	Date   string `bson:"date" json:"date"`     // display date, e.g. "16.10.2026"
}

// NoteRequest is the body of an add-note call.
type NoteRequest struct {
	Text   string `json:"text" validate:"required,max=500"`
	Author string `json:"author" validate:"required,max=30"`
}
