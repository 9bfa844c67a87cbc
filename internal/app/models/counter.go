package models

// Counter is the per-name, per-year sequence document. It is only ever
// mutated through an atomic $inc with upsert.
type Counter struct {
	ID   string `json:"-" bson:"_id,omitempty"`
	Name string `json:"name" bson:"name"`
	Year int    `json:"year" bson:"year"`
	Seq  int    `json:"seq" bson:"seq"`
}
