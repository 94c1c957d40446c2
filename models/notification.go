package models

import "time"

// Notification is the record the schedule-event worker materializes for the
// surrounding application to display.
type Notification struct {
	ID        string    `json:"id" bson:"_id"`
	Kind      string    `json:"kind" bson:"kind"`
	Day       string    `json:"day" bson:"day"`
	TeamName  string    `json:"teamName,omitempty" bson:"teamName,omitempty"`
	DossierID string    `json:"dossierId,omitempty" bson:"dossierId,omitempty"`
	Message   string    `json:"message" bson:"message"`
	Read      bool      `json:"read" bson:"read"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
