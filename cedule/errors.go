package cedule

import (
	"fmt"

	"cadastra/terrain"
)

// ConflictError rejects a roster change because the resource is already
// committed to another team on that day. Surfaced to the user, never fatal.
type ConflictError struct {
	Kind       ResourceKind `json:"kind"`
	ResourceID string       `json:"resourceId"`
	Day        string       `json:"day"`
	TeamName   string       `json:"teamName"`
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %s est déjà assigné à %s le %s", e.Kind, e.ResourceID, e.TeamName, e.Day)
}

// ConfirmationRequired signals a two-phase operation: the caller must retry
// with confirmation granted, or abandon with no state change.
type ConfirmationRequired struct {
	Action          string           `json:"action"`
	Day             string           `json:"day,omitempty"`
	TeamID          string           `json:"teamId,omitempty"`
	TeamName        string           `json:"teamName,omitempty"`
	ItemCount       int              `json:"itemCount,omitempty"`
	ItemKey         *terrain.ItemKey `json:"itemKey,omitempty"`
	AppointmentDate string           `json:"appointmentDate,omitempty"`
}

func (e *ConfirmationRequired) Error() string {
	return "confirmation required: " + e.Action
}
