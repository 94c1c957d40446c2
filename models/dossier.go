package models

import "time"

// Dossier is the authoritative case record, owned by the dossier CRUD side
// of the application. The scheduling board reads the whole collection and
// writes back only the scheduling fields of terrain visits.
type Dossier struct {
	ID        string    `json:"id" bson:"_id"`
	Numero    string    `json:"numero" bson:"numero"`
	Arpenteur string    `json:"arpenteur" bson:"arpenteur"`
	Clients   []Client  `json:"clients,omitempty" bson:"clients,omitempty"`
	Mandats   []Mandate `json:"mandats" bson:"mandats"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Client struct {
	Name  string `json:"name" bson:"name"`
	Phone string `json:"phone,omitempty" bson:"phone,omitempty"`
	Email string `json:"email,omitempty" bson:"email,omitempty"`
}

// Mandate is one contracted scope of work inside a dossier. A mandate enters
// the scheduling pool when its current task reaches TaskCedule.
type Mandate struct {
	Type          string         `json:"type" bson:"type"`
	CurrentTask   string         `json:"currentTask" bson:"currentTask"`
	TerrainVisits []TerrainVisit `json:"terrainVisits,omitempty" bson:"terrainVisits,omitempty"`
}

// TaskCedule is the task stage at which a mandate's terrain visits become
// schedulable.
const TaskCedule = "cedule"

// TerrainVisit is one field-work occurrence tied to a mandate. The three
// scheduling fields (VerificationStatus, ScheduledDate, AssignedTeamName)
// are authoritative here; the board's assignment store is a derived index
// over them.
type TerrainVisit struct {
	Address             string   `json:"address" bson:"address"`
	DurationHint        string   `json:"duree,omitempty" bson:"duree,omitempty"`
	RequiredInstruments []string `json:"instruments,omitempty" bson:"instruments,omitempty"`
	PreferredTechnician string   `json:"technicien,omitempty" bson:"technicien,omitempty"`
	SimultaneousCase    string   `json:"dossierSimultane,omitempty" bson:"dossierSimultane,omitempty"`

	HasAppointment  bool   `json:"aRendezVous" bson:"aRendezVous"`
	AppointmentDate string `json:"dateRendezVous,omitempty" bson:"dateRendezVous,omitempty"`
	AppointmentTime string `json:"heureRendezVous,omitempty" bson:"heureRendezVous,omitempty"`

	VerificationStatus string `json:"verificationStatus,omitempty" bson:"verificationStatus,omitempty"`
	ScheduledDate      string `json:"scheduledDate,omitempty" bson:"scheduledDate,omitempty"`
	AssignedTeamName   string `json:"assignedTeamName,omitempty" bson:"assignedTeamName,omitempty"`
}
