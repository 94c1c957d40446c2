package terrain

import (
	"fmt"
	"strconv"
	"strings"

	"cadastra/models"
)

// VerificationStatus is the triage state of a work item: has someone decided
// whether this mandate actually needs a field visit?
type VerificationStatus string

const (
	StatusPendingVerification VerificationStatus = "pending_verification"
	StatusNeedsScheduling     VerificationStatus = "needs_scheduling"
	StatusNotApplicable       VerificationStatus = "not_applicable"
)

// ItemKey identifies one terrain visit inside the dossier collection.
type ItemKey struct {
	DossierID string `json:"dossierId" bson:"dossierId"`
	Mandate   int    `json:"mandate" bson:"mandate"`
	Visit     int    `json:"visit" bson:"visit"`
}

func (k ItemKey) String() string {
	return fmt.Sprintf("%s:%d:%d", k.DossierID, k.Mandate, k.Visit)
}

// ParseKey parses the "dossierId:mandate:visit" form produced by String.
func ParseKey(s string) (ItemKey, error) {
	i := strings.LastIndex(s, ":")
	if i < 0 {
		return ItemKey{}, fmt.Errorf("invalid item key %q", s)
	}
	j := strings.LastIndex(s[:i], ":")
	if j < 0 {
		return ItemKey{}, fmt.Errorf("invalid item key %q", s)
	}
	m, err := strconv.Atoi(s[j+1 : i])
	if err != nil {
		return ItemKey{}, fmt.Errorf("invalid mandate index in key %q", s)
	}
	v, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return ItemKey{}, fmt.Errorf("invalid visit index in key %q", s)
	}
	if s[:j] == "" {
		return ItemKey{}, fmt.Errorf("empty dossier id in key %q", s)
	}
	return ItemKey{DossierID: s[:j], Mandate: m, Visit: v}, nil
}

// Scheduling is present only once a work item has been placed on the board.
type Scheduling struct {
	Day      string `json:"day"`
	TeamName string `json:"teamName"`
}

// WorkItem is one schedulable unit of field work, projected from a dossier's
// mandate-and-terrain-visit pair.
type WorkItem struct {
	Key                 ItemKey            `json:"key"`
	MandateType         string             `json:"mandateType"`
	Address             string             `json:"address"`
	DurationHint        string             `json:"duree,omitempty"`
	RequiredInstruments []string           `json:"instruments,omitempty"`
	PreferredTechnician string             `json:"technicien,omitempty"`
	SimultaneousCase    string             `json:"dossierSimultane,omitempty"`
	HasAppointment      bool               `json:"aRendezVous"`
	AppointmentDate     string             `json:"dateRendezVous,omitempty"`
	AppointmentTime     string             `json:"heureRendezVous,omitempty"`
	Status              VerificationStatus `json:"verificationStatus"`
	Scheduled           *Scheduling        `json:"scheduled,omitempty"`
}

// ListWorkItems projects the full dossier collection into the current pool of
// work items: one per terrain visit of every mandate sitting at the cedule
// task. Pure function; callers re-run it whenever the collection changes.
func ListWorkItems(dossiers []models.Dossier) []WorkItem {
	var items []WorkItem
	for _, d := range dossiers {
		for mi, m := range d.Mandats {
			if m.CurrentTask != models.TaskCedule {
				continue
			}
			for vi, v := range m.TerrainVisits {
				item := WorkItem{
					Key:                 ItemKey{DossierID: d.ID, Mandate: mi, Visit: vi},
					MandateType:         m.Type,
					Address:             v.Address,
					DurationHint:        v.DurationHint,
					RequiredInstruments: v.RequiredInstruments,
					PreferredTechnician: v.PreferredTechnician,
					SimultaneousCase:    v.SimultaneousCase,
					HasAppointment:      v.HasAppointment,
					AppointmentDate:     v.AppointmentDate,
					AppointmentTime:     v.AppointmentTime,
					Status:              normalizeStatus(v.VerificationStatus),
				}
				if v.ScheduledDate != "" && v.AssignedTeamName != "" {
					item.Scheduled = &Scheduling{Day: v.ScheduledDate, TeamName: v.AssignedTeamName}
				}
				items = append(items, item)
			}
		}
	}
	return items
}

func normalizeStatus(raw string) VerificationStatus {
	switch VerificationStatus(raw) {
	case StatusNeedsScheduling:
		return StatusNeedsScheduling
	case StatusNotApplicable:
		return StatusNotApplicable
	default:
		// absent or unknown counts as still awaiting verification
		return StatusPendingVerification
	}
}

// Index builds a lookup map over a pool.
func Index(items []WorkItem) map[ItemKey]WorkItem {
	idx := make(map[ItemKey]WorkItem, len(items))
	for _, it := range items {
		idx[it.Key] = it
	}
	return idx
}
