package cedule

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"cadastra/terrain"

	"github.com/google/uuid"
)

const dayLayout = "2006-01-02"

// ResourceKind distinguishes the three exclusive resource pools.
type ResourceKind string

const (
	KindTechnician ResourceKind = "technician"
	KindVehicle    ResourceKind = "vehicle"
	KindEquipment  ResourceKind = "equipment"
)

// Team is a day-scoped grouping of resources executing terrain visits. Seq is
// first-class; Name is always derived from it plus technician initials and is
// what dossier records reference as assignedTeamName.
type Team struct {
	ID          string            `json:"id"`
	Seq         int               `json:"seq"`
	Name        string            `json:"name"`
	Technicians []string          `json:"technicians"`
	Vehicles    []string          `json:"vehicles"`
	Equipment   []string          `json:"equipment"`
	Items       []terrain.ItemKey `json:"mandats"`
}

func (t *Team) clone() *Team {
	c := *t
	c.Technicians = append([]string(nil), t.Technicians...)
	c.Vehicles = append([]string(nil), t.Vehicles...)
	c.Equipment = append([]string(nil), t.Equipment...)
	c.Items = append([]terrain.ItemKey(nil), t.Items...)
	return &c
}

// Directory resolves technician ids to initials for team display names.
type Directory interface {
	TechnicianInitials(id string) string
}

// Recorder writes scheduling decisions back onto the authoritative terrain
// visit record. Empty day and teamName clear the fields.
type Recorder interface {
	ApplyScheduling(key terrain.ItemKey, day, teamName string, status terrain.VerificationStatus) error
}

// Selection is the resource roster requested for a new team.
type Selection struct {
	Technicians []string `json:"technicians"`
	Vehicles    []string `json:"vehicles"`
	Equipment   []string `json:"equipment"`
}

// ResourceRef names one resource for roster deltas and moves.
type ResourceRef struct {
	Kind ResourceKind `json:"kind"`
	ID   string       `json:"id"`
}

// RosterDelta adds and removes resources on an existing team.
type RosterDelta struct {
	Add    []ResourceRef `json:"add,omitempty"`
	Remove []ResourceRef `json:"remove,omitempty"`
}

// Store owns the day -> teams assignment state. Every mutation runs under one
// mutex, so operations are serialized exactly like the event-driven original.
type Store struct {
	mu    sync.Mutex
	days  map[string][]*Team
	items map[terrain.ItemKey]terrain.WorkItem
	rec   Recorder
	dir   Directory
}

func NewStore(rec Recorder, dir Directory) *Store {
	return &Store{
		days:  make(map[string][]*Team),
		items: make(map[terrain.ItemKey]terrain.WorkItem),
		rec:   rec,
		dir:   dir,
	}
}

func validDay(day string) error {
	if _, err := time.Parse(dayLayout, day); err != nil {
		return fmt.Errorf("invalid day %q: expected YYYY-MM-DD", day)
	}
	return nil
}

func teamDisplayName(seq int, initials []string) string {
	if len(initials) == 0 {
		return fmt.Sprintf("Équipe %d", seq)
	}
	return fmt.Sprintf("Équipe %d (%s)", seq, strings.Join(initials, ", "))
}

// renameLocked recomputes the display name from the current technician
// roster, preserving the embedded sequence number.
func (s *Store) renameLocked(t *Team) {
	var initials []string
	for _, id := range t.Technicians {
		if ini := s.dir.TechnicianInitials(id); ini != "" {
			initials = append(initials, ini)
		}
	}
	t.Name = teamDisplayName(t.Seq, initials)
}

func (s *Store) teamLocked(day, teamID string) *Team {
	for _, t := range s.days[day] {
		if t.ID == teamID {
			return t
		}
	}
	return nil
}

// CreateTeam allocates a new team for the given day. The sequence number is
// the count of existing teams for that day plus one at creation time; it does
// not renumber if siblings are removed later.
func (s *Store) CreateTeam(day string, sel Selection) (*Team, error) {
	if err := validDay(day); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	refs := make([]ResourceRef, 0, len(sel.Technicians)+len(sel.Vehicles)+len(sel.Equipment))
	for _, id := range sel.Technicians {
		refs = append(refs, ResourceRef{Kind: KindTechnician, ID: id})
	}
	for _, id := range sel.Vehicles {
		refs = append(refs, ResourceRef{Kind: KindVehicle, ID: id})
	}
	for _, id := range sel.Equipment {
		refs = append(refs, ResourceRef{Kind: KindEquipment, ID: id})
	}
	for _, ref := range refs {
		if holder := s.holderLocked(day, ref.Kind, ref.ID, ""); holder != nil {
			return nil, &ConflictError{Kind: ref.Kind, ResourceID: ref.ID, Day: day, TeamName: holder.Name}
		}
	}

	t := &Team{
		ID:          uuid.NewString(),
		Seq:         len(s.days[day]) + 1,
		Technicians: dedupe(sel.Technicians),
		Vehicles:    dedupe(sel.Vehicles),
		Equipment:   dedupe(sel.Equipment),
	}
	s.renameLocked(t)
	s.days[day] = append(s.days[day], t)
	return t.clone(), nil
}

// UpdateTeamRoster applies a roster delta. Additions are availability-checked
// against every other team on the same day before anything is applied.
func (s *Store) UpdateTeamRoster(day, teamID string, delta RosterDelta) (*Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.teamLocked(day, teamID)
	if t == nil {
		return nil, fmt.Errorf("team %s not found on %s", teamID, day)
	}

	for _, ref := range delta.Add {
		if holder := s.holderLocked(day, ref.Kind, ref.ID, teamID); holder != nil {
			return nil, &ConflictError{Kind: ref.Kind, ResourceID: ref.ID, Day: day, TeamName: holder.Name}
		}
	}

	for _, ref := range delta.Remove {
		roster := rosterOf(t, ref.Kind)
		*roster = removeString(*roster, ref.ID)
	}
	for _, ref := range delta.Add {
		roster := rosterOf(t, ref.Kind)
		if !containsString(*roster, ref.ID) {
			*roster = append(*roster, ref.ID)
		}
	}

	s.renameLocked(t)
	return t.clone(), nil
}

// RemoveTeam deletes a team. A team still holding work items requires caller
// confirmation; on confirmation every member item reverts to
// needs_scheduling with its schedule fields cleared.
func (s *Store) RemoveTeam(day, teamID string, confirmed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.teamLocked(day, teamID)
	if t == nil {
		return fmt.Errorf("team %s not found on %s", teamID, day)
	}

	if len(t.Items) > 0 && !confirmed {
		return &ConfirmationRequired{
			Action:    "remove_team",
			Day:       day,
			TeamID:    t.ID,
			TeamName:  t.Name,
			ItemCount: len(t.Items),
		}
	}

	// revert every record before mutating the board, so a failed write-back
	// leaves the team and its item list intact
	for _, key := range t.Items {
		if err := s.rec.ApplyScheduling(key, "", "", terrain.StatusNeedsScheduling); err != nil {
			return fmt.Errorf("revert %s: %w", key, err)
		}
	}
	for _, key := range t.Items {
		s.clearItemLocked(key)
	}

	teams := s.days[day]
	kept := make([]*Team, 0, len(teams)-1)
	for _, other := range teams {
		if other.ID != teamID {
			kept = append(kept, other)
		}
	}
	if len(kept) == 0 {
		delete(s.days, day)
	} else {
		s.days[day] = kept
	}
	return nil
}

// CopyTeam duplicates a team's roster (never its items) onto the next working
// day, skipping weekends. The copy gets a fresh id, sequence and name.
func (s *Store) CopyTeam(day, teamID string) (*Team, string, error) {
	next, err := nextWorkingDay(day)
	if err != nil {
		return nil, "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.teamLocked(day, teamID)
	if t == nil {
		return nil, "", fmt.Errorf("team %s not found on %s", teamID, day)
	}

	for _, ref := range rosterRefs(t) {
		if holder := s.holderLocked(next, ref.Kind, ref.ID, ""); holder != nil {
			return nil, "", &ConflictError{Kind: ref.Kind, ResourceID: ref.ID, Day: next, TeamName: holder.Name}
		}
	}

	c := &Team{
		ID:          uuid.NewString(),
		Seq:         len(s.days[next]) + 1,
		Technicians: append([]string(nil), t.Technicians...),
		Vehicles:    append([]string(nil), t.Vehicles...),
		Equipment:   append([]string(nil), t.Equipment...),
	}
	s.renameLocked(c)
	s.days[next] = append(s.days[next], c)
	return c.clone(), next, nil
}

// Teams returns the ordered team list for a day.
func (s *Store) Teams(day string) []*Team {
	s.mu.Lock()
	defer s.mu.Unlock()

	teams := make([]*Team, 0, len(s.days[day]))
	for _, t := range s.days[day] {
		teams = append(teams, t.clone())
	}
	return teams
}

// Days returns every day key currently holding teams.
func (s *Store) Days() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.days))
	for day := range s.days {
		out = append(out, day)
	}
	return out
}

func (s *Store) clearItemLocked(key terrain.ItemKey) {
	if it, ok := s.items[key]; ok {
		it.Scheduled = nil
		it.Status = terrain.StatusNeedsScheduling
		s.items[key] = it
	}
}

func nextWorkingDay(day string) (string, error) {
	d, err := time.Parse(dayLayout, day)
	if err != nil {
		return "", fmt.Errorf("invalid day %q: expected YYYY-MM-DD", day)
	}
	d = d.AddDate(0, 0, 1)
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format(dayLayout), nil
}

func rosterOf(t *Team, kind ResourceKind) *[]string {
	switch kind {
	case KindVehicle:
		return &t.Vehicles
	case KindEquipment:
		return &t.Equipment
	default:
		return &t.Technicians
	}
}

func rosterRefs(t *Team) []ResourceRef {
	refs := make([]ResourceRef, 0, len(t.Technicians)+len(t.Vehicles)+len(t.Equipment))
	for _, id := range t.Technicians {
		refs = append(refs, ResourceRef{Kind: KindTechnician, ID: id})
	}
	for _, id := range t.Vehicles {
		refs = append(refs, ResourceRef{Kind: KindVehicle, ID: id})
	}
	for _, id := range t.Equipment {
		refs = append(refs, ResourceRef{Kind: KindEquipment, ID: id})
	}
	return refs
}

func dedupe(ids []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func removeString(xs []string, v string) []string {
	out := xs[:0]
	for _, x := range xs {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

func containsString(xs []string, v string) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
