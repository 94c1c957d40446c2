package cedule

import (
	"fmt"

	"cadastra/terrain"
)

// TeamRef addresses one team slot on the board.
type TeamRef struct {
	Day    string `json:"day"`
	TeamID string `json:"teamId"`
}

// MoveResource reassigns a resource between teams (or from the idle pool when
// from is nil, or back to it when to is nil). The destination day is
// availability-checked before anything changes; both affected teams are
// renamed afterwards.
func (s *Store) MoveResource(ref ResourceRef, from, to *TeamRef) error {
	if from == nil && to == nil {
		return fmt.Errorf("resource move needs a source or a destination")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var dest *Team
	if to != nil {
		dest = s.teamLocked(to.Day, to.TeamID)
		if dest == nil {
			return fmt.Errorf("team %s not found on %s", to.TeamID, to.Day)
		}
		holder := s.holderLocked(to.Day, ref.Kind, ref.ID, to.TeamID)
		if holder != nil && (from == nil || holder.ID != from.TeamID) {
			return &ConflictError{Kind: ref.Kind, ResourceID: ref.ID, Day: to.Day, TeamName: holder.Name}
		}
	}

	if from != nil {
		if src := s.teamLocked(from.Day, from.TeamID); src != nil {
			roster := rosterOf(src, ref.Kind)
			*roster = removeString(*roster, ref.ID)
			s.renameLocked(src)
		}
	}

	if dest != nil {
		roster := rosterOf(dest, ref.Kind)
		if !containsString(*roster, ref.ID) {
			*roster = append(*roster, ref.ID)
		}
		s.renameLocked(dest)
	}
	return nil
}

// MoveItem places a work item into a team's ordered list at the requested
// position. Moving an appointment-bound item to a different day is gated
// behind explicit confirmation, since it likely breaks a client commitment.
// The scheduling decision is written back to the dossier record before the
// board changes.
func (s *Store) MoveItem(key terrain.ItemKey, to TeamRef, position int, confirmed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[key]
	if !ok {
		return fmt.Errorf("unknown work item %s", key)
	}
	switch it.Status {
	case terrain.StatusNotApplicable:
		return fmt.Errorf("item %s is marked not applicable and cannot be scheduled", key)
	case terrain.StatusPendingVerification:
		return fmt.Errorf("item %s is still awaiting verification", key)
	}

	dest := s.teamLocked(to.Day, to.TeamID)
	if dest == nil {
		return fmt.Errorf("team %s not found on %s", to.TeamID, to.Day)
	}

	var curDay string
	cur := s.holdingTeamOfItemLocked(key)
	if cur != nil {
		curDay = s.dayOfTeamLocked(cur)
	}

	if curDay != "" && curDay != to.Day && it.HasAppointment && it.AppointmentDate != "" && !confirmed {
		return &ConfirmationRequired{
			Action:          "move_item",
			Day:             to.Day,
			TeamID:          dest.ID,
			TeamName:        dest.Name,
			ItemKey:         &key,
			AppointmentDate: it.AppointmentDate,
		}
	}

	if err := s.rec.ApplyScheduling(key, to.Day, dest.Name, terrain.StatusNeedsScheduling); err != nil {
		return fmt.Errorf("write-back for %s: %w", key, err)
	}

	if cur != nil {
		cur.Items = removeKey(cur.Items, key)
	}
	if position < 0 || position > len(dest.Items) {
		position = len(dest.Items)
	}
	dest.Items = append(dest.Items, terrain.ItemKey{})
	copy(dest.Items[position+1:], dest.Items[position:])
	dest.Items[position] = key

	it.Status = terrain.StatusNeedsScheduling
	it.Scheduled = &terrain.Scheduling{Day: to.Day, TeamName: dest.Name}
	s.items[key] = it
	return nil
}

// UnscheduleItem drops the item back to the pool: schedule fields cleared,
// status reverted to needs_scheduling, team membership removed.
func (s *Store) UnscheduleItem(key terrain.ItemKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[key]; !ok {
		return fmt.Errorf("unknown work item %s", key)
	}

	if err := s.rec.ApplyScheduling(key, "", "", terrain.StatusNeedsScheduling); err != nil {
		return fmt.Errorf("write-back for %s: %w", key, err)
	}

	if t := s.holdingTeamOfItemLocked(key); t != nil {
		t.Items = removeKey(t.Items, key)
	}
	s.clearItemLocked(key)
	return nil
}

// SetVerdict records the verification-stage decision: the mandate either
// needs a terrain visit or it does not. not_applicable is permanent.
func (s *Store) SetVerdict(key terrain.ItemKey, status terrain.VerificationStatus) error {
	if status != terrain.StatusNeedsScheduling && status != terrain.StatusNotApplicable {
		return fmt.Errorf("invalid verdict %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[key]
	if !ok {
		return fmt.Errorf("unknown work item %s", key)
	}
	if it.Status == terrain.StatusNotApplicable {
		return fmt.Errorf("item %s is already marked not applicable", key)
	}

	if err := s.rec.ApplyScheduling(key, "", "", status); err != nil {
		return fmt.Errorf("write-back for %s: %w", key, err)
	}

	if t := s.holdingTeamOfItemLocked(key); t != nil {
		t.Items = removeKey(t.Items, key)
	}
	it.Status = status
	it.Scheduled = nil
	s.items[key] = it
	return nil
}

func (s *Store) dayOfTeamLocked(team *Team) string {
	for day, teams := range s.days {
		for _, t := range teams {
			if t == team {
				return day
			}
		}
	}
	return ""
}

func removeKey(xs []terrain.ItemKey, v terrain.ItemKey) []terrain.ItemKey {
	out := xs[:0]
	for _, x := range xs {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
