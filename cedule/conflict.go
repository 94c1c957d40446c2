package cedule

// Availability queries. These back every roster mutation and resource move;
// no mutation path skips them.

// holderLocked returns the team (other than excludeTeamID) whose roster of
// the given kind contains the resource on that day.
func (s *Store) holderLocked(day string, kind ResourceKind, id, excludeTeamID string) *Team {
	for _, t := range s.days[day] {
		if t.ID == excludeTeamID {
			continue
		}
		if containsString(*rosterOf(t, kind), id) {
			return t
		}
	}
	return nil
}

// ResourceAvailable reports whether the resource is free on the given day,
// ignoring the excluded team (pass "" when checking for a brand-new team).
func (s *Store) ResourceAvailable(day string, kind ResourceKind, id, excludeTeamID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.holderLocked(day, kind, id, excludeTeamID) == nil
}

// HoldingTeam names the team currently holding the resource on that day, for
// user-facing conflict messages.
func (s *Store) HoldingTeam(day string, kind ResourceKind, id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t := s.holderLocked(day, kind, id, ""); t != nil {
		return t.Name, true
	}
	return "", false
}
