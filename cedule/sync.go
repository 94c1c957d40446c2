package cedule

import (
	"log"
	"sort"

	"cadastra/terrain"

	"github.com/google/uuid"
)

// Reconcile repairs the assignment store against the authoritative work-item
// pool. Callers invoke it whenever the dossier collection is known to have
// changed, and before accepting any move. It is idempotent: a second pass
// over unchanged input mutates nothing.
func (s *Store) Reconcile(items []terrain.WorkItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = terrain.Index(items)
	s.pruneLocked()
	s.adoptLocked()
}

// pruneLocked drops every team entry whose record no longer backs it: the
// item vanished from the catalog, was marked not applicable, or its record
// now points at a different day or team. Silent repair, never an error.
func (s *Store) pruneLocked() {
	for day, teams := range s.days {
		for _, t := range teams {
			kept := t.Items[:0]
			for _, key := range t.Items {
				it, ok := s.items[key]
				if !ok || it.Status == terrain.StatusNotApplicable || it.Scheduled == nil {
					continue
				}
				if it.Scheduled.Day != day || it.Scheduled.TeamName != t.Name {
					continue
				}
				kept = append(kept, key)
			}
			t.Items = kept
		}
	}
}

// adoptLocked indexes items whose record already carries a schedule but which
// no team holds, typically after an out-of-band edit. The team is matched by
// display name; when none exists an empty one is created and the canonical
// name is written back so record and board converge.
func (s *Store) adoptLocked() {
	keys := make([]terrain.ItemKey, 0, len(s.items))
	for key := range s.items {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	// records sharing an unrecognized team name join the same created team
	created := make(map[string]*Team)

	for _, key := range keys {
		it := s.items[key]
		if it.Scheduled == nil || it.Status == terrain.StatusNotApplicable {
			continue
		}
		if s.holdingTeamOfItemLocked(key) != nil {
			continue
		}
		day := it.Scheduled.Day
		if validDay(day) != nil {
			continue
		}

		recordName := it.Scheduled.TeamName

		var team *Team
		for _, t := range s.days[day] {
			if t.Name == recordName {
				team = t
				break
			}
		}
		if team == nil {
			team = created[day+"|"+recordName]
		}
		isNew := false
		if team == nil {
			team = &Team{ID: uuid.NewString(), Seq: len(s.days[day]) + 1}
			s.renameLocked(team)
			isNew = true
		}

		// Canonicalize the record before touching the board. If the write-back
		// fails the orphan stays where it is and the next pass retries; a team
		// created here without a converged record would be pruned right back
		// and re-created on every pass.
		if team.Name != recordName {
			if err := s.rec.ApplyScheduling(key, day, team.Name, it.Status); err != nil {
				log.Println("reconcile: write-back for", key, "failed:", err)
				continue
			}
			it.Scheduled = &terrain.Scheduling{Day: day, TeamName: team.Name}
			s.items[key] = it
		}

		if isNew {
			s.days[day] = append(s.days[day], team)
			created[day+"|"+recordName] = team
		}
		team.Items = append(team.Items, key)
	}
}

// holdingTeamOfItemLocked scans the whole store; item keys are globally
// unique across days.
func (s *Store) holdingTeamOfItemLocked(key terrain.ItemKey) *Team {
	for _, teams := range s.days {
		for _, t := range teams {
			for _, k := range t.Items {
				if k == key {
					return t
				}
			}
		}
	}
	return nil
}

// DayOfItem reports which day currently schedules the item.
func (s *Store) DayOfItem(key terrain.ItemKey) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t := s.holdingTeamOfItemLocked(key); t != nil {
		return s.dayOfTeamLocked(t), true
	}
	return "", false
}

// HoldingTeamOfItem reports which team currently holds the item.
func (s *Store) HoldingTeamOfItem(key terrain.ItemKey) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t := s.holdingTeamOfItemLocked(key); t != nil {
		return t.Name, true
	}
	return "", false
}
