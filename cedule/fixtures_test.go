package cedule

import (
	"fmt"
	"sort"
	"sync"

	"cadastra/terrain"
)

// fakeRecorder stands in for the dossier collection: ApplyScheduling mutates
// an in-memory record set, and items() re-projects it the way a reload would.
type fakeRecorder struct {
	mu    sync.Mutex
	calls int
	fail  bool
	pool  map[terrain.ItemKey]terrain.WorkItem
}

func newFakeRecorder(items ...terrain.WorkItem) *fakeRecorder {
	r := &fakeRecorder{pool: make(map[terrain.ItemKey]terrain.WorkItem, len(items))}
	for _, it := range items {
		r.pool[it.Key] = it
	}
	return r
}

func (r *fakeRecorder) ApplyScheduling(key terrain.ItemKey, day, teamName string, status terrain.VerificationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return fmt.Errorf("record store down")
	}
	it, ok := r.pool[key]
	if !ok {
		return fmt.Errorf("no record for %s", key)
	}
	r.calls++
	it.Status = status
	if day == "" || teamName == "" {
		it.Scheduled = nil
	} else {
		it.Scheduled = &terrain.Scheduling{Day: day, TeamName: teamName}
	}
	r.pool[key] = it
	return nil
}

func (r *fakeRecorder) items() []terrain.WorkItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]terrain.WorkItem, 0, len(r.pool))
	for _, it := range r.pool {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key.String() < out[j].Key.String() })
	return out
}

func (r *fakeRecorder) drop(key terrain.ItemKey) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pool, key)
}

func (r *fakeRecorder) record(key terrain.ItemKey) terrain.WorkItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pool[key]
}

type initialsDir map[string]string

func (d initialsDir) TechnicianInitials(id string) string { return d[id] }

func poolItem(dossier string, mandate, visit int, status terrain.VerificationStatus) terrain.WorkItem {
	return terrain.WorkItem{
		Key:    terrain.ItemKey{DossierID: dossier, Mandate: mandate, Visit: visit},
		Status: status,
	}
}
