package cedule

import (
	"testing"

	"cadastra/terrain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	key := terrain.ItemKey{DossierID: "D-1", Mandate: 0, Visit: 0}
	rec := newFakeRecorder(poolItem("D-1", 0, 0, terrain.StatusNeedsScheduling))
	dir := initialsDir{"t1": "JT"}
	s := NewStore(rec, dir)
	s.Reconcile(rec.items())

	team, err := s.CreateTeam("2024-06-03", Selection{Technicians: []string{"t1"}, Vehicles: []string{"v1"}})
	require.NoError(t, err)
	require.NoError(t, s.MoveItem(key, TeamRef{Day: "2024-06-03", TeamID: team.ID}, -1, false))
	_, err = s.CreateTeam("2024-06-04", Selection{})
	require.NoError(t, err)

	data, err := s.SnapshotJSON()
	require.NoError(t, err)

	restored := NewStore(rec, dir)
	require.NoError(t, restored.RestoreJSON(data))

	assert.ElementsMatch(t, s.Days(), restored.Days())
	assert.Equal(t, s.Teams("2024-06-03"), restored.Teams("2024-06-03"))
	assert.Equal(t, s.Teams("2024-06-04"), restored.Teams("2024-06-04"))

	assert.Error(t, restored.RestoreJSON([]byte("not json")))
}
