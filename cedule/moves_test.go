package cedule

import (
	"testing"

	"cadastra/terrain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveResourceBetweenTeams(t *testing.T) {
	dir := initialsDir{"t1": "JT", "t2": "ML"}
	s := NewStore(newFakeRecorder(), dir)

	a, err := s.CreateTeam("2024-06-03", Selection{Technicians: []string{"t1", "t2"}})
	require.NoError(t, err)
	b, err := s.CreateTeam("2024-06-03", Selection{})
	require.NoError(t, err)

	err = s.MoveResource(ResourceRef{Kind: KindTechnician, ID: "t2"},
		&TeamRef{Day: "2024-06-03", TeamID: a.ID},
		&TeamRef{Day: "2024-06-03", TeamID: b.ID})
	require.NoError(t, err)

	for _, team := range s.Teams("2024-06-03") {
		switch team.ID {
		case a.ID:
			assert.Equal(t, []string{"t1"}, team.Technicians)
			assert.Equal(t, "Équipe 1 (JT)", team.Name)
		case b.ID:
			assert.Equal(t, []string{"t2"}, team.Technicians)
			assert.Equal(t, "Équipe 2 (ML)", team.Name)
		}
	}
}

func TestMoveResourceFromPoolRejectsConflict(t *testing.T) {
	dir := initialsDir{"t1": "JT"}
	s := NewStore(newFakeRecorder(), dir)

	a, err := s.CreateTeam("2024-06-03", Selection{Technicians: []string{"t1"}})
	require.NoError(t, err)
	b, err := s.CreateTeam("2024-06-03", Selection{})
	require.NoError(t, err)

	err = s.MoveResource(ResourceRef{Kind: KindTechnician, ID: "t1"},
		nil, &TeamRef{Day: "2024-06-03", TeamID: b.ID})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, a.Name, conflict.TeamName)

	for _, team := range s.Teams("2024-06-03") {
		if team.ID == b.ID {
			assert.Empty(t, team.Technicians)
		}
	}
}

func TestMoveResourceToPool(t *testing.T) {
	dir := initialsDir{"t1": "JT"}
	s := NewStore(newFakeRecorder(), dir)

	a, err := s.CreateTeam("2024-06-03", Selection{Technicians: []string{"t1"}})
	require.NoError(t, err)

	err = s.MoveResource(ResourceRef{Kind: KindTechnician, ID: "t1"},
		&TeamRef{Day: "2024-06-03", TeamID: a.ID}, nil)
	require.NoError(t, err)

	teams := s.Teams("2024-06-03")
	require.Len(t, teams, 1)
	assert.Empty(t, teams[0].Technicians)
	assert.Equal(t, "Équipe 1", teams[0].Name)
}

func TestMoveItemSchedulesAndWritesBack(t *testing.T) {
	key := terrain.ItemKey{DossierID: "D-1", Mandate: 0, Visit: 0}
	rec := newFakeRecorder(poolItem("D-1", 0, 0, terrain.StatusNeedsScheduling))
	s := NewStore(rec, initialsDir{})
	s.Reconcile(rec.items())

	team, err := s.CreateTeam("2024-06-03", Selection{})
	require.NoError(t, err)
	require.NoError(t, s.MoveItem(key, TeamRef{Day: "2024-06-03", TeamID: team.ID}, -1, false))

	got := rec.record(key)
	require.NotNil(t, got.Scheduled)
	assert.Equal(t, "2024-06-03", got.Scheduled.Day)
	assert.Equal(t, team.Name, got.Scheduled.TeamName)
	assert.Equal(t, terrain.StatusNeedsScheduling, got.Status)

	name, ok := s.HoldingTeamOfItem(key)
	require.True(t, ok)
	assert.Equal(t, team.Name, name)
}

func TestMoveItemRecorderFailureLeavesBoardUntouched(t *testing.T) {
	key := terrain.ItemKey{DossierID: "D-1", Mandate: 0, Visit: 0}
	rec := newFakeRecorder(poolItem("D-1", 0, 0, terrain.StatusNeedsScheduling))
	s := NewStore(rec, initialsDir{})
	s.Reconcile(rec.items())

	team, err := s.CreateTeam("2024-06-03", Selection{})
	require.NoError(t, err)

	rec.fail = true
	err = s.MoveItem(key, TeamRef{Day: "2024-06-03", TeamID: team.ID}, -1, false)
	require.Error(t, err)

	_, held := s.HoldingTeamOfItem(key)
	assert.False(t, held)
}

func TestMoveItemRejectsUnverified(t *testing.T) {
	pending := poolItem("D-1", 0, 0, terrain.StatusPendingVerification)
	excluded := poolItem("D-2", 0, 0, terrain.StatusNotApplicable)
	rec := newFakeRecorder(pending, excluded)
	s := NewStore(rec, initialsDir{})
	s.Reconcile(rec.items())

	team, err := s.CreateTeam("2024-06-03", Selection{})
	require.NoError(t, err)
	to := TeamRef{Day: "2024-06-03", TeamID: team.ID}

	assert.Error(t, s.MoveItem(pending.Key, to, -1, false))
	assert.Error(t, s.MoveItem(excluded.Key, to, -1, false))
	assert.Error(t, s.MoveItem(terrain.ItemKey{DossierID: "D-9"}, to, -1, false))
}

func TestMoveItemOrdering(t *testing.T) {
	rec := newFakeRecorder(
		poolItem("D-1", 0, 0, terrain.StatusNeedsScheduling),
		poolItem("D-2", 0, 0, terrain.StatusNeedsScheduling),
		poolItem("D-3", 0, 0, terrain.StatusNeedsScheduling),
	)
	s := NewStore(rec, initialsDir{})
	s.Reconcile(rec.items())

	team, err := s.CreateTeam("2024-06-03", Selection{})
	require.NoError(t, err)
	to := TeamRef{Day: "2024-06-03", TeamID: team.ID}

	k1 := terrain.ItemKey{DossierID: "D-1"}
	k2 := terrain.ItemKey{DossierID: "D-2"}
	k3 := terrain.ItemKey{DossierID: "D-3"}
	require.NoError(t, s.MoveItem(k1, to, -1, false))
	require.NoError(t, s.MoveItem(k2, to, -1, false))
	require.NoError(t, s.MoveItem(k3, to, 0, false))

	teams := s.Teams("2024-06-03")
	require.Len(t, teams, 1)
	assert.Equal(t, []terrain.ItemKey{k3, k1, k2}, teams[0].Items)

	// reorder within the same team
	require.NoError(t, s.MoveItem(k2, to, 0, false))
	teams = s.Teams("2024-06-03")
	assert.Equal(t, []terrain.ItemKey{k2, k3, k1}, teams[0].Items)
}

func TestMoveItemAppointmentCrossDayTwoPhase(t *testing.T) {
	key := terrain.ItemKey{DossierID: "D-1", Mandate: 0, Visit: 0}
	it := poolItem("D-1", 0, 0, terrain.StatusNeedsScheduling)
	it.HasAppointment = true
	it.AppointmentDate = "2024-06-03"
	it.AppointmentTime = "09:00"
	rec := newFakeRecorder(it)
	s := NewStore(rec, initialsDir{})
	s.Reconcile(rec.items())

	a, err := s.CreateTeam("2024-06-03", Selection{})
	require.NoError(t, err)
	b, err := s.CreateTeam("2024-06-04", Selection{})
	require.NoError(t, err)

	// first placement has no current day, so no confirmation
	require.NoError(t, s.MoveItem(key, TeamRef{Day: "2024-06-03", TeamID: a.ID}, -1, false))

	err = s.MoveItem(key, TeamRef{Day: "2024-06-04", TeamID: b.ID}, -1, false)
	var confirm *ConfirmationRequired
	require.ErrorAs(t, err, &confirm)
	assert.Equal(t, "2024-06-03", confirm.AppointmentDate)
	assert.Equal(t, b.Name, confirm.TeamName)

	name, ok := s.HoldingTeamOfItem(key)
	require.True(t, ok)
	assert.Equal(t, a.Name, name, "refused move must leave the item in place")
	assert.Equal(t, "2024-06-03", rec.record(key).Scheduled.Day)

	// second phase with confirmation granted
	require.NoError(t, s.MoveItem(key, TeamRef{Day: "2024-06-04", TeamID: b.ID}, -1, true))
	day, ok := s.DayOfItem(key)
	require.True(t, ok)
	assert.Equal(t, "2024-06-04", day)
	assert.Equal(t, b.Name, rec.record(key).Scheduled.TeamName)
}

func TestMoveItemSameDayNeedsNoConfirmation(t *testing.T) {
	key := terrain.ItemKey{DossierID: "D-1", Mandate: 0, Visit: 0}
	it := poolItem("D-1", 0, 0, terrain.StatusNeedsScheduling)
	it.HasAppointment = true
	it.AppointmentDate = "2024-06-03"
	rec := newFakeRecorder(it)
	s := NewStore(rec, initialsDir{})
	s.Reconcile(rec.items())

	a, err := s.CreateTeam("2024-06-03", Selection{})
	require.NoError(t, err)
	b, err := s.CreateTeam("2024-06-03", Selection{})
	require.NoError(t, err)

	require.NoError(t, s.MoveItem(key, TeamRef{Day: "2024-06-03", TeamID: a.ID}, -1, false))
	require.NoError(t, s.MoveItem(key, TeamRef{Day: "2024-06-03", TeamID: b.ID}, -1, false))

	name, ok := s.HoldingTeamOfItem(key)
	require.True(t, ok)
	assert.Equal(t, b.Name, name)
}

func TestUnscheduleItemRoundTrip(t *testing.T) {
	key := terrain.ItemKey{DossierID: "D-1", Mandate: 0, Visit: 0}
	rec := newFakeRecorder(poolItem("D-1", 0, 0, terrain.StatusNeedsScheduling))
	s := NewStore(rec, initialsDir{})
	s.Reconcile(rec.items())

	team, err := s.CreateTeam("2024-06-03", Selection{})
	require.NoError(t, err)
	require.NoError(t, s.MoveItem(key, TeamRef{Day: "2024-06-03", TeamID: team.ID}, -1, false))
	require.NoError(t, s.UnscheduleItem(key))

	got := rec.record(key)
	assert.Nil(t, got.Scheduled)
	assert.Equal(t, terrain.StatusNeedsScheduling, got.Status)
	_, held := s.HoldingTeamOfItem(key)
	assert.False(t, held)
}

func TestSetVerdict(t *testing.T) {
	key := terrain.ItemKey{DossierID: "D-1", Mandate: 0, Visit: 0}
	rec := newFakeRecorder(poolItem("D-1", 0, 0, terrain.StatusPendingVerification))
	s := NewStore(rec, initialsDir{})
	s.Reconcile(rec.items())

	assert.Error(t, s.SetVerdict(key, terrain.StatusPendingVerification), "cannot revert to pending")

	require.NoError(t, s.SetVerdict(key, terrain.StatusNotApplicable))
	assert.Equal(t, terrain.StatusNotApplicable, rec.record(key).Status)

	// not_applicable is permanent
	assert.Error(t, s.SetVerdict(key, terrain.StatusNeedsScheduling))
}

func TestSetVerdictPullsScheduledItemOffBoard(t *testing.T) {
	key := terrain.ItemKey{DossierID: "D-1", Mandate: 0, Visit: 0}
	rec := newFakeRecorder(poolItem("D-1", 0, 0, terrain.StatusNeedsScheduling))
	s := NewStore(rec, initialsDir{})
	s.Reconcile(rec.items())

	team, err := s.CreateTeam("2024-06-03", Selection{})
	require.NoError(t, err)
	require.NoError(t, s.MoveItem(key, TeamRef{Day: "2024-06-03", TeamID: team.ID}, -1, false))

	require.NoError(t, s.SetVerdict(key, terrain.StatusNotApplicable))
	_, held := s.HoldingTeamOfItem(key)
	assert.False(t, held)
	assert.Nil(t, rec.record(key).Scheduled)
}
