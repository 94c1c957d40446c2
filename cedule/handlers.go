package cedule

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"cadastra/live"
	"cadastra/mq"
	"cadastra/terrain"
	"cadastra/utils"

	"github.com/julienschmidt/httprouter"
)

// ItemLoader fetches the current work-item pool from the record store.
type ItemLoader func(ctx context.Context) ([]terrain.WorkItem, error)

var (
	board     *Store
	hub       *live.Hub
	loadItems ItemLoader
)

// InitBoard wires the board singleton to its collaborators and restores the
// last snapshot before any request is served.
func InitBoard(rec Recorder, dir Directory, loader ItemLoader, h *live.Hub) *Store {
	board = NewStore(rec, dir)
	loadItems = loader
	hub = h
	board.LoadSnapshot()
	return board
}

// refresh reloads the dossier collection and reconciles before the request
// proceeds, so no move ever acts on stale membership.
func refresh(r *http.Request) ([]terrain.WorkItem, error) {
	items, err := loadItems(r.Context())
	if err != nil {
		return nil, err
	}
	board.Reconcile(items)
	return items, nil
}

func afterMutation(day, action, teamID string, evt mq.ScheduleEvent) {
	go board.SaveSnapshot()
	if hub != nil {
		hub.BroadcastDay(day, live.BoardEvent{Action: action, Day: day, TeamID: teamID})
	}
	go mq.Emit(evt)
}

func respondOpError(w http.ResponseWriter, err error) {
	var confirm *ConfirmationRequired
	if errors.As(err, &confirm) {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"ok":                false,
			"needsConfirmation": true,
			"context":           confirm,
		})
		return
	}
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		utils.RespondWithJSON(w, http.StatusConflict, utils.M{
			"ok":       false,
			"error":    conflict.Error(),
			"conflict": conflict,
		})
		return
	}
	utils.RespondWithError(w, http.StatusBadRequest, err.Error())
}

// GET /api/cedule/days/:day
func GetBoardDay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	day := ps.ByName("day")
	if err := validDay(day); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := refresh(r); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	teams := board.Teams(day)
	timings := make(map[string]Timing, len(teams))
	for _, t := range teams {
		if tm, err := board.TeamTiming(day, t.ID); err == nil {
			timings[t.ID] = tm
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"day": day, "teams": teams, "timings": timings})
}

// GET /api/cedule/pool
func GetPool(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	items, err := refresh(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"pendingVerification": terrain.PendingVerification(items),
		"needsScheduling":     terrain.NeedsScheduling(items),
		"scheduled":           terrain.Scheduled(items),
	})
}

// POST /api/cedule/days/:day/teams
func CreateTeamHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	day := ps.ByName("day")

	var sel Selection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if _, err := refresh(r); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	team, err := board.CreateTeam(day, sel)
	if err != nil {
		respondOpError(w, err)
		return
	}

	afterMutation(day, "team_created", team.ID, mq.ScheduleEvent{
		Kind:     "team_created",
		Day:      day,
		TeamName: team.Name,
		Message:  team.Name + " créée pour le " + day,
	})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "team": team})
}

// PUT /api/cedule/days/:day/teams/:teamid/roster
func UpdateRosterHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	day := ps.ByName("day")
	teamID := ps.ByName("teamid")

	var delta RosterDelta
	if err := json.NewDecoder(r.Body).Decode(&delta); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if _, err := refresh(r); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	team, err := board.UpdateTeamRoster(day, teamID, delta)
	if err != nil {
		respondOpError(w, err)
		return
	}

	afterMutation(day, "roster_updated", team.ID, mq.ScheduleEvent{
		Kind:     "roster_updated",
		Day:      day,
		TeamName: team.Name,
		Message:  "Composition de " + team.Name + " modifiée",
	})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "team": team})
}

// DELETE /api/cedule/days/:day/teams/:teamid?confirm=true
func RemoveTeamHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	day := ps.ByName("day")
	teamID := ps.ByName("teamid")
	confirmed := r.URL.Query().Get("confirm") == "true"

	if _, err := refresh(r); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	if err := board.RemoveTeam(day, teamID, confirmed); err != nil {
		respondOpError(w, err)
		return
	}

	afterMutation(day, "team_removed", teamID, mq.ScheduleEvent{
		Kind:    "team_removed",
		Day:     day,
		Message: "Équipe supprimée le " + day,
	})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// POST /api/cedule/days/:day/teams/:teamid/copy
func CopyTeamHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	day := ps.ByName("day")
	teamID := ps.ByName("teamid")

	if _, err := refresh(r); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	team, targetDay, err := board.CopyTeam(day, teamID)
	if err != nil {
		respondOpError(w, err)
		return
	}

	afterMutation(targetDay, "team_created", team.ID, mq.ScheduleEvent{
		Kind:     "team_created",
		Day:      targetDay,
		TeamName: team.Name,
		Message:  team.Name + " copiée au " + targetDay,
	})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "team": team, "day": targetDay})
}

// POST /api/cedule/moves/resource
func MoveResourceHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Resource ResourceRef `json:"resource"`
		From     *TeamRef    `json:"from,omitempty"`
		To       *TeamRef    `json:"to,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if _, err := refresh(r); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	if err := board.MoveResource(body.Resource, body.From, body.To); err != nil {
		respondOpError(w, err)
		return
	}

	day := ""
	teamID := ""
	if body.To != nil {
		day, teamID = body.To.Day, body.To.TeamID
	} else if body.From != nil {
		day, teamID = body.From.Day, body.From.TeamID
	}
	afterMutation(day, "resource_moved", teamID, mq.ScheduleEvent{
		Kind:    "resource_moved",
		Day:     day,
		Message: "Ressource réassignée le " + day,
	})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// POST /api/cedule/moves/item
func MoveItemHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Key       string  `json:"key"`
		To        TeamRef `json:"to"`
		Position  int     `json:"position"`
		Confirmed bool    `json:"confirmed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	key, err := terrain.ParseKey(body.Key)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := refresh(r); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	if err := board.MoveItem(key, body.To, body.Position, body.Confirmed); err != nil {
		respondOpError(w, err)
		return
	}

	afterMutation(body.To.Day, "item_moved", body.To.TeamID, mq.ScheduleEvent{
		Kind:      "item_moved",
		Day:       body.To.Day,
		DossierID: key.DossierID,
		Message:   "Visite terrain cédulée le " + body.To.Day,
	})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// POST /api/cedule/moves/unschedule
func UnscheduleHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	key, err := terrain.ParseKey(body.Key)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := refresh(r); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	day, _ := board.DayOfItem(key)

	if err := board.UnscheduleItem(key); err != nil {
		respondOpError(w, err)
		return
	}

	afterMutation(day, "item_unscheduled", "", mq.ScheduleEvent{
		Day:       day,
		Kind:      "item_unscheduled",
		DossierID: key.DossierID,
		Message:   "Visite terrain retirée de la cédule",
	})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// POST /api/cedule/verdict
func VerdictHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Key     string `json:"key"`
		Verdict string `json:"verdict"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	key, err := terrain.ParseKey(body.Key)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := refresh(r); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	if err := board.SetVerdict(key, terrain.VerificationStatus(body.Verdict)); err != nil {
		respondOpError(w, err)
		return
	}

	afterMutation("", "verdict_set", "", mq.ScheduleEvent{
		Kind:      "verdict_set",
		DossierID: key.DossierID,
		Message:   "Vérification terrain: " + body.Verdict,
	})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// GET /api/cedule/days/:day/teams/:teamid/timing
func TimingHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	day := ps.ByName("day")
	teamID := ps.ByName("teamid")

	if _, err := refresh(r); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	timing, err := board.TeamTiming(day, teamID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"timing": timing})
}
