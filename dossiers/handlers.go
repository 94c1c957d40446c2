package dossiers

import (
	"encoding/json"
	"net/http"

	"cadastra/models"
	"cadastra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// Thin read/update surface. Full dossier CRUD lives with the office side of
// the application; the board only needs to list records and accept the
// out-of-band mandate edits that reconciliation repairs around.

func GetDossiers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	dossiers, err := LoadAll(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"dossiers": dossiers})
}

func GetDossier(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing id")
		return
	}

	var d models.Dossier
	if err := findOne(r, bson.M{"_id": id}, &d); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "dossier not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"dossier": d})
}

// UpdateMandates is the external-edit path: collaborators can rewrite a
// dossier's mandate array outside the board. The board converges on the next
// reconciliation pass.
func UpdateMandates(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing id")
		return
	}

	var body struct {
		Mandats []models.Mandate `json:"mandats"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := UpdateCaseMandates(r.Context(), id, body.Mandats); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}
