package resources

import (
	"context"
	"net/http"
	"sync"
	"time"

	"cadastra/db"
	"cadastra/models"
	"cadastra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Roster reads. Technicians, vehicles and equipment are owned by the fleet
// side of the application; the board only lists them and references ids.

func GetTechnicians(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var techs []models.Technician
	if err := findAll(r.Context(), db.TechniciansCollection, &techs); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"technicians": techs})
}

func GetVehicles(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var vehicles []models.Vehicle
	if err := findAll(r.Context(), db.VehiclesCollection, &vehicles); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"vehicles": vehicles})
}

func GetEquipment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var equipment []models.Equipment
	if err := findAll(r.Context(), db.EquipmentCollection, &equipment); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"equipment": equipment})
}

func findAll(ctx context.Context, coll *mongo.Collection, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cur, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	defer cur.Close(ctx)
	return cur.All(ctx, out)
}

// Directory resolves technician ids to initials for team naming. Lookups are
// cached for the life of the process; roster edits are rare compared to
// board reads.
type Directory struct {
	mu    sync.Mutex
	cache map[string]string
}

func NewDirectory() *Directory {
	return &Directory{cache: make(map[string]string)}
}

func (d *Directory) TechnicianInitials(id string) string {
	d.mu.Lock()
	if ini, ok := d.cache[id]; ok {
		d.mu.Unlock()
		return ini
	}
	d.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var t models.Technician
	if err := db.TechniciansCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return ""
	}
	ini := utils.Initials(t.FirstName, t.LastName)

	d.mu.Lock()
	d.cache[id] = ini
	d.mu.Unlock()
	return ini
}
