package dossiers

import (
	"context"
	"fmt"
	"time"

	"cadastra/db"
	"cadastra/models"
	"cadastra/terrain"

	"go.mongodb.org/mongo-driver/bson"
)

// LoadAll reads the full dossier collection. The board treats this as its
// synchronous source of truth.
func LoadAll(ctx context.Context) ([]models.Dossier, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cur, err := db.DossiersCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var dossiers []models.Dossier
	if err := cur.All(ctx, &dossiers); err != nil {
		return nil, err
	}
	return dossiers, nil
}

// LoadWorkItems projects the collection into the current work-item pool.
func LoadWorkItems(ctx context.Context) ([]terrain.WorkItem, error) {
	dossiers, err := LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return terrain.ListWorkItems(dossiers), nil
}

// UpdateCaseMandates replaces a dossier's mandate array. This is the single
// write contract the scheduling core has with the record store.
func UpdateCaseMandates(ctx context.Context, dossierID string, mandats []models.Mandate) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := db.DossiersCollection.UpdateOne(ctx,
		bson.M{"_id": dossierID},
		bson.M{"$set": bson.M{"mandats": mandats, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("dossier %s not found", dossierID)
	}
	return nil
}

// Recorder pushes scheduling decisions onto the authoritative terrain-visit
// fields. It satisfies the board's write-back contract.
type Recorder struct{}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (Recorder) ApplyScheduling(key terrain.ItemKey, day, teamName string, status terrain.VerificationStatus) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var d models.Dossier
	if err := db.DossiersCollection.FindOne(ctx, bson.M{"_id": key.DossierID}).Decode(&d); err != nil {
		return fmt.Errorf("dossier %s: %w", key.DossierID, err)
	}
	if key.Mandate < 0 || key.Mandate >= len(d.Mandats) {
		return fmt.Errorf("dossier %s has no mandate %d", key.DossierID, key.Mandate)
	}
	m := &d.Mandats[key.Mandate]
	if key.Visit < 0 || key.Visit >= len(m.TerrainVisits) {
		return fmt.Errorf("dossier %s mandate %d has no visit %d", key.DossierID, key.Mandate, key.Visit)
	}

	v := &m.TerrainVisits[key.Visit]
	v.ScheduledDate = day
	v.AssignedTeamName = teamName
	v.VerificationStatus = string(status)

	return UpdateCaseMandates(ctx, key.DossierID, d.Mandats)
}
