package dossiers

import (
	"context"
	"net/http"
	"time"

	"cadastra/db"

	"go.mongodb.org/mongo-driver/bson"
)

func findOne(r *http.Request, filter bson.M, out interface{}) error {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	return db.DossiersCollection.FindOne(ctx, filter).Decode(out)
}
