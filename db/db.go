package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	DossiersCollection      *mongo.Collection
	TechniciansCollection   *mongo.Collection
	VehiclesCollection      *mongo.Collection
	EquipmentCollection     *mongo.Collection
	NotificationsCollection *mongo.Collection
	Client                  *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "cadastradb"
	}

	DossiersCollection = Client.Database(dbName).Collection("dossiers")
	TechniciansCollection = Client.Database(dbName).Collection("techniciens")
	VehiclesCollection = Client.Database(dbName).Collection("vehicules")
	EquipmentCollection = Client.Database(dbName).Collection("equipements")
	NotificationsCollection = Client.Database(dbName).Collection("notifications")
}
