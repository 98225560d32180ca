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
	BlogsCollection *mongo.Collection
	TeamsCollection *mongo.Collection
	UserCollection  *mongo.Collection
	Client          *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	BlogsCollection = Client.Database("blogdb").Collection("blogs")
	TeamsCollection = Client.Database("blogdb").Collection("teams")
	UserCollection = Client.Database("blogdb").Collection("users")
}
