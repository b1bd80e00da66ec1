package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

var (
	dbClient *mongo.Client
	dbOnce   sync.Once
)

func Connect() *mongo.Client {
	dbOnce.Do(func() {
		serverAPI := options.ServerAPI(options.ServerAPIVersion1)
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using system environment variables")
		}
		uri := os.Getenv("MONGODB_URI")
		opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)
		client, err := mongo.Connect(opts)
		if err != nil {
			panic(err)
		}
		// Send a ping to confirm a successful connection
		if err := client.Ping(context.TODO(), readpref.Primary()); err != nil {
			panic(err)
		}
		fmt.Println("Pinged your deployment. You successfully connected to MongoDB!")
		dbClient = client
	})
	return dbClient
}

func OpenCollection(collectionName string) *mongo.Collection {
	client := Connect()
	databaseName := os.Getenv("DATABASE_NAME")
	return client.Database(databaseName).Collection(collectionName)
}

// EnsureIndexes creates the unique indexes the handlers rely on for
// duplicate detection and public-id lookups.
func EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	specs := []struct {
		collection string
		keys       bson.D
		opts       *options.IndexOptionsBuilder
	}{
		{"users", bson.D{{Key: "email", Value: 1}}, unique},
		{"users", bson.D{{Key: "user_id", Value: 1}}, unique},
		{"artists", bson.D{{Key: "artist_id", Value: 1}}, unique},
		{"albums", bson.D{{Key: "album_id", Value: 1}}, unique},
		{"tracks", bson.D{{Key: "track_id", Value: 1}}, unique},
		{"favorites", bson.D{{Key: "favorite_id", Value: 1}}, unique},
		{"favorites", bson.D{
			{Key: "user_id", Value: 1},
			{Key: "category", Value: 1},
			{Key: "item_id", Value: 1},
		}, unique},
	}

	for _, s := range specs {
		_, err := OpenCollection(s.collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    s.keys,
			Options: s.opts,
		})
		if err != nil {
			return fmt.Errorf("create index on %s: %w", s.collection, err)
		}
	}
	return nil
}
