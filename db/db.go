package db

import (
	"context"
	"fmt"
	"time"

	"medibook/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client                *mongo.Client
	UserCollection        *mongo.Collection
	DoctorCollection      *mongo.Collection
	AdminCollection       *mongo.Collection
	AppointmentCollection *mongo.Collection
)

// Connect establishes the MongoDB connection and binds the collection
// handles. The connection is verified with a ping before returning.
func Connect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.MongoURI)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping mongodb: %w", err)
	}

	Client = client
	database := client.Database(config.MongoDB)
	UserCollection = database.Collection("users")
	DoctorCollection = database.Collection("doctors")
	AdminCollection = database.Collection("admins")
	AppointmentCollection = database.Collection("appointments")
	return nil
}

// Close tears down the client connection on shutdown.
func Close(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}
