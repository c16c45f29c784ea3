// Package mongodb owns the process-lifetime connection to the document store
// and the identifier checks shared by every collection-backed service.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrUnavailable is returned by any service operation invoked before the
// database handle is ready.
var ErrUnavailable = errors.New("database connection not available")

func Connect(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100).
		SetMinPoolSize(5)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}
	return client.Database(dbName), nil
}

func Disconnect(ctx context.Context, db *mongo.Database) {
	if db == nil {
		return
	}
	_ = db.Client().Disconnect(ctx)
}

// ValidID reports whether s is a syntactically valid ObjectID (24 hex chars).
// It never errors; callers reject bad IDs before any database call.
func ValidID(s string) bool {
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}

// MustID converts a pre-validated hex string. Call ValidID first.
func MustID(s string) primitive.ObjectID {
	id, _ := primitive.ObjectIDFromHex(s)
	return id
}
