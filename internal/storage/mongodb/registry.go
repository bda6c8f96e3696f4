// Package mongodb provides a session registry backed by MongoDB, so ticket
// to session bindings survive restarts and are shared across instances.
package mongodb

import (
	"context"
	"errors"

	"github.com/luikyv/go-cas/pkg/gocas"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ gocas.SessionRegistry = SessionRegistry{}

type sessionBinding struct {
	SessionIndex string `bson:"_id"`
	SessionID    string `bson:"session_id"`
}

type SessionRegistry struct {
	Collection *mongo.Collection
}

func NewSessionRegistry(database *mongo.Database) SessionRegistry {
	return SessionRegistry{
		Collection: database.Collection("session_registry"),
	}
}

func (r SessionRegistry) Register(ctx context.Context, sessionIndex, sessionID string) error {
	shouldUpsert := true
	filter := bson.D{{Key: "_id", Value: sessionIndex}}
	binding := sessionBinding{SessionIndex: sessionIndex, SessionID: sessionID}
	if _, err := r.Collection.ReplaceOne(ctx, filter, binding,
		&options.ReplaceOptions{Upsert: &shouldUpsert}); err != nil {
		return err
	}

	return nil
}

func (r SessionRegistry) SessionID(ctx context.Context, sessionIndex string) (string, error) {
	filter := bson.D{{Key: "_id", Value: sessionIndex}}

	var binding sessionBinding
	if err := r.Collection.FindOne(ctx, filter).Decode(&binding); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil
		}
		return "", err
	}

	return binding.SessionID, nil
}

func (r SessionRegistry) Delete(ctx context.Context, sessionIndex string) error {
	filter := bson.D{{Key: "_id", Value: sessionIndex}}
	if _, err := r.Collection.DeleteOne(ctx, filter); err != nil {
		return err
	}

	return nil
}
