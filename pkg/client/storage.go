package client

import (
	"github.com/luikyv/go-cas/internal/storage"
	"github.com/luikyv/go-cas/internal/storage/mongodb"
	"github.com/luikyv/go-cas/pkg/gocas"
	"go.mongodb.org/mongo-driver/mongo"
)

//---------------------------------------- In Memory ----------------------------------------//

func NewInMemorySessionManager(maxSize int) gocas.SessionManager {
	return storage.NewSessionManager(maxSize)
}

func NewInMemorySessionRegistry() gocas.SessionRegistry {
	return storage.NewSessionRegistry()
}

func NewInMemoryProxyGrantingStore() gocas.ProxyGrantingStore {
	return storage.NewProxyGrantingStore()
}

//---------------------------------------- MongoDB ----------------------------------------//

func NewMongoDBSessionRegistry(database *mongo.Database) gocas.SessionRegistry {
	return mongodb.NewSessionRegistry(database)
}
