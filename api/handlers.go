package api

import (
	"time"

	"github.com/medigital/site-backend/database"
	"github.com/medigital/site-backend/storage"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, blobs storage.BlobStore, backendPassword string, jwtSecret []byte, maxUploadBytes int64, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		authHandler:    newAuthHandler(backendPassword, jwtSecret),
		clientHandler:  newClientHandler(db.ClientRepo(), blobs),
		uploadHandler:  newUploadHandler(blobs, maxUploadBytes),
		storageHandler: newStorageHandler(blobs),
		healthHandler:  newHealthHandler(startupTime),
	}
}
