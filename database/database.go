package database

import (
	"gorm.io/gorm"
)

type Database struct {
	clientRepo *ClientRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		clientRepo: NewClientRepo(db),
	}
}

func (d Database) ClientRepo() *ClientRepo {
	return d.clientRepo
}
