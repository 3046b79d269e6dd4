// Package models implements the document store.
//
// All application state is kept in named JSON documents. The store is a
// single sqlite table mapping a document key to its serialized content;
// everything above it works on in-memory documents and persists them back
// in one piece.
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DB is the database used by the backend.
var DB *gorm.DB

type CKContext string

const (
	// ContextURL is the context key for the base URL the API is served on.
	ContextURL CKContext = "coinkeeper-url"
)

// Document is one durably stored JSON document.
type Document struct {
	Key       string    `json:"key" gorm:"primaryKey"`                           // Name of the document
	Data      []byte    `json:"data"`                                            // The serialized document
	CreatedAt time.Time `json:"createdAt" example:"2024-04-02T19:28:44.491514Z"` // Time the document was first stored
	UpdatedAt time.Time `json:"updatedAt" example:"2024-04-17T20:14:01.048145Z"` // Last time the document was written
}

// Document keys. The whole installation state lives in these three
// documents.
const (
	KeyGoals        = "goals"
	KeyStats        = "user-stats"
	KeyAchievements = "achievements"
)

// Connect opens the sqlite database and configures the connection pool.
func Connect(dsn string) error {
	config := &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: &logger{
			Logger: log.Logger,
		},
	}

	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(Document{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// This is done to prevent SQLITE_BUSY errors.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	err = db.Callback().Query().After("*").Register("coinkeeper:after_query_general", generalCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Create().After("*").Register("coinkeeper:after_create_general", generalCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Update().After("*").Register("coinkeeper:after_update_general", generalCallback)
	if err != nil {
		return err
	}

	// Set the exported variable
	DB = db

	return nil
}

// Get reads the document stored under key into v. It reports whether a
// document exists; a missing document is not an error.
func Get(key string, v any) (bool, error) {
	var doc Document
	err := DB.First(&doc, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	err = json.Unmarshal(doc.Data, v)
	if err != nil {
		return false, fmt.Errorf("document %q is corrupted: %w", key, err)
	}

	return true, nil
}

// Put stores v as the document named key, replacing any previous content.
func Put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	doc := Document{Key: key, Data: data}
	return DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&doc).Error
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// "sql: database is closed" is hard-coded in the sql module, see
	// https://cs.opensource.google/go/go/+/master:src/database/sql/sql.go;l=1298;drc=0d018b49e33b1383dc0ae5cc968e800dffeeaf7d
	if db.Error.Error() == "sql: database is closed" || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) {
		// A general error where we cannot provide more useful information
		// to the end user. We log the error so that server admins can
		// debug.
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral

		return
	}
}
