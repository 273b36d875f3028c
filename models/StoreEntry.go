package models

import (
	"time"
)

// StoreEntry is one JSON document of the key-value store. Entries are
// partitioned by namespace so several installations can share a database.
type StoreEntry struct {
	Namespace string    `gorm:"primaryKey;size:64" json:"namespace"`
	Key       string    `gorm:"primaryKey;column:entry_key;size:191" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
