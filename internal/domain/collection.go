package domain

import "time"

// Collection is the single GORM-mapped row type used by the SQLite store
// backend. Each row holds one whole persisted collection (users, bookings,
// passwords, current_user, idempotency) as a JSON document; every write
// replaces the document in full.
type Collection struct {
	Name      string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	Data      []byte    `gorm:"type:BLOB NOT NULL"`
	UpdatedAt time.Time `gorm:"type:DATETIME NOT NULL;autoUpdateTime"`
}

// TableName implements the GORM tabler interface.
func (Collection) TableName() string { return "collections" }
