package model

import "time"

type Account struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:255" json:"email"`
	Name      string    `json:"name"`
	Password  string    `json:"-"` // bcrypt hash
	CreatedAt time.Time `json:"created_at"`
}

// StateBlob holds one account's full planner state as a JSON document,
// overwritten whole on every mutation.
type StateBlob struct {
	Email     string    `gorm:"primaryKey;size:255"`
	Data      []byte    `gorm:"type:mediumblob"`
	UpdatedAt time.Time
}

func (Account) TableName() string   { return "accounts" }
func (StateBlob) TableName() string { return "state_blobs" }
