package models

import (
	"encoding/json"
	"time"

	"github.com/teranos/tspoet/gotypes/testdata/common"
)

// Status is the lifecycle state of a user.
type Status string

const (
	StatusActive   Status = "active"
	StatusDisabled Status = "disabled"
)

// Base carries audit fields.
type Base struct {
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// User is a registered user.
type User struct {
	Base
	ID common.ID `json:"id"`
	// Display name shown in the UI.
	Name    string            `json:"name"`
	Status  Status            `json:"status"`
	Tags    []string          `json:"tags,omitempty"`
	Labels  map[string]string `json:"labels"`
	Avatar  []byte            `json:"avatar"`
	Extra   json.RawMessage   `json:"extra" tstype:"Record<string, unknown>,optional"`
	Score   float64           // trailing comment
	Ignored string            `json:"-"`
	secret  string
}

// UserPage is a page of users.
type UserPage = common.Page[User]

// Store is behaviour, not data.
type Store interface {
	Get(id common.ID) (*User, error)
}

type registry struct {
	users map[common.ID]*User
}
