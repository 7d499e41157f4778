package userservice

import (
	"database/sql"
	"time"

	"github.com/jletan/inkpost/internal/common"
)

type UserService struct {
	m  *DBModel
	mb common.MessageProducer
}

type DBModel struct {
	db *sql.DB
}

// User is an account document. The password hash is never serialized; API
// responses carry no credential material.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  Password  `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}

// UserCreatedEvent is the payload published on the user exchange after a
// successful signup. The mail service consumes it to send the welcome email.
type UserCreatedEvent struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
