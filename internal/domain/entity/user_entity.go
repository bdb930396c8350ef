package entity

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the aggregate root for the user domain.
// Password holds a bcrypt hash; it is never serialized to clients.
// Tokens holds the active session tokens; revocation removes the entry.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	Tokens   []UserToken        `bson:"tokens" json:"-"`
}

// UserToken binds a capability label to a signed token string.
type UserToken struct {
	Access string `bson:"access" json:"access"`
	Token  string `bson:"token" json:"token"`
}

// HasToken reports whether the exact token string is still active.
func (u *User) HasToken(token string) bool {
	for _, t := range u.Tokens {
		if t.Token == token {
			return true
		}
	}
	return false
}
