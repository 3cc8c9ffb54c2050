package user

import "time"

// Profile defaults applied at registration when the optional fields are omitted.
const (
	DefaultName   = "Jacques-Yves Cousteau"
	DefaultAbout  = "Explorer"
	DefaultAvatar = "https://pictures.s3.yandex.net/resources/jacques-cousteau_1604399756.png"
)

// User represents a registered account. PasswordHash is excluded from JSON
// serialization unconditionally so it can never appear in a response payload.
type User struct {
	ID           string    `json:"_id"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	Name         string    `json:"name"`
	About        string    `json:"about"`
	Avatar       string    `json:"avatar"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Update carries a partial profile change. Nil fields are left untouched.
type Update struct {
	Name   *string
	About  *string
	Avatar *string
}
