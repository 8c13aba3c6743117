package auth

import "time"

type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username     string    `gorm:"not null;uniqueIndex" json:"username"`
	Email        *string   `gorm:"uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FullName     string    `json:"full_name"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }

// CurrentUser is the public view of the logged-in user.
type CurrentUser struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	FullName        string `json:"full_name"`
	IsAuthenticated bool   `json:"is_authenticated"`
}

func (u User) Current() CurrentUser {
	c := CurrentUser{ID: u.ID, Username: u.Username, FullName: u.FullName, IsAuthenticated: true}
	if u.Email != nil {
		c.Email = *u.Email
	}
	return c
}
