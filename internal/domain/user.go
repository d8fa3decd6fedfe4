package domain

import "time"

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Occupation   string    `json:"occupation"`
	CreatedOn    time.Time `json:"created_on"`
}
