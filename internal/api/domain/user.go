package domain

import "time"

type User struct {
	ID         string
	FirstName  string
	LastName   string
	Email      string
	Username   string
	JobTitle   string
	Department string
	Roles      []string
	CustomerID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
