// model/patron.go
package model

import "time"

type Patron struct {
	ID             int64     `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	MembershipDate time.Time `json:"membership_date"`
}
