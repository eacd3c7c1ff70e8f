// model/staff.go
package model

import "time"

type Staff struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         string    `json:"role"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	HireDate     time.Time `json:"hire_date"`
	PasswordHash string    `json:"-"`
}
