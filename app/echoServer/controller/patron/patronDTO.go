package patron

import (
	"fmt"
	"time"

	"github.com/mawule-gabriel/TestingLibrary/model"
)

type CreatePatronReq struct {
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	MembershipDate string `json:"membership_date"`
}

func (r CreatePatronReq) toModel() (*model.Patron, error) {
	p := &model.Patron{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Address:   r.Address,
	}
	if r.MembershipDate != "" {
		d, err := time.Parse("2006-01-02", r.MembershipDate)
		if err != nil {
			return nil, fmt.Errorf("invalid membership_date: %w", err)
		}
		p.MembershipDate = d
	}
	return p, nil
}

type UpdateAddressReq struct {
	Address string `json:"address" validate:"required"`
}
