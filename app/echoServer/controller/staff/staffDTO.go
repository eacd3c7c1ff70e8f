package staff

import (
	"fmt"
	"time"

	"github.com/mawule-gabriel/TestingLibrary/model"
)

type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateStaffReq struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Role      string `json:"role" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,min=10"`
	HireDate  string `json:"hire_date" validate:"required"`
	Password  string `json:"password" validate:"required,min=6"`
}

func (r CreateStaffReq) toModel() (*model.Staff, error) {
	hire, err := time.Parse("2006-01-02", r.HireDate)
	if err != nil {
		return nil, fmt.Errorf("invalid hire_date: %w", err)
	}
	return &model.Staff{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Role:      r.Role,
		Email:     r.Email,
		Phone:     r.Phone,
		HireDate:  hire,
	}, nil
}
