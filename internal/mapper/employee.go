// Package mapper converts between the stored employee and its API view.
package mapper

import (
	"github.com/srimathim2003/Employee-Management/internal/dto"
)

func ToView(e dto.Employee) dto.EmployeeView {
	id := e.ID

	v := dto.EmployeeView{
		ID:         &id,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		Phone:      e.Phone,
		Department: e.Department,
		Position:   e.Position,
		Salary:     e.Salary,
	}
	if e.DateOfJoining != nil {
		d := dto.NewDate(*e.DateOfJoining)
		v.DateOfJoining = &d
	}

	return v
}

// ToEntity never copies the id: identifiers are assigned by the store.
func ToEntity(v dto.EmployeeView) dto.Employee {
	e := dto.Employee{
		FirstName:  v.FirstName,
		LastName:   v.LastName,
		Email:      v.Email,
		Phone:      v.Phone,
		Department: v.Department,
		Position:   v.Position,
		Salary:     v.Salary,
	}
	if v.DateOfJoining != nil && !v.DateOfJoining.IsZero() {
		t := v.DateOfJoining.Time
		e.DateOfJoining = &t
	}

	return e
}

func ToViews(in []dto.Employee) []dto.EmployeeView {
	out := make([]dto.EmployeeView, 0, len(in))
	for _, e := range in {
		out = append(out, ToView(e))
	}

	return out
}
