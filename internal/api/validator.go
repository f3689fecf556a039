package api

import (
	"strings"

	"github.com/srimathim2003/Employee-Management/internal/dto"
)

// validateEmployee checks the only field the store cannot live without.
// Email uniqueness is left to the store.
func validateEmployee(v dto.EmployeeView) error {
	if strings.TrimSpace(v.Email) == "" {
		return ErrEmailRequired
	}

	return nil
}
