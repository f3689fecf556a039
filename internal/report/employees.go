// Package report renders the employee list as a spreadsheet.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/srimathim2003/Employee-Management/internal/dto"
)

const (
	SheetName   = "Employees"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var header = []any{
	"ID", "First name", "Last name", "Email", "Phone", "Department", "Position", "Date of joining", "Salary",
}

// WriteEmployees writes one header row and one row per employee, in the given order.
func WriteEmployees(w io.Writer, employees []dto.EmployeeView) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("f.SetSheetName: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("f.SetSheetRow header: %w", err)
	}

	for i, e := range employees {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("excelize.CoordinatesToCellName: %w", err)
		}

		row := []any{
			int64OrEmpty(e.ID),
			strOrEmpty(e.FirstName),
			strOrEmpty(e.LastName),
			e.Email,
			strOrEmpty(e.Phone),
			strOrEmpty(e.Department),
			strOrEmpty(e.Position),
			dateOrEmpty(e.DateOfJoining),
			floatOrEmpty(e.Salary),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("f.SetSheetRow %s: %w", cell, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("f.WriteTo: %w", err)
	}

	return nil
}

func strOrEmpty(p *string) any {
	if p == nil {
		return ""
	}
	return *p
}

func int64OrEmpty(p *int64) any {
	if p == nil {
		return ""
	}
	return *p
}

func floatOrEmpty(p *float64) any {
	if p == nil {
		return ""
	}
	return *p
}

func dateOrEmpty(d *dto.Date) any {
	if d == nil {
		return ""
	}
	return d.String()
}
