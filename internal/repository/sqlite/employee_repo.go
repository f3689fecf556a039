package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/srimathim2003/Employee-Management/internal/dto"
)

const dateLayout = dto.DateLayout

type EmployeeRepo struct {
	db *sql.DB
}

func NewEmployeeRepo(db *sql.DB) *EmployeeRepo {
	return &EmployeeRepo{db: db}
}

func (r *EmployeeRepo) Save(ctx context.Context, e dto.Employee) (dto.Employee, error) {
	if e.ID == 0 {
		res, err := r.db.ExecContext(ctx,
			`INSERT INTO employees (first_name, last_name, email, phone, department, position, date_of_joining, salary)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.FirstName, e.LastName, e.Email, e.Phone, e.Department, e.Position, dateValue(e.DateOfJoining), e.Salary,
		)
		if err != nil {
			return dto.Employee{}, mapErr("insert employee", err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return dto.Employee{}, fmt.Errorf("res.LastInsertId: %w", err)
		}
		e.ID = id

		return e, nil
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE employees
		 SET first_name = ?, last_name = ?, email = ?, phone = ?, department = ?, position = ?, date_of_joining = ?, salary = ?
		 WHERE id = ?`,
		e.FirstName, e.LastName, e.Email, e.Phone, e.Department, e.Position, dateValue(e.DateOfJoining), e.Salary, e.ID,
	)
	if err != nil {
		return dto.Employee{}, mapErr("update employee", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return dto.Employee{}, dto.ErrNotFound
	}

	return e, nil
}

func (r *EmployeeRepo) FindByID(ctx context.Context, id int64) (dto.Employee, bool, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email, phone, department, position, date_of_joining, salary
		 FROM employees WHERE id = ?`, id)

	e, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return dto.Employee{}, false, nil
	}
	if err != nil {
		return dto.Employee{}, false, err
	}

	return e, true, nil
}

func (r *EmployeeRepo) FindAll(ctx context.Context) ([]dto.Employee, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, first_name, last_name, email, phone, department, position, date_of_joining, salary
		 FROM employees ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	employees := make([]dto.Employee, 0)
	for rows.Next() {
		e, err := scan(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

func (r *EmployeeRepo) Delete(ctx context.Context, e dto.Employee) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, e.ID)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return dto.ErrNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (dto.Employee, error) {
	var (
		e      dto.Employee
		joined sql.NullString
		salary sql.NullFloat64
	)

	err := s.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Phone, &e.Department, &e.Position, &joined, &salary)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dto.Employee{}, err
		}
		return dto.Employee{}, fmt.Errorf("scan employee: %w", err)
	}

	if joined.Valid && joined.String != "" {
		t, err := time.Parse(dateLayout, joined.String)
		if err != nil {
			return dto.Employee{}, fmt.Errorf("parse date_of_joining %q: %w", joined.String, err)
		}
		e.DateOfJoining = &t
	}
	if salary.Valid {
		v := salary.Float64
		e.Salary = &v
	}

	return e, nil
}

func dateValue(t *time.Time) any {
	if t == nil {
		return nil
	}

	return t.Format(dateLayout)
}

func mapErr(op string, err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return dto.ErrAlreadyExists
	}

	return fmt.Errorf("%s: %w", op, err)
}
