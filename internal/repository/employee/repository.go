package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/srimathim2003/Employee-Management/internal/dto"
)

const uniqueViolation = "23505"

type PgxPoolIface interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Repository struct {
	pool PgxPoolIface
}

func NewRepository(pool PgxPoolIface) *Repository {
	return &Repository{pool: pool}
}

// Save inserts e when it has no id yet, otherwise overwrites the stored row.
func (r *Repository) Save(ctx context.Context, e dto.Employee) (dto.Employee, error) {
	if e.ID == 0 {
		return r.insert(ctx, e)
	}

	return r.update(ctx, e)
}

func (r *Repository) insert(ctx context.Context, e dto.Employee) (dto.Employee, error) {
	query := `
insert into employees
  (first_name, last_name, email, phone, department, position, date_of_joining, salary)
values
  (@first_name, @last_name, @email, @phone, @department, @position, @date_of_joining, @salary)
returning id;
`
	args := pgx.NamedArgs{
		"first_name":      e.FirstName,
		"last_name":       e.LastName,
		"email":           e.Email,
		"phone":           e.Phone,
		"department":      e.Department,
		"position":        e.Position,
		"date_of_joining": e.DateOfJoining,
		"salary":          e.Salary,
	}

	row := r.pool.QueryRow(ctx, query, args)

	if err := row.Scan(&e.ID); err != nil {
		if isUniqueViolation(err) {
			return dto.Employee{}, dto.ErrAlreadyExists
		}

		return dto.Employee{}, fmt.Errorf("row.Scan: %w", err)
	}

	return e, nil
}

func (r *Repository) update(ctx context.Context, e dto.Employee) (dto.Employee, error) {
	query := `
update employees set
  first_name      = @first_name,
  last_name       = @last_name,
  email           = @email,
  phone           = @phone,
  department      = @department,
  position        = @position,
  date_of_joining = @date_of_joining,
  salary          = @salary
where id = @id;
`
	args := pgx.NamedArgs{
		"id":              e.ID,
		"first_name":      e.FirstName,
		"last_name":       e.LastName,
		"email":           e.Email,
		"phone":           e.Phone,
		"department":      e.Department,
		"position":        e.Position,
		"date_of_joining": e.DateOfJoining,
		"salary":          e.Salary,
	}

	tag, err := r.pool.Exec(ctx, query, args)
	if err != nil {
		if isUniqueViolation(err) {
			return dto.Employee{}, dto.ErrAlreadyExists
		}

		return dto.Employee{}, fmt.Errorf("pool.Exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dto.Employee{}, dto.ErrNotFound
	}

	return e, nil
}

// FindByID reports found=false for a missing id instead of an error.
func (r *Repository) FindByID(ctx context.Context, id int64) (dto.Employee, bool, error) {
	query := `
select id,
       first_name,
       last_name,
       email,
       phone,
       department,
       position,
       date_of_joining,
       salary
from employees
where id = $1;
`
	row := r.pool.QueryRow(ctx, query, id)

	out, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dto.Employee{}, false, nil
		}

		return dto.Employee{}, false, fmt.Errorf("row.Scan: %w", err)
	}

	return out, true, nil
}

func (r *Repository) FindAll(ctx context.Context) ([]dto.Employee, error) {
	query := `
select id,
       first_name,
       last_name,
       email,
       phone,
       department,
       position,
       date_of_joining,
       salary
from employees
order by id
`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	out := make([]dto.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return out, nil
}

func (r *Repository) Delete(ctx context.Context, e dto.Employee) error {
	query := `delete from employees where id = $1`

	tag, err := r.pool.Exec(ctx, query, e.ID)
	if err != nil {
		return fmt.Errorf("pool.Exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dto.ErrNotFound
	}

	return nil
}

func scanEmployee(row pgx.Row) (dto.Employee, error) {
	var e dto.Employee

	err := row.Scan(
		&e.ID,
		&e.FirstName,
		&e.LastName,
		&e.Email,
		&e.Phone,
		&e.Department,
		&e.Position,
		&e.DateOfJoining,
		&e.Salary,
	)

	return e, err
}

func isUniqueViolation(err error) bool {
	var pgerr *pgconn.PgError
	return errors.As(err, &pgerr) && pgerr.Code == uniqueViolation
}
