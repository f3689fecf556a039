package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/valyala/fasthttp"

	"github.com/srimathim2003/Employee-Management/internal/dto"
)

// @Summary Создать сотрудника
// @Tags    Employees
// @Accept  json
// @Produce json
// @Param   request body dto.EmployeeView true "Сотрудник (id игнорируется)"
// @Success 201 {object} dto.EmployeeView
// @Failure 400 {object} errorResponse "invalid json / required field 'email'"
// @Failure 409 {object} errorResponse "employee with this email already exists"
// @Failure 500 {object} errorResponse "Внутренняя ошибка"
// @Router  /employees [post]
func (s *Service) createEmployee(ctx *fasthttp.RequestCtx) {
	var req dto.EmployeeView
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Errorf("json.Unmarshal: %w", err))
		return
	}

	if err := validateEmployee(req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err)
		return
	}

	out, err := s.employees.CreateEmployee(ctx, req)
	if err != nil {
		s.writeServiceError(ctx, 0, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusCreated, out)
}

// @Summary Получить сотрудника по id
// @Tags    Employees
// @Produce json
// @Param   id path int true "Идентификатор сотрудника"
// @Success 200 {object} dto.EmployeeView
// @Failure 400 {object} errorResponse "invalid id"
// @Failure 404 {object} errorResponse "employee not found"
// @Failure 500 {object} errorResponse "Внутренняя ошибка"
// @Router  /employees/{id} [get]
func (s *Service) getEmployee(ctx *fasthttp.RequestCtx) {
	id, err := employeeID(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err)
		return
	}

	out, err := s.employees.GetEmployeeByID(ctx, id)
	if err != nil {
		s.writeServiceError(ctx, id, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, out)
}

// @Summary Список сотрудников
// @Tags    Employees
// @Produce json
// @Success 200 {array} dto.EmployeeView
// @Failure 500 {object} errorResponse "Внутренняя ошибка"
// @Router  /employees [get]
func (s *Service) listEmployees(ctx *fasthttp.RequestCtx) {
	rows, err := s.employees.GetAllEmployees(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("employees.GetAllEmployees: %w", err))
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, rows)
}

// @Summary Обновить сотрудника
// @Tags    Employees
// @Accept  json
// @Produce json
// @Param   id      path int              true "Идентификатор сотрудника"
// @Param   request body dto.EmployeeView true "Все поля перезаписываются, отсутствующие очищаются"
// @Success 200 {object} dto.EmployeeView
// @Failure 400 {object} errorResponse "invalid id / invalid json / required field 'email'"
// @Failure 404 {object} errorResponse "employee not found"
// @Failure 409 {object} errorResponse "employee with this email already exists"
// @Failure 500 {object} errorResponse "Внутренняя ошибка"
// @Router  /employees/{id} [put]
func (s *Service) updateEmployee(ctx *fasthttp.RequestCtx) {
	id, err := employeeID(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err)
		return
	}

	var req dto.EmployeeView
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Errorf("json.Unmarshal: %w", err))
		return
	}

	if err := validateEmployee(req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err)
		return
	}

	out, err := s.employees.UpdateEmployee(ctx, id, req)
	if err != nil {
		s.writeServiceError(ctx, id, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, out)
}

// @Summary Удалить сотрудника
// @Tags    Employees
// @Param   id path int true "Идентификатор сотрудника"
// @Success 204
// @Failure 400 {object} errorResponse "invalid id"
// @Failure 404 {object} errorResponse "employee not found"
// @Failure 500 {object} errorResponse "Внутренняя ошибка"
// @Router  /employees/{id} [delete]
func (s *Service) deleteEmployee(ctx *fasthttp.RequestCtx) {
	id, err := employeeID(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err)
		return
	}

	if err := s.employees.DeleteEmployee(ctx, id); err != nil {
		s.writeServiceError(ctx, id, err)
		return
	}

	ctx.SetStatusCode(fasthttp.StatusNoContent)
}

func (s *Service) writeServiceError(ctx *fasthttp.RequestCtx, id int64, err error) {
	switch {
	case errors.Is(err, dto.ErrNotFound):
		writeError(ctx, fasthttp.StatusNotFound, fmt.Errorf("%w with id: %d", ErrEmployeeNotFound, id))
	case errors.Is(err, dto.ErrAlreadyExists):
		writeError(ctx, fasthttp.StatusConflict, ErrEmailAlreadyExists)
	default:
		writeError(ctx, fasthttp.StatusInternalServerError, err)
	}
}

func employeeID(ctx *fasthttp.RequestCtx) (int64, error) {
	raw, _ := ctx.UserValue("id").(string)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrEmployeeIDInvalid
	}

	return id, nil
}
