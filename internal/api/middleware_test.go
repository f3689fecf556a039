package api

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/srimathim2003/Employee-Management/internal/dto"
)

func TestCORS_Preflight(t *testing.T) {
	h := newTestAPI(t).Handler()

	resp := do(h, fasthttp.MethodOptions, "/api/employees/1", "",
		"Origin", "http://localhost:5173",
		"Access-Control-Request-Method", "PUT",
		"Access-Control-Request-Headers", "content-type,x-custom",
	)

	assert.Equal(t, fasthttp.StatusNoContent, resp.StatusCode())
	assert.Equal(t, "*", string(resp.Header.Peek("Access-Control-Allow-Origin")))
	assert.Equal(t, "GET,POST,PUT,DELETE,OPTIONS,PATCH", string(resp.Header.Peek("Access-Control-Allow-Methods")))
	assert.Equal(t, "content-type,x-custom", string(resp.Header.Peek("Access-Control-Allow-Headers")))
	assert.Equal(t, "3600", string(resp.Header.Peek("Access-Control-Max-Age")))
	assert.Empty(t, resp.Header.Peek("Access-Control-Allow-Credentials"))
}

func TestCORS_SimpleRequest(t *testing.T) {
	h := newTestAPI(t).Handler()

	resp := do(h, fasthttp.MethodGet, "/api/employees", "", "Origin", "http://example.org")

	assert.Equal(t, fasthttp.StatusOK, resp.StatusCode())
	assert.Equal(t, "*", string(resp.Header.Peek("Access-Control-Allow-Origin")))
	assert.Equal(t, "*", string(resp.Header.Peek("Access-Control-Allow-Headers")))
}

func TestLoggingMiddleware_RequestID(t *testing.T) {
	h := newTestAPI(t).Handler()

	resp := do(h, fasthttp.MethodGet, "/health", "", "X-Request-ID", "req-123")
	assert.Equal(t, "req-123", string(resp.Header.Peek("X-Request-ID")))

	resp = do(h, fasthttp.MethodGet, "/health", "")
	assert.Len(t, string(resp.Header.Peek("X-Request-ID")), 36)
}

type panickingService struct {
	EmployeeService
}

func (panickingService) GetAllEmployees(context.Context) ([]dto.EmployeeView, error) {
	panic("boom")
}

func TestRecoveryMiddleware(t *testing.T) {
	s := NewService(ServiceDeps{Employees: panickingService{}})

	resp := do(s.Handler(), fasthttp.MethodGet, "/api/employees", "")

	assert.Equal(t, fasthttp.StatusInternalServerError, resp.StatusCode())
}

type failingService struct {
	EmployeeService
}

func (failingService) GetAllEmployees(context.Context) ([]dto.EmployeeView, error) {
	return nil, errors.New("store.FindAll: connection refused")
}

func TestListEmployees_StoreFailure(t *testing.T) {
	s := NewService(ServiceDeps{Employees: failingService{}})

	resp := do(s.Handler(), fasthttp.MethodGet, "/api/employees", "")

	require.Equal(t, fasthttp.StatusInternalServerError, resp.StatusCode())
	assert.Contains(t, decode[errorResponse](t, resp).Message, "connection refused")
}

type stubEvents struct {
	events []dto.KafkaEvent
	dlq    []dto.KafkaDLQ
}

func (s stubEvents) ListEvents(context.Context) ([]dto.KafkaEvent, error) { return s.events, nil }
func (s stubEvents) ListDLQ(context.Context) ([]dto.KafkaDLQ, error)      { return s.dlq, nil }

func TestImportEndpoints(t *testing.T) {
	off := newTestAPI(t).Handler()
	assert.Equal(t, fasthttp.StatusNotImplemented, do(off, fasthttp.MethodGet, "/api/imports/events", "").StatusCode())
	assert.Equal(t, fasthttp.StatusNotImplemented, do(off, fasthttp.MethodGet, "/api/imports/dlq", "").StatusCode())

	on := NewService(ServiceDeps{
		Employees:  failingService{},
		EventsRepo: stubEvents{dlq: []dto.KafkaDLQ{{ID: 1, Topic: "hr.employees.import", Error: "invalid_json"}}},
	}).Handler()

	resp := do(on, fasthttp.MethodGet, "/api/imports/dlq", "")
	require.Equal(t, fasthttp.StatusOK, resp.StatusCode())
	dlq := decode[[]dto.KafkaDLQ](t, resp)
	require.Len(t, dlq, 1)
	assert.Equal(t, "invalid_json", dlq[0].Error)

	resp = do(on, fasthttp.MethodGet, "/api/imports/events", "")
	require.Equal(t, fasthttp.StatusOK, resp.StatusCode())
	assert.JSONEq(t, `null`, string(resp.Body()))
}
