package api

import (
	"context"
	"fmt"
	"time"

	"github.com/fasthttp/router"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"

	"github.com/srimathim2003/Employee-Management/internal/dto"
)

// @title           Employee Management API
// @version         1.0
// @description     CRUD по сотрудникам для фронтенда EMS.
//
// @BasePath  /api
// @schemes   http
// @accept    json
// @produce   json

type EmployeeService interface {
	CreateEmployee(ctx context.Context, in dto.EmployeeView) (dto.EmployeeView, error)
	GetEmployeeByID(ctx context.Context, id int64) (dto.EmployeeView, error)
	GetAllEmployees(ctx context.Context) ([]dto.EmployeeView, error)
	UpdateEmployee(ctx context.Context, id int64, in dto.EmployeeView) (dto.EmployeeView, error)
	DeleteEmployee(ctx context.Context, id int64) error
}

type EventsRepository interface {
	ListEvents(ctx context.Context) ([]dto.KafkaEvent, error)
	ListDLQ(ctx context.Context) ([]dto.KafkaDLQ, error)
}

type ServiceDeps struct {
	Port int

	Employees  EmployeeService
	EventsRepo EventsRepository // nil when the import consumer is off
}

type Service struct {
	r      *router.Router
	server *fasthttp.Server
	port   int

	employees EmployeeService
	events    EventsRepository
}

func NewService(d ServiceDeps) *Service {
	rt := router.New()

	s := &Service{
		r:         rt,
		port:      d.Port,
		employees: d.Employees,
		events:    d.EventsRepo,
	}

	s.mountRoutes()

	s.server = &fasthttp.Server{
		Handler:            s.Handler(),
		Name:               "ems-backend",
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       15 * time.Second,
		MaxRequestBodySize: 2 << 20, // 2 MiB
	}

	return s
}

// Handler is the full middleware chain around the router.
func (s *Service) Handler() fasthttp.RequestHandler {
	return RecoveryMiddleware(LoggingMiddleware(CORS(s.r.Handler)))
}

func (s *Service) Start(ctx context.Context) error {
	log.Info().Int("port", s.port).Msg("Starting employee API")

	emergencyShutdown := make(chan error, 1)
	go func() {
		emergencyShutdown <- s.server.ListenAndServe(fmt.Sprintf(":%d", s.port))
	}()

	select {
	case <-ctx.Done():
		return s.server.Shutdown()
	case e := <-emergencyShutdown:
		return e
	}
}

func (s *Service) mountRoutes() {
	// Employees
	s.r.POST("/api/employees", s.createEmployee)
	s.r.GET("/api/employees", s.listEmployees)
	s.r.GET("/api/employees/{id}", s.getEmployee)
	s.r.PUT("/api/employees/{id}", s.updateEmployee)
	s.r.DELETE("/api/employees/{id}", s.deleteEmployee)

	// Reports
	s.r.GET("/api/reports/employees.xlsx", s.exportEmployees)

	// Import consumer
	s.r.GET("/api/imports/events", s.listImportEvents)
	s.r.GET("/api/imports/dlq", s.listImportDLQ)

	// Health
	s.r.GET("/health", s.healthHandler)
}
