package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/srimathim2003/Employee-Management/internal/dto"
	"github.com/srimathim2003/Employee-Management/internal/mapper"
)

type EmployeeStore interface {
	Save(ctx context.Context, e dto.Employee) (dto.Employee, error)
	FindByID(ctx context.Context, id int64) (dto.Employee, bool, error)
	FindAll(ctx context.Context) ([]dto.Employee, error)
	Delete(ctx context.Context, e dto.Employee) error
}

// EventPublisher is notified after a successful write.
type EventPublisher interface {
	ProduceCreated(ctx context.Context, v dto.EmployeeView) error
	ProduceUpdated(ctx context.Context, v dto.EmployeeView) error
	ProduceDeleted(ctx context.Context, id int64) error
}

const eventQueueSize = 256

type event struct {
	kind string
	id   int64
	send func(ctx context.Context, p EventPublisher) error
}

type EmployeeService struct {
	store     EmployeeStore
	publisher EventPublisher
	events    chan event
	log       zerolog.Logger
}

// NewEmployeeService builds the service; publisher may be nil.
// Events are delivered only while RunPublisher is running.
func NewEmployeeService(store EmployeeStore, publisher EventPublisher, log zerolog.Logger) *EmployeeService {
	return &EmployeeService{
		store:     store,
		publisher: publisher,
		events:    make(chan event, eventQueueSize),
		log:       log.With().Str("component", "EmployeeService").Logger(),
	}
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, in dto.EmployeeView) (dto.EmployeeView, error) {
	saved, err := s.store.Save(ctx, mapper.ToEntity(in))
	if err != nil {
		return dto.EmployeeView{}, fmt.Errorf("create employee email=%s: %w", in.Email, err)
	}

	out := mapper.ToView(saved)
	s.notify("created", saved.ID, func(ctx context.Context, p EventPublisher) error { return p.ProduceCreated(ctx, out) })

	return out, nil
}

func (s *EmployeeService) GetEmployeeByID(ctx context.Context, id int64) (dto.EmployeeView, error) {
	e, err := s.find(ctx, id)
	if err != nil {
		return dto.EmployeeView{}, err
	}

	return mapper.ToView(e), nil
}

func (s *EmployeeService) GetAllEmployees(ctx context.Context) ([]dto.EmployeeView, error) {
	all, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.FindAll: %w", err)
	}

	return mapper.ToViews(all), nil
}

// UpdateEmployee overwrites every mutable field with the values of in; absent fields are cleared.
// The id always comes from the stored record.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id int64, in dto.EmployeeView) (dto.EmployeeView, error) {
	current, err := s.find(ctx, id)
	if err != nil {
		return dto.EmployeeView{}, err
	}

	next := mapper.ToEntity(in)
	next.ID = current.ID

	saved, err := s.store.Save(ctx, next)
	if err != nil {
		return dto.EmployeeView{}, fmt.Errorf("update employee id=%d: %w", id, err)
	}

	out := mapper.ToView(saved)
	s.notify("updated", saved.ID, func(ctx context.Context, p EventPublisher) error { return p.ProduceUpdated(ctx, out) })

	return out, nil
}

func (s *EmployeeService) DeleteEmployee(ctx context.Context, id int64) error {
	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, current); err != nil {
		return fmt.Errorf("delete employee id=%d: %w", id, err)
	}

	s.notify("deleted", id, func(ctx context.Context, p EventPublisher) error { return p.ProduceDeleted(ctx, id) })

	return nil
}

func (s *EmployeeService) find(ctx context.Context, id int64) (dto.Employee, error) {
	e, found, err := s.store.FindByID(ctx, id)
	if err != nil {
		return dto.Employee{}, fmt.Errorf("store.FindByID id=%d: %w", id, err)
	}
	if !found {
		return dto.Employee{}, fmt.Errorf("employee not found with id: %d: %w", id, dto.ErrNotFound)
	}

	return e, nil
}

// notify queues the event and returns at once; a full queue drops the event.
func (s *EmployeeService) notify(kind string, id int64, send func(ctx context.Context, p EventPublisher) error) {
	if s.publisher == nil {
		return
	}

	select {
	case s.events <- event{kind: kind, id: id, send: send}:
	default:
		s.log.Warn().
			Str("kind", kind).
			Int64("employee_id", id).
			Msg("event queue is full, event dropped")
	}
}

// RunPublisher delivers queued events until ctx is done.
func (s *EmployeeService) RunPublisher(ctx context.Context) error {
	if s.publisher == nil {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			if n := len(s.events); n > 0 {
				s.log.Warn().Int("pending", n).Msg("publisher stopped with undelivered events")
			}
			return nil
		case ev := <-s.events:
			if err := ev.send(ctx, s.publisher); err != nil {
				s.log.Error().
					Err(err).
					Str("kind", ev.kind).
					Int64("employee_id", ev.id).
					Msg("failed to publish employee event")
			}
		}
	}
}
