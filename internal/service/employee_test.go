package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srimathim2003/Employee-Management/internal/dto"
)

func ptr[T any](v T) *T { return &v }

type memStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]dto.Employee
	err    error
}

func newMemStore() *memStore {
	return &memStore{rows: map[int64]dto.Employee{}}
}

func (m *memStore) Save(_ context.Context, e dto.Employee) (dto.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return dto.Employee{}, m.err
	}
	for id, row := range m.rows {
		if row.Email == e.Email && id != e.ID {
			return dto.Employee{}, dto.ErrAlreadyExists
		}
	}
	if e.ID == 0 {
		m.nextID++
		e.ID = m.nextID
	} else if _, ok := m.rows[e.ID]; !ok {
		return dto.Employee{}, dto.ErrNotFound
	}
	m.rows[e.ID] = e

	return e, nil
}

func (m *memStore) FindByID(_ context.Context, id int64) (dto.Employee, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return dto.Employee{}, false, m.err
	}
	e, ok := m.rows[id]

	return e, ok, nil
}

func (m *memStore) FindAll(_ context.Context) ([]dto.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	out := make([]dto.Employee, 0, len(m.rows))
	for _, e := range m.rows {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (m *memStore) Delete(_ context.Context, e dto.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[e.ID]; !ok {
		return dto.ErrNotFound
	}
	delete(m.rows, e.ID)

	return nil
}

type recordingPublisher struct {
	mu      sync.Mutex
	created []dto.EmployeeView
	updated []dto.EmployeeView
	deleted []int64
	err     error
	delay   time.Duration
}

func (p *recordingPublisher) wait(ctx context.Context) error {
	if p.delay == 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.delay):
		return nil
	}
}

func (p *recordingPublisher) ProduceCreated(ctx context.Context, v dto.EmployeeView) error {
	if err := p.wait(ctx); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, v)
	return p.err
}

func (p *recordingPublisher) ProduceUpdated(ctx context.Context, v dto.EmployeeView) error {
	if err := p.wait(ctx); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updated = append(p.updated, v)
	return p.err
}

func (p *recordingPublisher) ProduceDeleted(ctx context.Context, id int64) error {
	if err := p.wait(ctx); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deleted = append(p.deleted, id)
	return p.err
}

func (p *recordingPublisher) snapshot() (created, updated []dto.EmployeeView, deleted []int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]dto.EmployeeView(nil), p.created...),
		append([]dto.EmployeeView(nil), p.updated...),
		append([]int64(nil), p.deleted...)
}

func (p *recordingPublisher) createdEvents() []dto.EmployeeView {
	c, _, _ := p.snapshot()
	return c
}

func (p *recordingPublisher) updatedEvents() []dto.EmployeeView {
	_, u, _ := p.snapshot()
	return u
}

func (p *recordingPublisher) deletedEvents() []int64 {
	_, _, d := p.snapshot()
	return d
}

func annView() dto.EmployeeView {
	return dto.EmployeeView{
		FirstName: ptr("Ann"),
		LastName:  ptr("Lee"),
		Email:     "ann@x.com",
		Salary:    ptr(50000.0),
	}
}

func newService(t *testing.T) (*EmployeeService, *memStore, *recordingPublisher) {
	t.Helper()

	store := newMemStore()
	pub := &recordingPublisher{}
	svc := NewEmployeeService(store, pub, zerolog.Nop())
	startPublisher(t, svc)

	return svc, store, pub
}

func startPublisher(t *testing.T, svc *EmployeeService) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = svc.RunPublisher(ctx)
	}()

	t.Cleanup(func() {
		cancel()
		<-done
	})
}

const eventWait = 2 * time.Second

func TestCreateEmployee(t *testing.T) {
	svc, _, pub := newService(t)
	ctx := context.Background()

	out, err := svc.CreateEmployee(ctx, annView())
	require.NoError(t, err)

	require.NotNil(t, out.ID)
	assert.Equal(t, int64(1), *out.ID)
	assert.Equal(t, "Ann", *out.FirstName)
	assert.Equal(t, "Lee", *out.LastName)
	assert.Equal(t, "ann@x.com", out.Email)
	assert.Equal(t, 50000.0, *out.Salary)

	require.Eventually(t, func() bool { return len(pub.createdEvents()) == 1 }, eventWait, 5*time.Millisecond)
	assert.Equal(t, out, pub.createdEvents()[0])
}

func TestCreateEmployee_IgnoresCallerID(t *testing.T) {
	svc, _, _ := newService(t)

	in := annView()
	in.ID = ptr(int64(99))

	out, err := svc.CreateEmployee(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), *out.ID)
}

func TestCreateEmployee_DuplicateEmail(t *testing.T) {
	svc, store, pub := newService(t)
	ctx := context.Background()

	_, err := svc.CreateEmployee(ctx, annView())
	require.NoError(t, err)

	_, err = svc.CreateEmployee(ctx, dto.EmployeeView{Email: "ann@x.com", FirstName: ptr("Other")})
	assert.ErrorIs(t, err, dto.ErrAlreadyExists)

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	require.Eventually(t, func() bool { return len(pub.createdEvents()) == 1 }, eventWait, 5*time.Millisecond)
}

func TestGetEmployeeByID(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	created, err := svc.CreateEmployee(ctx, annView())
	require.NoError(t, err)

	got, err := svc.GetEmployeeByID(ctx, *created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestGetEmployeeByID_NotFound(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.GetEmployeeByID(context.Background(), 42)

	assert.ErrorIs(t, err, dto.ErrNotFound)
	assert.Contains(t, err.Error(), "42")
}

func TestGetEmployeeByID_StoreFailure(t *testing.T) {
	svc, store, _ := newService(t)
	store.err = errors.New("connection refused")

	_, err := svc.GetEmployeeByID(context.Background(), 1)

	require.Error(t, err)
	assert.NotErrorIs(t, err, dto.ErrNotFound)
}

func TestGetAllEmployees(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	empty, err := svc.GetAllEmployees(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	created, err := svc.CreateEmployee(ctx, annView())
	require.NoError(t, err)

	all, err := svc.GetAllEmployees(ctx)
	require.NoError(t, err)
	assert.Equal(t, []dto.EmployeeView{created}, all)
}

func TestUpdateEmployee_FullOverwrite(t *testing.T) {
	svc, _, pub := newService(t)
	ctx := context.Background()

	joined := dto.NewDate(time.Date(2022, time.May, 2, 0, 0, 0, 0, time.UTC))
	in := annView()
	in.Department = ptr("Engineering")
	in.DateOfJoining = &joined

	created, err := svc.CreateEmployee(ctx, in)
	require.NoError(t, err)

	patch := dto.EmployeeView{
		ID:        ptr(int64(500)),
		FirstName: ptr("Anna"),
		Email:     "anna@x.com",
	}
	updated, err := svc.UpdateEmployee(ctx, *created.ID, patch)
	require.NoError(t, err)

	assert.Equal(t, *created.ID, *updated.ID)
	assert.Equal(t, "Anna", *updated.FirstName)
	assert.Equal(t, "anna@x.com", updated.Email)
	assert.Nil(t, updated.LastName)
	assert.Nil(t, updated.Department)
	assert.Nil(t, updated.DateOfJoining)
	assert.Nil(t, updated.Salary)

	got, err := svc.GetEmployeeByID(ctx, *created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	_, err = svc.GetEmployeeByID(ctx, 500)
	assert.ErrorIs(t, err, dto.ErrNotFound)

	require.Eventually(t, func() bool { return len(pub.updatedEvents()) == 1 }, eventWait, 5*time.Millisecond)
}

func TestUpdateEmployee_NotFound(t *testing.T) {
	svc, _, pub := newService(t)

	_, err := svc.UpdateEmployee(context.Background(), 42, annView())

	assert.ErrorIs(t, err, dto.ErrNotFound)
	assert.Empty(t, pub.updatedEvents())
}

func TestUpdateEmployee_EmailTaken(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateEmployee(ctx, annView())
	require.NoError(t, err)
	bob, err := svc.CreateEmployee(ctx, dto.EmployeeView{Email: "bob@x.com"})
	require.NoError(t, err)

	_, err = svc.UpdateEmployee(ctx, *bob.ID, dto.EmployeeView{Email: "ann@x.com"})
	assert.ErrorIs(t, err, dto.ErrAlreadyExists)
}

func TestDeleteEmployee(t *testing.T) {
	svc, _, pub := newService(t)
	ctx := context.Background()

	created, err := svc.CreateEmployee(ctx, annView())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEmployee(ctx, *created.ID))

	_, err = svc.GetEmployeeByID(ctx, *created.ID)
	assert.ErrorIs(t, err, dto.ErrNotFound)
	require.Eventually(t, func() bool { return len(pub.deletedEvents()) == 1 }, eventWait, 5*time.Millisecond)
	assert.Equal(t, []int64{*created.ID}, pub.deletedEvents())

	assert.ErrorIs(t, svc.DeleteEmployee(ctx, *created.ID), dto.ErrNotFound)
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	store := newMemStore()
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := NewEmployeeService(store, pub, zerolog.Nop())
	startPublisher(t, svc)

	out, err := svc.CreateEmployee(context.Background(), annView())

	require.NoError(t, err)
	assert.NotNil(t, out.ID)
}

func TestNilPublisher(t *testing.T) {
	svc := NewEmployeeService(newMemStore(), nil, zerolog.Nop())

	_, err := svc.CreateEmployee(context.Background(), annView())
	assert.NoError(t, err)
}

func TestSlowPublisherDoesNotDelayWrites(t *testing.T) {
	store := newMemStore()
	pub := &recordingPublisher{delay: 2 * time.Second}
	svc := NewEmployeeService(store, pub, zerolog.Nop())
	startPublisher(t, svc)
	ctx := context.Background()

	start := time.Now()
	created, err := svc.CreateEmployee(ctx, annView())
	require.NoError(t, err)
	_, err = svc.UpdateEmployee(ctx, *created.ID, annView())
	require.NoError(t, err)
	require.NoError(t, svc.DeleteEmployee(ctx, *created.ID))

	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestEventsQueuedUntilPublisherRuns(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewEmployeeService(newMemStore(), pub, zerolog.Nop())

	out, err := svc.CreateEmployee(context.Background(), annView())
	require.NoError(t, err)
	assert.Empty(t, pub.createdEvents())

	startPublisher(t, svc)

	require.Eventually(t, func() bool { return len(pub.createdEvents()) == 1 }, eventWait, 5*time.Millisecond)
	assert.Equal(t, out, pub.createdEvents()[0])
}

func TestFullQueueDropsEvents(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewEmployeeService(newMemStore(), pub, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < eventQueueSize+10; i++ {
		_, err := svc.CreateEmployee(ctx, dto.EmployeeView{Email: fmt.Sprintf("e%d@x.com", i)})
		require.NoError(t, err)
	}

	assert.Len(t, svc.events, eventQueueSize)
}

func TestRunPublisher_NilPublisher(t *testing.T) {
	svc := NewEmployeeService(newMemStore(), nil, zerolog.Nop())

	assert.NoError(t, svc.RunPublisher(context.Background()))
}
