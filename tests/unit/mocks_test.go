package unit

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"homestay-backend/internal/domain"
	"homestay-backend/internal/repository"
)

// MockPropertyRepo
type MockPropertyRepo struct {
	mock.Mock
}

func (m *MockPropertyRepo) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) Update(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) ListActiveByProperty(ctx context.Context, propertyID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByRenter(ctx context.Context, renterID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, renterID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListByHost(ctx context.Context, hostID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, hostID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) WithPropertyLock(ctx context.Context, propertyID int64, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, propertyID, mock.Anything)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}
func (m *MockBookingRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, mock.Anything)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, queue string, event any) error {
	args := m.Called(ctx, queue, event)
	return args.Error(0)
}
func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// memStore is an in-memory BookingRepository and PropertyRepository with real
// per-property mutual exclusion, used for lifecycle and concurrency tests
// where a call-expectation mock would obscure the behavior under test.
type memStore struct {
	mu         sync.Mutex
	nextID     int64
	bookings   map[int64]*domain.Booking
	properties map[int64]*domain.Property
	propLocks  map[int64]*sync.Mutex
}

func newMemStore(properties ...*domain.Property) *memStore {
	s := &memStore{
		nextID:     1,
		bookings:   make(map[int64]*domain.Booking),
		properties: make(map[int64]*domain.Property),
		propLocks:  make(map[int64]*sync.Mutex),
	}
	for _, p := range properties {
		s.properties[p.ID] = p
	}
	return s
}

func (s *memStore) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

// bookingStore adapts memStore to repository.BookingRepository; a separate
// type is needed because PropertyRepository.GetByID shares the method name.
type bookingStore struct {
	s *memStore
}

func (r *bookingStore) Create(ctx context.Context, b *domain.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b.ID = r.s.nextID
	r.s.nextID++
	cp := *b
	r.s.bookings[b.ID] = &cp
	return nil
}

func (r *bookingStore) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *bookingStore) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.GetByID(ctx, id)
}

func (r *bookingStore) Update(ctx context.Context, b *domain.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[b.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *b
	r.s.bookings[b.ID] = &cp
	return nil
}

func (r *bookingStore) ListActiveByProperty(ctx context.Context, propertyID int64) ([]domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Booking
	for _, b := range r.s.bookings {
		if b.PropertyID == propertyID && b.Status.IsActive() {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *bookingStore) listByParty(partyOf func(b *domain.Booking) int64, id int64, status string) []domain.Booking {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Booking
	for _, b := range r.s.bookings {
		if partyOf(b) != id {
			continue
		}
		if status != "" && string(b.Status) != status {
			continue
		}
		out = append(out, *b)
	}
	return out
}

func (r *bookingStore) ListByRenter(ctx context.Context, renterID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	out := r.listByParty(func(b *domain.Booking) int64 { return b.RenterID }, renterID, status)
	return out, int32(len(out)), nil
}

func (r *bookingStore) ListByHost(ctx context.Context, hostID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	out := r.listByParty(func(b *domain.Booking) int64 { return b.HostID }, hostID, status)
	return out, int32(len(out)), nil
}

func (r *bookingStore) WithPropertyLock(ctx context.Context, propertyID int64, fn func(ctx context.Context) error) error {
	r.s.mu.Lock()
	lock, ok := r.s.propLocks[propertyID]
	if !ok {
		lock = &sync.Mutex{}
		r.s.propLocks[propertyID] = lock
	}
	r.s.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()
	return fn(ctx)
}

func (r *bookingStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// recordingPublisher captures published events in order.
type recordingPublisher struct {
	mu     sync.Mutex
	queues []string
}

func (p *recordingPublisher) Publish(ctx context.Context, queue string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queues = append(p.queues, queue)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.queues...)
}
