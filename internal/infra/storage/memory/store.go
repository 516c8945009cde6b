package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Store хранилище в памяти процесса (storage.driver = "memory").
// Используется для локальной разработки и в тестах сценариев.
//
// Транзакция держит эксклюзивную блокировку хранилища до своего завершения,
// поэтому конкурентные транзакции выполняются строго последовательно.
// При ошибке состояние откатывается к снимку, снятому на старте транзакции.
type Store struct {
	mu sync.RWMutex

	calendars        map[uuid.UUID]*domain.Calendar
	appointmentTypes map[uuid.UUID]*domain.AppointmentType
	jobs             map[uuid.UUID]*domain.Job

	// порядок вставки для стабильной сортировки при равных created_at
	seq   int64
	order map[uuid.UUID]int64

	now func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		calendars:        make(map[uuid.UUID]*domain.Calendar),
		appointmentTypes: make(map[uuid.UUID]*domain.AppointmentType),
		jobs:             make(map[uuid.UUID]*domain.Job),
		order:            make(map[uuid.UUID]int64),
		now:              time.Now,
	}
}

// WithClock подменяет источник времени для created_at/updated_at
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

type txKey struct{}

type tx struct {
	store *Store
}

func (s *Store) inTx(ctx context.Context) bool {
	t, ok := ctx.Value(txKey{}).(*tx)
	return ok && t.store == s
}

// read выполняет fn под разделяемой блокировкой (внутри транзакции блокировка уже взята)
func (s *Store) read(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.inTx(ctx) {
		return fn()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn()
}

// write выполняет fn под эксклюзивной блокировкой (внутри транзакции блокировка уже взята)
func (s *Store) write(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.inTx(ctx) {
		return fn()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

func (s *Store) nextSeq(id uuid.UUID) {
	s.seq++
	s.order[id] = s.seq
}

type snapshot struct {
	calendars        map[uuid.UUID]*domain.Calendar
	appointmentTypes map[uuid.UUID]*domain.AppointmentType
	jobs             map[uuid.UUID]*domain.Job
	seq              int64
	order            map[uuid.UUID]int64
}

// Записи в картах не мутируются на месте: репозитории заменяют указатель
// на новую копию, поэтому для снимка достаточно поверхностного копирования карт.
func (s *Store) snapshot() snapshot {
	return snapshot{
		calendars:        maps.Clone(s.calendars),
		appointmentTypes: maps.Clone(s.appointmentTypes),
		jobs:             maps.Clone(s.jobs),
		seq:              s.seq,
		order:            maps.Clone(s.order),
	}
}

func (s *Store) restore(snap snapshot) {
	s.calendars = snap.calendars
	s.appointmentTypes = snap.appointmentTypes
	s.jobs = snap.jobs
	s.seq = snap.seq
	s.order = snap.order
}

// Do выполняет fn в транзакции хранилища
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	committed := false
	defer func() {
		if !committed {
			s.restore(snap)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, &tx{store: s})); err != nil {
		return err
	}

	committed = true
	return nil
}

// DoSerializable совпадает с Do: транзакции в памяти и так последовательны
func (s *Store) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.Do(ctx, fn)
}

// DoReadOnly выполняет fn в транзакции; откат не требуется, но блокировка та же
func (s *Store) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.Do(ctx, fn)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneCalendar(c *domain.Calendar) *domain.Calendar {
	out := *c
	out.Description = cloneString(c.Description)
	out.Availability = c.Availability.Clone()
	return &out
}

func cloneAppointmentType(t *domain.AppointmentType) *domain.AppointmentType {
	out := *t
	out.Description = cloneString(t.Description)
	out.CalendarIDs = cloneIDs(t.CalendarIDs)
	out.FormIDs = cloneIDs(t.FormIDs)
	return &out
}

func cloneIDs(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return slices.Clone(ids)
}

func cloneJob(j *domain.Job) *domain.Job {
	out := *j
	out.Customer.Email = cloneString(j.Customer.Email)
	out.Customer.Phone = cloneString(j.Customer.Phone)
	out.Description = cloneString(j.Description)
	out.LocationAddress = cloneString(j.LocationAddress)
	out.CancellationReason = cloneString(j.CancellationReason)
	if j.CancelledAt != nil {
		at := *j.CancelledAt
		out.CancelledAt = &at
	}

	out.Workers = make([]domain.WorkerAssignment, len(j.Workers))
	for i, w := range j.Workers {
		out.Workers[i] = w
		if w.HourlyRate != nil {
			rate := *w.HourlyRate
			out.Workers[i].HourlyRate = &rate
		}
	}

	if j.FormResponses != nil {
		out.FormResponses = make(domain.FormResponses, len(j.FormResponses))
		for formID, answers := range j.FormResponses {
			out.FormResponses[formID] = maps.Clone(answers)
		}
	}

	return &out
}
