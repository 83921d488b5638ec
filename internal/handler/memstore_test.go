package handler_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"dental-clinic-api/internal/model"
	"dental-clinic-api/internal/slots"
	"dental-clinic-api/internal/store"
)

// memStore is an in-memory stand-in for *store.Store with the same
// observable behavior: sentinel errors, slot uniqueness, conditional
// booking, ordering.
type memStore struct {
	mu           sync.Mutex
	users        map[string]*model.User
	dentists     []model.Dentist
	slots        map[string]*model.TimeSlot
	appointments map[string]*model.Appointment
	refresh      map[string]*model.RefreshToken // keyed by token
	seq          int
}

func newMemStore() *memStore {
	return &memStore{
		users:        make(map[string]*model.User),
		slots:        make(map[string]*model.TimeSlot),
		appointments: make(map[string]*model.Appointment),
		refresh:      make(map[string]*model.RefreshToken),
	}
}

func (m *memStore) addDentist(name string) model.Dentist {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := model.Dentist{ID: uuid.New().String(), Name: name}
	m.dentists = append(m.dentists, d)
	return d
}

func (m *memStore) addUser(u *model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
}

func (m *memStore) slotCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.slots)
}

func (m *memStore) CreateUser(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.CreatedAt = m.tick()
	m.users[u.ID] = u
	return nil
}

func (m *memStore) UserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) UserByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) ListUsers(_ context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) ListDentists(_ context.Context) ([]model.Dentist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]model.Dentist(nil), m.dentists...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) CreateTimeSlot(_ context.Context, ts *model.TimeSlot) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.slots {
		if existing.DentistID == ts.DentistID && existing.Date == ts.Date && existing.Time == ts.Time {
			return false, nil
		}
	}
	cp := *ts
	m.slots[cp.ID] = &cp
	return true, nil
}

func (m *memStore) TimeSlotByID(_ context.Context, id string) (*model.TimeSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ts, ok := m.slots[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *ts
	return &cp, nil
}

func (m *memStore) AvailableSlots(_ context.Context, dentistID, date string) ([]model.TimeSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rank := make(map[string]int, len(slots.DailyTimes))
	for i, label := range slots.DailyTimes {
		rank[label] = i
	}
	var out []model.TimeSlot
	for _, ts := range m.slots {
		if ts.DentistID == dentistID && ts.Date == date && !ts.IsBooked {
			out = append(out, *ts)
		}
	}
	sort.Slice(out, func(i, j int) bool { return rank[out[i].Time] < rank[out[j].Time] })
	return out, nil
}

func (m *memStore) BookAppointment(_ context.Context, a *model.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ts, ok := m.slots[a.TimeSlotID]
	if !ok || ts.IsBooked {
		return store.ErrSlotTaken
	}
	ts.IsBooked = true
	a.CreatedAt = m.tick()
	cp := *a
	m.appointments[cp.ID] = &cp
	return nil
}

func (m *memStore) AppointmentByID(_ context.Context, id string) (*model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memStore) AppointmentsByUser(_ context.Context, userID string) ([]model.AppointmentDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.AppointmentDetail
	for _, a := range m.appointments {
		if a.UserID != userID {
			continue
		}
		ad := model.AppointmentDetail{Appointment: *a}
		for _, d := range m.dentists {
			if d.ID == a.DentistID {
				ad.Dentist = d
			}
		}
		if ts, ok := m.slots[a.TimeSlotID]; ok {
			ad.TimeSlot = *ts
		}
		out = append(out, ad)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) CancelAppointment(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok {
		return store.ErrNotFound
	}
	if ts, ok := m.slots[a.TimeSlotID]; ok {
		ts.IsBooked = false
	}
	delete(m.appointments, id)
	return nil
}

func (m *memStore) RescheduleAppointment(_ context.Context, id, newSlotID string) (*model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if a.TimeSlotID == newSlotID {
		cp := *a
		return &cp, nil
	}
	newSlot, ok := m.slots[newSlotID]
	if !ok || newSlot.IsBooked {
		return nil, store.ErrSlotTaken
	}
	if old, ok := m.slots[a.TimeSlotID]; ok {
		old.IsBooked = false
	}
	newSlot.IsBooked = true
	a.TimeSlotID = newSlotID
	cp := *a
	return &cp, nil
}

func (m *memStore) UpsertRefreshToken(_ context.Context, userID, token string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for tok, rt := range m.refresh {
		if rt.UserID == userID {
			delete(m.refresh, tok)
		}
	}
	m.refresh[token] = &model.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	return nil
}

func (m *memStore) RefreshTokenByToken(_ context.Context, token string) (*model.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rt, ok := m.refresh[token]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *rt
	return &cp, nil
}

func (m *memStore) DeleteRefreshToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.refresh, token)
	return nil
}

// tick hands out strictly increasing timestamps so created_at ordering is
// deterministic even within one test.
func (m *memStore) tick() time.Time {
	m.seq++
	return time.Unix(1700000000, 0).Add(time.Duration(m.seq) * time.Millisecond)
}
