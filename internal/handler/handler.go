package handler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"dental-clinic-api/internal/model"
)

// Store is the slice of the persistence layer the handlers use.
// *store.Store satisfies it; tests plug in an in-memory fake.
type Store interface {
	CreateUser(ctx context.Context, u *model.User) error
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	UserByID(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)

	ListDentists(ctx context.Context) ([]model.Dentist, error)
	TimeSlotByID(ctx context.Context, id string) (*model.TimeSlot, error)
	AvailableSlots(ctx context.Context, dentistID, date string) ([]model.TimeSlot, error)

	BookAppointment(ctx context.Context, a *model.Appointment) error
	AppointmentByID(ctx context.Context, id string) (*model.Appointment, error)
	AppointmentsByUser(ctx context.Context, userID string) ([]model.AppointmentDetail, error)
	CancelAppointment(ctx context.Context, id string) error
	RescheduleAppointment(ctx context.Context, id, newSlotID string) (*model.Appointment, error)

	UpsertRefreshToken(ctx context.Context, userID, token string, expiresAt time.Time) error
	RefreshTokenByToken(ctx context.Context, token string) (*model.RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, token string) error
}

type SlotGenerator interface {
	Generate(ctx context.Context, daysAhead int) error
}

type Config struct {
	AccessSecret  string
	RefreshSecret string
	SecureCookies bool
}

type Handler struct {
	store Store
	gen   SlotGenerator
	log   *zap.Logger
	cfg   Config
}

func New(st Store, gen SlotGenerator, log *zap.Logger, cfg Config) *Handler {
	return &Handler{store: st, gen: gen, log: log, cfg: cfg}
}
