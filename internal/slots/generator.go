package slots

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dental-clinic-api/internal/model"
)

// DefaultDaysAhead is the rolling window of calendar days, today inclusive.
const DefaultDaysAhead = 15

// DailyTimes is the clinic's fixed daily schedule, in order. The gap at noon
// is the lunch break.
var DailyTimes = []string{
	"09:00 AM", "10:00 AM", "11:00 AM", "01:00 PM", "02:00 PM", "03:00 PM", "04:00 PM",
}

type Store interface {
	ListDentists(ctx context.Context) ([]model.Dentist, error)
	CreateTimeSlot(ctx context.Context, ts *model.TimeSlot) (bool, error)
}

type Generator struct {
	store Store
	log   *zap.Logger
}

func New(st Store, log *zap.Logger) *Generator {
	return &Generator{store: st, log: log}
}

// Generate ensures a free slot row exists for every dentist, for each of the
// next daysAhead days, for each daily time. Existing rows are left untouched,
// booked or not, so repeated calls are idempotent. Slots created before a
// failure stay committed.
func (g *Generator) Generate(ctx context.Context, daysAhead int) error {
	if daysAhead <= 0 {
		daysAhead = DefaultDaysAhead
	}

	dentists, err := g.store.ListDentists(ctx)
	if err != nil {
		return err
	}
	if len(dentists) == 0 {
		g.log.Warn("no dentists found, skipping slot generation")
		return nil
	}

	today := time.Now()
	created := 0
	for _, dentist := range dentists {
		for i := 0; i < daysAhead; i++ {
			date := today.AddDate(0, 0, i).Format("2006-01-02")
			for _, label := range DailyTimes {
				ok, err := g.store.CreateTimeSlot(ctx, &model.TimeSlot{
					ID:        uuid.New().String(),
					DentistID: dentist.ID,
					Date:      date,
					Time:      label,
				})
				if err != nil {
					return err
				}
				if ok {
					created++
				}
			}
		}
	}

	g.log.Info("slots generated",
		zap.Int("created", created),
		zap.Int("dentists", len(dentists)),
		zap.Int("daysAhead", daysAhead),
	)
	return nil
}
