package slots_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"dental-clinic-api/internal/model"
	"dental-clinic-api/internal/slots"
)

// fakeStore keys slots by (dentist, date, time) so duplicate creates are
// visible, mirroring the unique constraint on the real table.
type fakeStore struct {
	dentists []model.Dentist
	slots    map[string]model.TimeSlot
	listErr  error
}

func newFakeStore(dentists ...string) *fakeStore {
	fs := &fakeStore{slots: make(map[string]model.TimeSlot)}
	for i, name := range dentists {
		fs.dentists = append(fs.dentists, model.Dentist{
			ID:   fmt.Sprintf("dentist-%d", i),
			Name: name,
		})
	}
	return fs
}

func (f *fakeStore) ListDentists(context.Context) ([]model.Dentist, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.dentists, nil
}

func (f *fakeStore) CreateTimeSlot(_ context.Context, ts *model.TimeSlot) (bool, error) {
	key := ts.DentistID + "|" + ts.Date + "|" + ts.Time
	if _, exists := f.slots[key]; exists {
		return false, nil
	}
	f.slots[key] = *ts
	return true, nil
}

func TestGenerateCreatesFullWindow(t *testing.T) {
	fs := newFakeStore("Dr. Amara Okafor", "Dr. Jonas Meyer")
	gen := slots.New(fs, zap.NewNop())

	if err := gen.Generate(context.Background(), 0); err != nil {
		t.Fatalf("generate: %v", err)
	}

	want := len(fs.dentists) * slots.DefaultDaysAhead * len(slots.DailyTimes)
	if got := len(fs.slots); got != want {
		t.Errorf("slot count: got %d want %d", got, want)
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	fs := newFakeStore("Dr. Amara Okafor")
	gen := slots.New(fs, zap.NewNop())

	if err := gen.Generate(context.Background(), 3); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first := len(fs.slots)
	if err := gen.Generate(context.Background(), 3); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(fs.slots) != first {
		t.Errorf("second run changed slot count: %d -> %d", first, len(fs.slots))
	}
}

func TestGenerateNoDentists(t *testing.T) {
	fs := newFakeStore()
	gen := slots.New(fs, zap.NewNop())

	if err := gen.Generate(context.Background(), 5); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(fs.slots) != 0 {
		t.Errorf("created %d slots with no dentists", len(fs.slots))
	}
}

func TestGenerateDatesAndTimes(t *testing.T) {
	fs := newFakeStore("Dr. Priya Nair")
	gen := slots.New(fs, zap.NewNop())

	days := 2
	if err := gen.Generate(context.Background(), days); err != nil {
		t.Fatalf("generate: %v", err)
	}

	now := time.Now()
	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, i).Format("2006-01-02")
		for _, label := range slots.DailyTimes {
			key := "dentist-0|" + date + "|" + label
			ts, ok := fs.slots[key]
			if !ok {
				t.Errorf("missing slot for %s %s", date, label)
				continue
			}
			if ts.IsBooked {
				t.Errorf("new slot %s %s created booked", date, label)
			}
			if ts.ID == "" {
				t.Errorf("slot %s %s has no id", date, label)
			}
		}
	}
}

func TestGenerateListError(t *testing.T) {
	fs := newFakeStore("Dr. Amara Okafor")
	fs.listErr = fmt.Errorf("connection refused")
	gen := slots.New(fs, zap.NewNop())

	if err := gen.Generate(context.Background(), 5); err == nil {
		t.Fatal("expected error from dentist listing")
	}
}
