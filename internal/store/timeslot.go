package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"dental-clinic-api/internal/model"
)

// CreateTimeSlot inserts the slot unless a row with the same
// (dentist, date, time) already exists. Reports whether a row was created.
func (s *Store) CreateTimeSlot(ctx context.Context, ts *model.TimeSlot) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO time_slots (id, dentist_id, date, time, is_booked)
		 VALUES ($1,$2,$3,$4,false)
		 ON CONFLICT (dentist_id, date, time) DO NOTHING`,
		ts.ID, ts.DentistID, ts.Date, ts.Time,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) TimeSlotByID(ctx context.Context, id string) (*model.TimeSlot, error) {
	ts := &model.TimeSlot{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, dentist_id, date, time, is_booked FROM time_slots WHERE id = $1`, id,
	).Scan(&ts.ID, &ts.DentistID, &ts.Date, &ts.Time, &ts.IsBooked)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ts, nil
}

// AvailableSlots lists a dentist's free slots for one date, earliest first.
// The time column holds 12-hour labels, so lexical order would put the
// afternoon block before the morning one.
func (s *Store) AvailableSlots(ctx context.Context, dentistID, date string) ([]model.TimeSlot, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, dentist_id, date, time, is_booked
		 FROM time_slots
		 WHERE dentist_id = $1 AND date = $2 AND is_booked = false
		 ORDER BY to_timestamp(time, 'HH12:MI AM')`, dentistID, date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TimeSlot
	for rows.Next() {
		var ts model.TimeSlot
		if err := rows.Scan(&ts.ID, &ts.DentistID, &ts.Date, &ts.Time, &ts.IsBooked); err != nil {
			return nil, err
		}
		out = append(out, ts)
	}
	return out, rows.Err()
}
