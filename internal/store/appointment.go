package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"dental-clinic-api/internal/model"
)

// BookAppointment flips the slot to booked and creates the appointment in
// one transaction. The conditional update is what prevents double-booking:
// a concurrent booking of the same slot sees zero rows affected.
func (s *Store) BookAppointment(ctx context.Context, a *model.Appointment) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE time_slots SET is_booked = true WHERE id = $1 AND is_booked = false`,
		a.TimeSlotID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSlotTaken
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO appointments (id, user_id, dentist_id, time_slot_id)
		 VALUES ($1,$2,$3,$4) RETURNING created_at`,
		a.ID, a.UserID, a.DentistID, a.TimeSlotID,
	).Scan(&a.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *Store) AppointmentByID(ctx context.Context, id string) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, dentist_id, time_slot_id, created_at
		 FROM appointments WHERE id = $1`, id,
	).Scan(&a.ID, &a.UserID, &a.DentistID, &a.TimeSlotID, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// AppointmentsByUser returns the user's appointments joined with dentist and
// slot, most recent first.
func (s *Store) AppointmentsByUser(ctx context.Context, userID string) ([]model.AppointmentDetail, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT a.id, a.user_id, a.dentist_id, a.time_slot_id, a.created_at,
		        d.id, d.name,
		        t.id, t.dentist_id, t.date, t.time, t.is_booked
		 FROM appointments a
		 JOIN dentists d ON d.id = a.dentist_id
		 JOIN time_slots t ON t.id = a.time_slot_id
		 WHERE a.user_id = $1
		 ORDER BY a.created_at DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.AppointmentDetail
	for rows.Next() {
		var ad model.AppointmentDetail
		if err := rows.Scan(
			&ad.ID, &ad.UserID, &ad.DentistID, &ad.TimeSlotID, &ad.CreatedAt,
			&ad.Dentist.ID, &ad.Dentist.Name,
			&ad.TimeSlot.ID, &ad.TimeSlot.DentistID, &ad.TimeSlot.Date, &ad.TimeSlot.Time, &ad.TimeSlot.IsBooked,
		); err != nil {
			return nil, err
		}
		out = append(out, ad)
	}
	return out, rows.Err()
}

// CancelAppointment frees the linked slot and deletes the appointment.
func (s *Store) CancelAppointment(ctx context.Context, id string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var slotID string
	err = tx.QueryRow(ctx,
		`SELECT time_slot_id FROM appointments WHERE id = $1`, id,
	).Scan(&slotID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE time_slots SET is_booked = false WHERE id = $1`, slotID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM appointments WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// RescheduleAppointment frees the old slot, books the new one and repoints
// the appointment. ErrSlotTaken if someone got the new slot first.
func (s *Store) RescheduleAppointment(ctx context.Context, id, newSlotID string) (*model.Appointment, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	a := &model.Appointment{}
	err = tx.QueryRow(ctx,
		`SELECT id, user_id, dentist_id, time_slot_id, created_at
		 FROM appointments WHERE id = $1`, id,
	).Scan(&a.ID, &a.UserID, &a.DentistID, &a.TimeSlotID, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	// moving to the slot already held keeps the end state as-is
	if a.TimeSlotID == newSlotID {
		return a, tx.Commit(ctx)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE time_slots SET is_booked = false WHERE id = $1`, a.TimeSlotID); err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx,
		`UPDATE time_slots SET is_booked = true WHERE id = $1 AND is_booked = false`,
		newSlotID,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrSlotTaken
	}

	if _, err := tx.Exec(ctx,
		`UPDATE appointments SET time_slot_id = $1 WHERE id = $2`, newSlotID, id); err != nil {
		return nil, err
	}
	a.TimeSlotID = newSlotID

	return a, tx.Commit(ctx)
}
