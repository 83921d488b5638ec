package model

import "time"

type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Dentist rows are seeded out-of-band; this service only reads them.
type Dentist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TimeSlot is a bookable (dentist, date, time) unit. Date is date-only
// (YYYY-MM-DD), Time is one of the fixed daily labels ("09:00 AM", ...).
type TimeSlot struct {
	ID        string `json:"id"`
	DentistID string `json:"dentistId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	IsBooked  bool   `json:"isBooked"`
}

type Appointment struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	DentistID  string    `json:"dentistId"`
	TimeSlotID string    `json:"timeSlotId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AppointmentDetail is an appointment joined with its dentist and slot,
// the shape returned when listing a user's appointments.
type AppointmentDetail struct {
	Appointment
	Dentist  Dentist  `json:"dentist"`
	TimeSlot TimeSlot `json:"timeSlot"`
}

// RefreshToken holds the single current refresh token for a user,
// overwritten on each login.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
}
