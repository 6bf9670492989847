package models

import "time"

// Appointment status lifecycle. Appointments are never deleted remotely,
// only transitioned between these states.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
	AppointmentNoShow    = "no_show"
)

const (
	AppointmentOnline   = "online"
	AppointmentInPerson = "in_person"
	AppointmentPhone    = "phone"
)

// Appointment is a cached row of a backend-owned appointment. Date is kept
// as a YYYY-MM-DD string and times as HH:mm strings because the backend
// compares calendar days as local strings, with no timezone normalization.
type Appointment struct {
	ID int64 `gorm:"primaryKey;column:id"`

	ProfessionalID int64 `gorm:"column:professional_id"`

	Date      string `gorm:"column:date"`
	StartTime string `gorm:"column:start_time"`
	EndTime   string `gorm:"column:end_time"`

	DurationMin int `gorm:"column:duration_min"`

	Status string `gorm:"column:status"`
	Type   string `gorm:"column:type"`

	ClientName   string `gorm:"column:client_name"`
	ClientEmail  string `gorm:"column:client_email"`
	ClientPhone  string `gorm:"column:client_phone"`
	ClientAvatar string `gorm:"column:client_avatar"`

	Service     string `gorm:"column:service"`
	Location    string `gorm:"column:location"`
	MeetingLink string `gorm:"column:meeting_link"`
	Notes       string `gorm:"column:notes"`

	IsRecurring bool `gorm:"column:is_recurring"`

	UpdatedAtRemote *time.Time `gorm:"column:updated_at_remote"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Appointment) TableName() string { return "appointments" }
