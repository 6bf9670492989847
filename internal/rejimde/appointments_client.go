package rejimde

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/selim-create/rejimde-datahub/internal/calendar"
	"github.com/selim-create/rejimde-datahub/internal/models"
)

type appointmentPayload struct {
	ID             int64  `json:"id"`
	ProfessionalID int64  `json:"professional_id"`
	Date           string `json:"date"`       // YYYY-MM-DD
	StartTime      string `json:"start_time"` // HH:mm
	EndTime        string `json:"end_time"`
	Duration       int    `json:"duration"`
	Status         string `json:"status"`
	Type           string `json:"type"`

	Client *struct {
		Name   string `json:"name"`
		Avatar string `json:"avatar"`
		Email  string `json:"email"`
		Phone  string `json:"phone"`
	} `json:"client"`

	Service     string `json:"service"`
	Location    string `json:"location"`
	MeetingLink string `json:"meeting_link"`
	Notes       string `json:"notes"`
	IsRecurring bool   `json:"is_recurring"`

	UpdatedAt string `json:"updated_at"`
}

// FetchAppointmentsPage fetches one page of a professional's appointments
// within a date window, optionally bounded by updated_from.
func (c *Client) FetchAppointmentsPage(
	ctx context.Context,
	professionalID int64,
	fromDate, toDate time.Time,
	updatedFrom *time.Time,
	page, size int,
) ([]models.Appointment, error) {

	if size <= 0 {
		size = 100
	}
	if page <= 0 {
		page = 1
	}

	q := url.Values{}
	q.Set("professional_id", strconv.FormatInt(professionalID, 10))
	q.Set("from_date", fromDate.Format("2006-01-02"))
	q.Set("to_date", toDate.Format("2006-01-02"))
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(size))
	if updatedFrom != nil {
		q.Set("updated_from", updatedFrom.UTC().Format(time.RFC3339))
	}

	res, err := c.do(ctx, "GET", routePrefix+"/appointments", q, nil)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, fmt.Errorf("appointments API: %s", res.Message)
	}

	raws, err := decodeList(res.Data)
	if err != nil {
		return nil, fmt.Errorf("appointments list: %w", err)
	}

	out := make([]models.Appointment, 0, len(raws))
	for _, r := range raws {
		var p appointmentPayload
		if err := json.Unmarshal(r, &p); err != nil {
			// skip malformed rows rather than failing the whole page
			continue
		}
		row, ok := normalizeAppointment(professionalID, p)
		if !ok {
			continue
		}
		out = append(out, row)
	}

	return out, nil
}

func normalizeAppointment(professionalID int64, p appointmentPayload) (models.Appointment, bool) {
	if _, err := time.Parse("2006-01-02", p.Date); err != nil {
		return models.Appointment{}, false
	}
	if _, err := calendar.ParseClock(p.StartTime); err != nil {
		return models.Appointment{}, false
	}

	if p.Duration <= 0 {
		p.Duration = calendar.DefaultDurationMin
	}
	if p.EndTime == "" {
		if end, err := calendar.EndFromDuration(p.StartTime, p.Duration); err == nil {
			p.EndTime = end
		}
	}
	if p.Status == "" {
		p.Status = models.AppointmentPending
	}
	if p.ProfessionalID == 0 {
		p.ProfessionalID = professionalID
	}

	row := models.Appointment{
		ID:              p.ID,
		ProfessionalID:  p.ProfessionalID,
		Date:            p.Date,
		StartTime:       p.StartTime,
		EndTime:         p.EndTime,
		DurationMin:     p.Duration,
		Status:          p.Status,
		Type:            p.Type,
		Service:         p.Service,
		Location:        p.Location,
		MeetingLink:     p.MeetingLink,
		Notes:           p.Notes,
		IsRecurring:     p.IsRecurring,
		UpdatedAtRemote: parseTS(p.UpdatedAt),
	}
	if p.Client != nil {
		row.ClientName = p.Client.Name
		row.ClientAvatar = p.Client.Avatar
		row.ClientEmail = p.Client.Email
		row.ClientPhone = p.Client.Phone
	}
	return row, true
}

// CreateAppointmentRequest is the booking payload. Date and StartTime are
// required; a zero Duration means one hour.
type CreateAppointmentRequest struct {
	ProfessionalID int64  `json:"professional_id"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
	Duration       int    `json:"duration,omitempty"`
	Type           string `json:"type,omitempty"`
	Service        string `json:"service,omitempty"`
	Location       string `json:"location,omitempty"`
	Notes          string `json:"notes,omitempty"`
	IsRecurring    bool   `json:"is_recurring,omitempty"`
}

func (r CreateAppointmentRequest) validate() error {
	if r.ProfessionalID <= 0 {
		return fmt.Errorf("professional_id is required")
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", r.Date)
	}
	if _, err := calendar.ParseClock(r.StartTime); err != nil {
		return err
	}
	return nil
}

// CreateAppointment books a new appointment. Business-rule rejections come
// back as *APIError; local validation fails before any network call.
func (c *Client) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*models.Appointment, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	res, err := c.do(ctx, "POST", routePrefix+"/appointments", nil, req)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, res.Err()
	}

	var p appointmentPayload
	if err := json.Unmarshal(res.Data, &p); err != nil {
		return nil, fmt.Errorf("decode appointment: %w", err)
	}
	row, ok := normalizeAppointment(req.ProfessionalID, p)
	if !ok {
		return nil, fmt.Errorf("backend returned malformed appointment")
	}
	return &row, nil
}

// Appointments are never deleted, only status-transitioned.
func (c *Client) CompleteAppointment(ctx context.Context, id int64) error {
	return c.transitionAppointment(ctx, id, "complete")
}

func (c *Client) CancelAppointment(ctx context.Context, id int64) error {
	return c.transitionAppointment(ctx, id, "cancel")
}

func (c *Client) MarkNoShow(ctx context.Context, id int64) error {
	return c.transitionAppointment(ctx, id, "no-show")
}

func (c *Client) transitionAppointment(ctx context.Context, id int64, action string) error {
	if id <= 0 {
		return fmt.Errorf("appointment id is required")
	}
	path := fmt.Sprintf("%s/appointments/%d/%s", routePrefix, id, action)
	res, err := c.do(ctx, "POST", path, nil, nil)
	if err != nil {
		return err
	}
	return res.Err()
}
