package models

import (
	"time"

	"github.com/roccadavide/beauty-room-sub000/internal/domain"
	"github.com/roccadavide/beauty-room-sub000/pkg/types"
)

// Request models

// UpsertDayRequest replaces the business hours of one weekday.
// A closed day carries no windows; an open day has a morning window, an
// afternoon window, or both.
type UpsertDayRequest struct {
	DayOfWeek int     `json:"dayOfWeek"` // 0 = Sunday ... 6 = Saturday
	Closed    bool    `json:"closed"`
	Morning   *Window `json:"morning,omitempty"`
	Afternoon *Window `json:"afternoon,omitempty"`
}

// CreateClosureRequest blocks a date, either fully (no window) or partially.
type CreateClosureRequest struct {
	Date      string  `json:"date"` // "2025-10-15"
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Reason    string  `json:"reason"`
}

// Window is an open interval within a day.
type Window struct {
	Start string `json:"start"` // "09:00"
	End   string `json:"end"`   // "12:30"
}

// Response models

// ScheduleResponse is the full weekly schedule plus upcoming closures.
type ScheduleResponse struct {
	Days     []DayResponse     `json:"days"`
	Closures []ClosureResponse `json:"closures"`
}

// DayResponse is one weekday's business hours.
type DayResponse struct {
	DayOfWeek int     `json:"dayOfWeek"`
	Closed    bool    `json:"closed"`
	Morning   *Window `json:"morning,omitempty"`
	Afternoon *Window `json:"afternoon,omitempty"`
}

// ClosureResponse is one ad-hoc closure.
type ClosureResponse struct {
	ID        int64   `json:"id"`
	Date      string  `json:"date"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Reason    string  `json:"reason,omitempty"`
}

// Conversion helpers

// ToDomainDay converts the request into a domain entry.
func (r *UpsertDayRequest) ToDomainDay() *domain.ScheduleDay {
	entry := &domain.ScheduleDay{
		DayOfWeek: time.Weekday(r.DayOfWeek),
		Closed:    r.Closed,
	}
	if r.Morning != nil {
		entry.MorningStart = parseTime(r.Morning.Start)
		entry.MorningEnd = parseTime(r.Morning.End)
	}
	if r.Afternoon != nil {
		entry.AfternoonStart = parseTime(r.Afternoon.Start)
		entry.AfternoonEnd = parseTime(r.Afternoon.End)
	}
	return entry
}

// FromDomainDay converts a domain entry into the DTO.
func FromDomainDay(d *domain.ScheduleDay) DayResponse {
	resp := DayResponse{
		DayOfWeek: int(d.DayOfWeek),
		Closed:    d.Closed,
	}
	if d.MorningStart != nil && d.MorningEnd != nil {
		resp.Morning = &Window{Start: d.MorningStart.String(), End: d.MorningEnd.String()}
	}
	if d.AfternoonStart != nil && d.AfternoonEnd != nil {
		resp.Afternoon = &Window{Start: d.AfternoonStart.String(), End: d.AfternoonEnd.String()}
	}
	return resp
}

// FromDomainClosure converts a domain closure into the DTO.
func FromDomainClosure(c *domain.Closure) ClosureResponse {
	resp := ClosureResponse{
		ID:     c.ID,
		Date:   c.Date.Format(domain.DateFormat),
		Reason: c.Reason,
	}
	if c.StartTime != nil {
		s := c.StartTime.String()
		resp.StartTime = &s
	}
	if c.EndTime != nil {
		e := c.EndTime.String()
		resp.EndTime = &e
	}
	return resp
}

// FromDomainSchedule builds the full schedule DTO.
func FromDomainSchedule(days []*domain.ScheduleDay, closures []*domain.Closure) *ScheduleResponse {
	resp := &ScheduleResponse{
		Days:     make([]DayResponse, 0, len(days)),
		Closures: make([]ClosureResponse, 0, len(closures)),
	}
	for _, d := range days {
		resp.Days = append(resp.Days, FromDomainDay(d))
	}
	for _, c := range closures {
		resp.Closures = append(resp.Closures, FromDomainClosure(c))
	}
	return resp
}

func parseTime(s string) *types.TimeString {
	t := types.TimeString(s)
	return &t
}
