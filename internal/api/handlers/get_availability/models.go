package get_availability

import (
	"github.com/roccadavide/beauty-room-sub000/internal/domain"
	getAvailability "github.com/roccadavide/beauty-room-sub000/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ServiceID   int64          `json:"serviceId"`
	Date        string         `json:"date"`
	StepMinutes int            `json:"stepMinutes"`
	Slots       []SlotResponse `json:"slots"`
}

// SlotResponse is one bookable interval.
type SlotResponse struct {
	Start string `json:"start"` // "09:00"
	End   string `json:"end"`   // "10:00"
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		ServiceID:   resp.ServiceID,
		Date:        resp.Date.Format(domain.DateFormat),
		StepMinutes: resp.StepMinutes,
		Slots:       make([]SlotResponse, 0, len(resp.Slots)),
	}
	for _, slot := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			Start: slot.Start.String(),
			End:   slot.End.String(),
		})
	}
	return out
}
