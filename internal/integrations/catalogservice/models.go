package catalogservice

// Service is a salon service from the catalog.
type Service struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           *float64 `json:"price"`
	Active          bool     `json:"active"`
}

// ServiceOption is a priced variant of a service (e.g. a longer treatment).
type ServiceOption struct {
	ID        int64    `json:"id"`
	ServiceID int64    `json:"service_id"`
	Name      string   `json:"name"`
	Price     *float64 `json:"price"`
	Active    bool     `json:"active"`
}

// ErrorResponse is the error payload returned by the catalog service.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
