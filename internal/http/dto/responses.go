package dto

type AuthResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
	// Warning carries non-fatal follow-ups, e.g. a failed audit write after
	// the mutation itself committed.
	Warning string `json:"warning,omitempty"`
}

type PagedResponse struct {
	Items any `json:"items"`
	Total int `json:"total"`
}
