package api

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`             // A high-level error message or code
	Details string `json:"details,omitempty"` // More specific details about the error, if available
}

// SuccessResponse is a generic structure for simple success messages.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// HistoryEntryResponse is the flattened row the admin history UI consumes.
// The three-field shape is the wire contract with the dashboard; date
// formatting is presentation, done here rather than in the core.
type HistoryEntryResponse struct {
	Message string `json:"message"`
	User    string `json:"user"`
	Date    string `json:"date"`
}

// PurgeResponse reports the outcome of a retention purge.
type PurgeResponse struct {
	Deleted int    `json:"deleted"`
	Cutoff  string `json:"cutoff"`
}
