package interpret

import "fmt"

// Request is the body of POST /api/interpret.
type Request struct {
	Dream string `json:"dream"`
}

// Response is the success body of POST /api/interpret. Interpretation is
// optional on the wire; an empty value means the server sent none.
type Response struct {
	Interpretation string `json:"interpretation,omitempty"`
}

// ErrorResponse is the body the service sends with 4xx statuses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusError reports a non-2xx answer from the API.
type StatusError struct {
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Status)
}
