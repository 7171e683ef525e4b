// internal/api/types/response.go
package types

// PaginatedResponse defines a generic structure for listing responses.
// CurrentPage and LastPage are omitted for scroll listings.
type PaginatedResponse[T any] struct {
	Data        []T  `json:"data"`
	CurrentPage *int `json:"currentPage,omitempty"`
	LastPage    *int `json:"lastPage,omitempty"`
}

// MessageResponse is returned by endpoints that have nothing else to say.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
