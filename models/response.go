package models

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
