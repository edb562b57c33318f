package dto

// ErrorResponse cuerpo de error de la CLI.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
