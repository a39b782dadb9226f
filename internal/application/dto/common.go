package dto

// ErrorResponse cuerpo de error HTTP. Success siempre es false; Fields trae el detalle por campo
// cuando la entrada fue rechazada por validación.
type ErrorResponse struct {
	Success bool              `json:"success"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}
