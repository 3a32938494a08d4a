package dto

// ErrorResponse cuerpo JSON de toda respuesta 4xx/5xx. Code es estable (p. ej. INSUFFICIENT_STOCK);
// Message es legible y puede cambiar.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
