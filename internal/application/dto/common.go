package dto

// ErrorResponse cuerpo de error HTTP. Details lleva el detalle estructurado
// (problemas de ítems, venta vinculada, cadena de error fuera de producción).
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
