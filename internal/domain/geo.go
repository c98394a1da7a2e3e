package domain

// GeoSample es una muestra cruda del proveedor de ubicación del cliente.
// El timestamp viaja como string ISO-8601 tal cual lo produce el dispositivo.
type GeoSample struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp string  `json:"timestamp"`
	Accuracy  float64 `json:"accuracy,omitempty"`
}

// FrequentLocation es la celda dominante derivada de la ventana de muestras.
// Siempre se recalcula completa; no tiene ciclo de vida propio.
type FrequentLocation struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Frequency   int     `json:"frequency"`
	LastVisited string  `json:"last_visited"`
}
