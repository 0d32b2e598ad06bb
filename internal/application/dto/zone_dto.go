package dto

import "time"

// ZoneResponse zona de almacenamiento o proceso.
type ZoneResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}
