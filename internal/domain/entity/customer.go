package entity

import "time"

// Customer representa un cliente facturable. El teléfono es único.
type Customer struct {
	ID        int64
	Name      string
	Phone     string
	Email     string // opcional
	Address   string // opcional
	CreatedAt time.Time
}
