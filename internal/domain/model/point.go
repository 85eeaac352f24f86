package model

import "time"

// Point is one evaluated submission in a user's ledger.
type Point struct {
	ID        int64
	UserID    int64
	X         float64
	Y         float64
	R         float64
	Hit       bool
	CreatedAt time.Time
}
