package model

import "time"

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	City  string `json:"city"`
}

type Order struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	ProductName string    `json:"productName"`
	Amount      float64   `json:"amount"`
	OrderDate   time.Time `json:"orderDate"`
}

// OrderWithUser pairs an order with its owner. User is nil when the owner
// was deleted after the order was placed.
type OrderWithUser struct {
	Order Order `json:"order"`
	User  *User `json:"user"`
}
