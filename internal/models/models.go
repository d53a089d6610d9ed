package models

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodCard         PaymentMethod = "card"
	MethodBankTransfer PaymentMethod = "bank_transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodCard, MethodBankTransfer:
		return true
	}
	return false
}

const (
	OrderAwaitingPayment = "awaiting_payment"
	OrderPaid            = "paid"
)

type User struct {
	Id       string `json:"id" db:"id" validate:"required"`
	Email    string `json:"email" db:"email" validate:"required,email"`
	Name     string `json:"name" db:"name"`
	Role     Role   `json:"role" db:"role" validate:"required,oneof=customer manager admin"`
	Password string `json:"-" db:"password_hash"`
}

type Category struct {
	Id   string `json:"id" db:"id" validate:"required"`
	Name string `json:"name" db:"name" validate:"required"`
}

// MenuItem prices are minor currency units, no decimals anywhere.
type MenuItem struct {
	Id         string `json:"id" db:"id" validate:"required"`
	CategoryId string `json:"category_id" db:"category_id"`
	Name       string `json:"name" db:"name" validate:"required"`
	Price      int64  `json:"price" db:"price" validate:"gte=0"`
	Image      string `json:"image" db:"image"`
	Available  bool   `json:"available" db:"available"`
}

type Poster struct {
	Id    string `json:"id" db:"id" validate:"required"`
	Title string `json:"title" db:"title"`
	Image string `json:"image" db:"image" validate:"required"`
}

// CartItem carries a denormalized menu snapshot so the front can render
// a line without a second menu lookup.
type CartItem struct {
	Id       string   `json:"id" db:"id" validate:"required"`
	MenuId   string   `json:"menu_id" db:"menu_id" validate:"required"`
	Quantity int      `json:"quantity" db:"quantity" validate:"gte=1"`
	Note     string   `json:"note" db:"note"`
	Menu     MenuItem `json:"menu"`
}

func (ci CartItem) LineTotal() int64 {
	return ci.Menu.Price * int64(ci.Quantity)
}

type OrderItem struct {
	MenuId   string `json:"menu_id" db:"menu_id" validate:"required"`
	Quantity int    `json:"quantity" db:"quantity" validate:"gte=1"`
	Note     string `json:"note" db:"note"`
	Price    int64  `json:"price" db:"price"`
}

type Order struct {
	Id         string      `json:"id" db:"id" validate:"required"`
	UserId     string      `json:"user_id" db:"user_id"`
	Items      []OrderItem `json:"items" validate:"required,min=1,dive"`
	Note       string      `json:"note" db:"note"`
	TotalPrice int64       `json:"total_price" db:"total_price" validate:"gte=0"`
	Status     string      `json:"status" db:"status"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
}

type Payment struct {
	Id      string        `json:"id" db:"id" validate:"required"`
	OrderId string        `json:"order_id" db:"order_id" validate:"required"`
	Method  PaymentMethod `json:"method" db:"method" validate:"required,oneof=cash card bank_transfer"`
	Status  string        `json:"status" db:"status" validate:"required"`
}
