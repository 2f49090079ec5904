// Package model defines domain entities exchanged with the admin backend.
package model

// OrderStatus is one of the five order lifecycle states.
type OrderStatus string

// Order lifecycle states.
const (
	StatusPending   OrderStatus = "pending"
	StatusCooking   OrderStatus = "cooking"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// NextStatuses is the fixed transition table screens derive their actions from.
// It is advisory only; the backend remains the authority on status changes.
var NextStatuses = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusCooking, StatusCancelled},
	StatusCooking:   {StatusReady, StatusCancelled},
	StatusReady:     {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// Transitions returns the statuses reachable from s. Unknown statuses have no transitions.
func Transitions(s OrderStatus) []OrderStatus {
	return NextStatuses[s]
}

// CanTransition reports whether from→to is an edge of the transition table.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range NextStatuses[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether s has no outgoing transitions.
func Terminal(s OrderStatus) bool {
	_, known := NextStatuses[s]
	return known && len(NextStatuses[s]) == 0
}

// Dashboard carries the two headline metrics of the dashboard screen.
type Dashboard struct {
	OrdersToday  int `json:"orders_today"`
	ActiveOrders int `json:"active_orders"`
}

// OrderItem is a single line of an order.
type OrderItem struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"product_id,omitempty"`
	ProductName string  `json:"product_name,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price,omitempty"`
}

// Order is a customer order with its lines.
type Order struct {
	ID            int64       `json:"id"`
	CustomerName  string      `json:"customer_name,omitempty"`
	CustomerEmail string      `json:"customer_email,omitempty"`
	Status        OrderStatus `json:"status"`
	Total         float64     `json:"total,omitempty"`
	CreatedAt     string      `json:"created_at,omitempty"`
	Items         []OrderItem `json:"items,omitempty"`
}

// Product is a menu item.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	CategoryID  int64   `json:"category_id,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// Category groups products.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ProductInput is the create payload for a product (no id; the backend assigns it).
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	CategoryID  int64   `json:"category_id,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// ProductPatch is a partial update; nil fields are left untouched by the backend.
type ProductPatch struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	CategoryID  *int64   `json:"category_id,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

// CategoryInput is the create payload for a category.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryPatch is a partial update for a category.
type CategoryPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// StatusPatch is the body of an order status update.
type StatusPatch struct {
	Status OrderStatus `json:"status"`
}
