// file: internal/models/models.go
// version: 1.2.0
// guid: 6c1e8a3b-4f2d-4e7c-9b5a-8d0f3c6e1a4b

package models

// UserProfile is the writable part of a user profile.
type UserProfile struct {
	Firstname    string `json:"firstname" binding:"required,min=1,max=100"`
	Lastname     string `json:"lastname" binding:"required,min=1,max=100"`
	MobileNumber string `json:"mobilenumber" binding:"required,min=10,max=20"`
}

// UserResponse is the profile payload returned by /auth/me.
type UserResponse struct {
	UID          string `json:"uid"`
	Email        string `json:"email"`
	Firstname    string `json:"firstname,omitempty"`
	Lastname     string `json:"lastname,omitempty"`
	MobileNumber string `json:"mobilenumber,omitempty"`
}

// Product is a catalog entry.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

// CartItem is a single line in a shopping cart.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image_url"`
}

// Cart is the persisted cart document, keyed by user id.
type Cart struct {
	UID       string     `json:"uid"`
	Items     []CartItem `json:"items"`
	UpdatedAt string     `json:"updated_at,omitempty"`
}

// CartResponse carries cart contents plus computed totals.
type CartResponse struct {
	Items       []CartItem `json:"items"`
	TotalItems  int        `json:"total_items"`
	TotalAmount float64    `json:"total_amount"`
}

// AddToCartRequest adds a product to the cart.
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required,min=1"`
	Quantity  int    `json:"quantity" binding:"omitempty,min=1"`
}

// UpdateCartRequest sets the quantity of a cart line; zero removes it.
type UpdateCartRequest struct {
	ProductID string `json:"product_id" binding:"required,min=1"`
	Quantity  *int   `json:"quantity" binding:"required,min=0"`
}

// RemoveFromCartRequest removes a product from the cart.
type RemoveFromCartRequest struct {
	ProductID string `json:"product_id" binding:"required,min=1"`
}

// OrderItem is a line item copied into an order at placement time.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is the persisted order document.
type Order struct {
	ID          string      `json:"id,omitempty"`
	UID         string      `json:"uid"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"total_amount"`
	Status      string      `json:"status"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at,omitempty"`
}

// OrderResponse is a single order in the order history listing.
type OrderResponse struct {
	ID          string      `json:"id"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"total_amount"`
	Status      string      `json:"status"`
	CreatedAt   string      `json:"created_at"`
}

// PlaceOrderResponse confirms a placed order.
type PlaceOrderResponse struct {
	Message     string  `json:"message"`
	OrderID     string  `json:"order_id"`
	TotalAmount float64 `json:"total_amount"`
}

// OrderStatusPlaced is the initial status of every order.
const OrderStatusPlaced = "PLACED"
