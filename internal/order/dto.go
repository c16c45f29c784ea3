package order

// CreateItem payload of an order line; the client never sends a price.
// swagger:model CreateOrderItem
type CreateItem struct {
	ProductID string `json:"product_id" example:"507f1f77bcf86cd799439011"`
	Quantity  int    `json:"quantity"   example:"2"`
}

// CreateRequest payload of order placement.
// swagger:model CreateOrderRequest
type CreateRequest struct {
	Customer Customer     `json:"customer"`
	Items    []CreateItem `json:"items"`
}

// UpdateStatusRequest payload of an admin status change.
// swagger:model UpdateOrderStatusRequest
type UpdateStatusRequest struct {
	Status string `json:"status" example:"shipped"`
}
