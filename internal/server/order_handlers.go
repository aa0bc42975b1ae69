// file: internal/server/order_handlers.go
// version: 1.1.0
// guid: 1f6c9b4e-8a2d-4d7b-a5e0-4c7f0b3d6e9a

package server

import (
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shopkit/storefront/internal/metrics"
	"github.com/shopkit/storefront/internal/models"
	"github.com/shopkit/storefront/internal/server/middleware"
	"github.com/shopkit/storefront/internal/store"
)

// placeOrder copies the current cart into a new PLACED order, clears the
// cart, and invalidates both cached reads for the user.
func (s *Server) placeOrder(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		RespondWithUnauthorized(c, "authentication required")
		return
	}

	items, _, err := s.userCartItems(identity.UID)
	if err != nil {
		RespondWithInternalError(c, "error placing order", err)
		return
	}
	if len(items) == 0 {
		RespondWithBadRequest(c, "cart is empty")
		return
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	_, totalAmount := cartTotals(items)

	now := time.Now().UTC().Format(time.RFC3339)
	orderDoc, err := store.Encode(models.Order{
		UID:         identity.UID,
		Items:       orderItems,
		TotalAmount: totalAmount,
		Status:      models.OrderStatusPlaced,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		RespondWithInternalError(c, "error placing order", err)
		return
	}

	orderID, err := s.store.AddDocument(collectionOrders, orderDoc, "")
	if err != nil {
		RespondWithInternalError(c, "error placing order", err)
		return
	}

	if err := s.writeCart(identity.UID, []models.CartItem{}); err != nil {
		RespondWithInternalError(c, "error placing order", err)
		return
	}

	s.cache.Invalidate(cachePrefixCart, identity.UID)
	s.cache.Invalidate(cachePrefixOrders, identity.UID)
	metrics.IncOrdersPlaced()

	log.Printf("[INFO] Order %s placed by user %s for amount %.2f", orderID, identity.UID, totalAmount)

	c.JSON(http.StatusOK, models.PlaceOrderResponse{
		Message:     "Order placed successfully",
		OrderID:     orderID,
		TotalAmount: totalAmount,
	})
}

func (s *Server) listOrders(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	uid := ""
	if ok {
		uid = identity.UID
	}

	value, err := s.cache.GetOrCompute(cachePrefixOrders, uid, func() (any, error) {
		docs, err := s.store.QueryDocuments(collectionOrders, "uid", "==", uid)
		if err != nil {
			return nil, err
		}

		orders := make([]models.OrderResponse, 0, len(docs))
		for _, doc := range docs {
			var order models.OrderResponse
			if err := store.Decode(doc, &order); err != nil {
				return nil, err
			}
			if order.Status == "" {
				order.Status = "UNKNOWN"
			}
			orders = append(orders, order)
		}

		// Most recent first.
		sort.Slice(orders, func(i, j int) bool {
			return orders[i].CreatedAt > orders[j].CreatedAt
		})
		return orders, nil
	})
	if err != nil {
		RespondWithInternalError(c, "error fetching orders", err)
		return
	}

	c.JSON(http.StatusOK, value)
}
