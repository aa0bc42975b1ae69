// file: internal/server/cart_handlers.go
// version: 1.2.0
// guid: 5b9e2d7a-4c1f-4a8b-9e6d-0a3f6c9e2b5d

package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shopkit/storefront/internal/models"
	"github.com/shopkit/storefront/internal/server/middleware"
	"github.com/shopkit/storefront/internal/store"
)

// userCartItems loads the user's cart lines. A missing cart document is an
// empty cart, not an error; exists reports whether the document was present.
func (s *Server) userCartItems(uid string) (items []models.CartItem, exists bool, err error) {
	doc, err := s.store.GetDocument(collectionCarts, uid)
	if err != nil {
		return nil, false, err
	}
	if doc == nil {
		return []models.CartItem{}, false, nil
	}

	var cart models.Cart
	if err := store.Decode(doc, &cart); err != nil {
		return nil, false, err
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return cart.Items, true, nil
}

func cartTotals(items []models.CartItem) (totalItems int, totalAmount float64) {
	for _, item := range items {
		totalItems += item.Quantity
		totalAmount += item.Price * float64(item.Quantity)
	}
	return totalItems, totalAmount
}

// writeCart upserts the cart document for a user.
func (s *Server) writeCart(uid string, items []models.CartItem) error {
	cart, err := store.Encode(models.Cart{
		UID:       uid,
		Items:     items,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	return s.store.SetDocument(collectionCarts, uid, cart)
}

func (s *Server) getCart(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	uid := ""
	if ok {
		uid = identity.UID
	}

	// Explicit composition: the cached read is wrapped here, not hidden
	// behind a handler decorator.
	value, err := s.cache.GetOrCompute(cachePrefixCart, uid, func() (any, error) {
		items, _, err := s.userCartItems(uid)
		if err != nil {
			return nil, err
		}
		totalItems, totalAmount := cartTotals(items)
		return models.CartResponse{
			Items:       items,
			TotalItems:  totalItems,
			TotalAmount: totalAmount,
		}, nil
	})
	if err != nil {
		RespondWithInternalError(c, "error fetching cart", err)
		return
	}

	c.JSON(http.StatusOK, value)
}

func (s *Server) addToCart(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		RespondWithUnauthorized(c, "authentication required")
		return
	}

	var req models.AddToCartRequest
	if HandleBindError(c, c.ShouldBindJSON(&req)) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	productDoc, err := s.store.GetDocument(collectionProducts, req.ProductID)
	if err != nil {
		RespondWithInternalError(c, "error adding to cart", err)
		return
	}
	if productDoc == nil {
		RespondWithNotFound(c, "product", req.ProductID)
		return
	}
	var product models.Product
	if err := store.Decode(productDoc, &product); err != nil {
		RespondWithInternalError(c, "error adding to cart", err)
		return
	}

	items, _, err := s.userCartItems(identity.UID)
	if err != nil {
		RespondWithInternalError(c, "error adding to cart", err)
		return
	}

	// Merge by product id: increment quantity when present, append otherwise.
	merged := false
	for i := range items {
		if items[i].ProductID == req.ProductID {
			items[i].Quantity += req.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, models.CartItem{
			ProductID: req.ProductID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  req.Quantity,
			ImageURL:  product.ImageURL,
		})
	}

	if err := s.writeCart(identity.UID, items); err != nil {
		RespondWithInternalError(c, "error adding to cart", err)
		return
	}

	s.cache.Invalidate(cachePrefixCart, identity.UID)

	totalItems, totalAmount := cartTotals(items)
	log.Printf("[INFO] Added %d of %s to cart for %s", req.Quantity, req.ProductID, identity.UID)

	c.JSON(http.StatusOK, gin.H{
		"message":      "Item added to cart",
		"total_items":  totalItems,
		"total_amount": totalAmount,
	})
}

func (s *Server) removeFromCart(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		RespondWithUnauthorized(c, "authentication required")
		return
	}

	var req models.RemoveFromCartRequest
	if HandleBindError(c, c.ShouldBindJSON(&req)) {
		return
	}

	items, exists, err := s.userCartItems(identity.UID)
	if err != nil {
		RespondWithInternalError(c, "error removing from cart", err)
		return
	}
	if !exists {
		RespondWithNotFound(c, "cart", "")
		return
	}

	filtered := items[:0]
	for _, item := range items {
		if item.ProductID != req.ProductID {
			filtered = append(filtered, item)
		}
	}
	if len(filtered) == len(items) {
		RespondWithNotFound(c, "product in cart", req.ProductID)
		return
	}

	if err := s.writeCart(identity.UID, filtered); err != nil {
		RespondWithInternalError(c, "error removing from cart", err)
		return
	}

	s.cache.Invalidate(cachePrefixCart, identity.UID)
	log.Printf("[INFO] Removed %s from cart for %s", req.ProductID, identity.UID)

	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}

func (s *Server) updateCart(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		RespondWithUnauthorized(c, "authentication required")
		return
	}

	var req models.UpdateCartRequest
	if HandleBindError(c, c.ShouldBindJSON(&req)) {
		return
	}
	quantity := *req.Quantity

	items, exists, err := s.userCartItems(identity.UID)
	if err != nil {
		RespondWithInternalError(c, "error updating cart", err)
		return
	}
	if !exists {
		RespondWithNotFound(c, "cart", "")
		return
	}

	found := false
	updated := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.ProductID == req.ProductID {
			found = true
			if quantity <= 0 {
				continue // quantity zero removes the line
			}
			item.Quantity = quantity
		}
		updated = append(updated, item)
	}
	if !found {
		RespondWithNotFound(c, "product in cart", req.ProductID)
		return
	}

	if err := s.writeCart(identity.UID, updated); err != nil {
		RespondWithInternalError(c, "error updating cart", err)
		return
	}

	s.cache.Invalidate(cachePrefixCart, identity.UID)
	log.Printf("[INFO] Updated %s quantity to %d for %s", req.ProductID, quantity, identity.UID)

	c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
}
