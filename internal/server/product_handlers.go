// file: internal/server/product_handlers.go
// version: 1.0.0
// guid: 8d1a4c7f-2b5e-4e9a-b6d0-3f8c1a4e7b0d

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopkit/storefront/internal/models"
	"github.com/shopkit/storefront/internal/store"
)

func (s *Server) listProducts(c *gin.Context) {
	params := ParsePaginationParams(c)

	docs, err := s.store.GetAllDocuments(collectionProducts, params.Limit, params.Offset)
	if err != nil {
		RespondWithInternalError(c, "error fetching products", err)
		return
	}

	products := make([]models.Product, 0, len(docs))
	for _, doc := range docs {
		var p models.Product
		if err := store.Decode(doc, &p); err != nil {
			RespondWithInternalError(c, "error fetching products", err)
			return
		}
		products = append(products, p)
	}

	c.JSON(http.StatusOK, products)
}

func (s *Server) getProduct(c *gin.Context) {
	id := c.Param("id")

	doc, err := s.store.GetDocument(collectionProducts, id)
	if err != nil {
		RespondWithInternalError(c, "error fetching product", err)
		return
	}
	if doc == nil {
		RespondWithNotFound(c, "product", id)
		return
	}

	var product models.Product
	if err := store.Decode(doc, &product); err != nil {
		RespondWithInternalError(c, "error fetching product", err)
		return
	}

	c.JSON(http.StatusOK, product)
}
