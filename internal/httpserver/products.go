package httpserver

import (
	"net/http"
	"strconv"

	"optic-storefront/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *handlers) listProducts(c *gin.Context) {
	filter := domain.ProductFilter{
		Query:    c.Query("q"),
		Category: c.Query("category"),
	}
	if raw := c.Query("new"); raw != "" {
		newOnly, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, "new must be a boolean")
			return
		}
		filter.NewOnly = newOnly
	}

	products, err := h.deps.Products.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": toProductList(products), "count": len(products)})
}

func (h *handlers) getProduct(c *gin.Context) {
	product, err := h.deps.Products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

func (h *handlers) featuredProducts(c *gin.Context) {
	products, err := h.deps.Products.Featured(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": toProductList(products)})
}

func (h *handlers) listCategories(c *gin.Context) {
	categories, err := h.deps.Categories.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *handlers) listReviews(c *gin.Context) {
	c.JSON(http.StatusOK, toReviewsResponse(h.deps.Reviews))
}

func (h *handlers) storeInfo(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.Store)
}
