package httpserver

import (
	"net/http"
	"strconv"

	"optic-storefront/internal/domain"
	"optic-storefront/internal/service/checkout"

	"github.com/gin-gonic/gin"
)

func (h *handlers) submitCheckout(c *gin.Context) {
	var req domain.CustomerDetails
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body")
		return
	}

	order, err := h.deps.Checkout.Submit(c.Request.Context(), sessionID(c), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

func (h *handlers) checkoutQR(c *gin.Context) {
	size := checkout.DefaultQRSize
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "size must be an integer")
			return
		}
		size = n
	}

	png, err := checkout.QRCode(c.Query("url"), size)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
