package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/hossamfarag/boutique-backend/docs"
	"github.com/hossamfarag/boutique-backend/internal/httpx"
	"github.com/hossamfarag/boutique-backend/internal/mongodb"
	"github.com/hossamfarag/boutique-backend/internal/order"
	"github.com/hossamfarag/boutique-backend/internal/product"
	"github.com/hossamfarag/boutique-backend/internal/review"
)

func newRouter(products *product.Service, orders *order.Service, reviews *review.Service, adminHeader, adminKey string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger())

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "E-Commerce Backend API", "docs": "/swagger/index.html"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	admin := httpx.AdminKey(adminHeader, adminKey)

	r.GET("/products", listProductsHandler(products))
	r.GET("/products/:id", getProductHandler(products))
	r.POST("/products", admin, createProductHandler(products))
	r.PUT("/products/:id", admin, updateProductHandler(products))
	r.DELETE("/products/:id", admin, deleteProductHandler(products))

	r.POST("/orders", createOrderHandler(orders))
	r.GET("/orders/:id", getOrderHandler(orders))
	r.PATCH("/orders/:id/status", admin, updateOrderStatusHandler(orders))

	r.POST("/reviews", createReviewHandler(reviews))
	r.GET("/reviews", listReviewsHandler(reviews))
	r.GET("/reviews/:productID", listProductReviewsHandler(reviews))

	return r
}

// fail translates service errors into the caller-facing response.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, mongodb.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, product.ErrNotFound),
		errors.Is(err, order.ErrNotFound),
		errors.Is(err, review.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, product.ErrInvalidID),
		errors.Is(err, order.ErrInvalidID),
		errors.Is(err, product.ErrValidation),
		errors.Is(err, order.ErrValidation),
		errors.Is(err, review.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// listProductsHandler godoc
// @Summary      List products
// @Tags         products
// @Produce      json
// @Success      200 {array} product.Response
// @Router       /products [get]
func listProductsHandler(svc *product.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.List(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// getProductHandler godoc
// @Summary      Get a product by ID
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} product.Response
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /products/{id} [get]
func getProductHandler(svc *product.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// createProductHandler godoc
// @Summary      Create a product (admin)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        X-Admin-Key header string true "Admin API key"
// @Param        product body product.CreateRequest true "Product"
// @Success      201 {object} product.Response
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Router       /products [post]
func createProductHandler(svc *product.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in product.CreateRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
			return
		}
		created, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// updateProductHandler godoc
// @Summary      Partially update a product (admin)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        X-Admin-Key header string true "Admin API key"
// @Param        id path string true "Product ID"
// @Param        product body product.UpdateRequest true "Fields to change"
// @Success      200 {object} product.Response
// @Router       /products/{id} [put]
func updateProductHandler(svc *product.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in product.UpdateRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
			return
		}
		updated, err := svc.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// deleteProductHandler godoc
// @Summary      Delete a product (admin)
// @Tags         products
// @Param        X-Admin-Key header string true "Admin API key"
// @Param        id path string true "Product ID"
// @Success      204
// @Router       /products/{id} [delete]
func deleteProductHandler(svc *product.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// createOrderHandler godoc
// @Summary      Place an order
// @Description  Prices are resolved server-side and the status starts as pending.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        order body order.CreateRequest true "Order"
// @Success      201 {object} order.Response
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /orders [post]
func createOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in order.CreateRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
			return
		}
		created, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// getOrderHandler godoc
// @Summary      Get an order by ID
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} order.Response
// @Router       /orders/{id} [get]
func getOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// updateOrderStatusHandler godoc
// @Summary      Update order status (admin)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-Admin-Key header string true "Admin API key"
// @Param        id path string true "Order ID"
// @Param        status body order.UpdateStatusRequest true "New status"
// @Success      200 {object} order.Response
// @Router       /orders/{id}/status [patch]
func updateOrderStatusHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in order.UpdateStatusRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
			return
		}
		updated, err := svc.UpdateStatus(c.Request.Context(), c.Param("id"), in.Status)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// createReviewHandler godoc
// @Summary      Create a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        review body review.CreateRequest true "Review"
// @Success      201 {object} review.Response
// @Router       /reviews [post]
func createReviewHandler(svc *review.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in review.CreateRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
			return
		}
		created, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// listReviewsHandler godoc
// @Summary      List recent reviews
// @Tags         reviews
// @Produce      json
// @Param        limit query int false "Max results (1-100, default 50)"
// @Success      200 {array} review.Response
// @Router       /reviews [get]
func listReviewsHandler(svc *review.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a number"})
				return
			}
			limit = n
		}
		items, err := svc.ListAll(c.Request.Context(), limit)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// listProductReviewsHandler godoc
// @Summary      List reviews for a product
// @Tags         reviews
// @Produce      json
// @Param        productID path string true "Product ID"
// @Success      200 {array} review.Response
// @Router       /reviews/{productID} [get]
func listProductReviewsHandler(svc *review.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.ListByProduct(c.Request.Context(), c.Param("productID"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}
