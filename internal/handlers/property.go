package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"property-catalog/internal/models"
	"property-catalog/internal/service"
	"property-catalog/internal/validation"
)

// PropertyHandler maps HTTP requests onto the property service and
// translates outcomes to status codes. Failures collapse to a status code;
// internals are never exposed.
type PropertyHandler struct {
	service *service.PropertyService
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(svc *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: svc}
}

// RegisterRoutes attaches the catalog routes to the router.
func (h *PropertyHandler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/properties")
	{
		api.GET("", h.GetAll)
		api.POST("", h.Create)
		api.GET("/search", h.SearchByAddress)
		api.GET("/price-range", h.ByPriceRange)
		api.GET("/size-range", h.BySizeRange)
		api.GET("/order-by-price", h.OrderedByPrice)
		api.GET("/order-by-size", h.OrderedBySize)
		api.GET("/:id", h.GetByID)
		api.PUT("/:id", h.Update)
		api.DELETE("/:id", h.Delete)
	}
}

// GetAll returns every property in the catalog
func (h *PropertyHandler) GetAll(c *gin.Context) {
	properties, err := h.service.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list properties"})
		return
	}
	c.JSON(http.StatusOK, properties)
}

// GetByID returns one property, 404 when the id matches nothing
func (h *PropertyHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	property, err := h.service.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get property"})
		return
	}
	if property == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	c.JSON(http.StatusOK, property)
}

// Create validates and persists a new property, returning 201
func (h *PropertyHandler) Create(c *gin.Context) {
	var input models.PropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	property, err := h.service.Create(&input)
	if err != nil {
		// Any create failure is reported as a rejected request
		c.JSON(http.StatusBadRequest, gin.H{"error": rejectionMessage(err)})
		return
	}
	c.JSON(http.StatusCreated, property)
}

// Update overwrites an existing property's mutable fields
func (h *PropertyHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input models.PropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	property, err := h.service.Update(id, &input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": rejectionMessage(err)})
		return
	}
	if property == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	c.JSON(http.StatusOK, property)
}

// Delete removes a property, 204 on success, 404 when absent
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete property"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// SearchByAddress returns properties whose address contains the query text
func (h *PropertyHandler) SearchByAddress(c *gin.Context) {
	properties, err := h.service.SearchByAddress(c.Query("address"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search properties"})
		return
	}
	c.JSON(http.StatusOK, properties)
}

// ByPriceRange returns properties within the inclusive price bounds
func (h *PropertyHandler) ByPriceRange(c *gin.Context) {
	minPrice, okMin := parseFloatParam(c, "minPrice")
	maxPrice, okMax := parseFloatParam(c, "maxPrice")
	if !okMin || !okMax {
		return
	}

	properties, err := h.service.ByPriceRange(minPrice, maxPrice)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to filter properties"})
		return
	}
	c.JSON(http.StatusOK, properties)
}

// BySizeRange returns properties within the inclusive size bounds
func (h *PropertyHandler) BySizeRange(c *gin.Context) {
	minSize, okMin := parseFloatParam(c, "minSize")
	maxSize, okMax := parseFloatParam(c, "maxSize")
	if !okMin || !okMax {
		return
	}

	properties, err := h.service.BySizeRange(minSize, maxSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to filter properties"})
		return
	}
	c.JSON(http.StatusOK, properties)
}

// OrderedByPrice returns the catalog sorted by price
func (h *PropertyHandler) OrderedByPrice(c *gin.Context) {
	properties, err := h.service.OrderedByPrice(parseAscending(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to order properties"})
		return
	}
	c.JSON(http.StatusOK, properties)
}

// OrderedBySize returns the catalog sorted by size
func (h *PropertyHandler) OrderedBySize(c *gin.Context) {
	properties, err := h.service.OrderedBySize(parseAscending(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to order properties"})
		return
	}
	c.JSON(http.StatusOK, properties)
}

// parseID parses the {id} path segment. A non-numeric id cannot match any
// record, so it is reported as not found.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return 0, false
	}
	return id, true
}

func parseFloatParam(c *gin.Context, name string) (float64, bool) {
	value, err := strconv.ParseFloat(c.Query(name), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing parameter: " + name})
		return 0, false
	}
	return value, true
}

func parseAscending(c *gin.Context) bool {
	ascending, err := strconv.ParseBool(c.DefaultQuery("ascending", "true"))
	if err != nil {
		return true
	}
	return ascending
}

func rejectionMessage(err error) string {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		return vErr.Error()
	}
	return "Failed to save property"
}
