// internal/handlers/catalog/catalog_handler.go
package catalog

import (
	"net/http"
	"strconv"

	"fitlife-service/internal/domain/catalog"
	"fitlife-service/internal/pkg/response"
	service "fitlife-service/internal/service/catalog"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// ListProducts retrieves public products with filters
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var filters catalog.ProductListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	result, err := h.catalogService.ListProducts(c.Request.Context(), &filters)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list products", err)
		return
	}

	response.Success(c, http.StatusOK, "products retrieved", result)
}

// GetProduct retrieves a single product by ID
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid product ID", err)
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "product not found", err)
		return
	}

	response.Success(c, http.StatusOK, "product retrieved", product)
}

// GetProductBySKU retrieves a single product by SKU
func (h *CatalogHandler) GetProductBySKU(c *gin.Context) {
	sku := c.Param("sku")
	if sku == "" {
		response.Error(c, http.StatusBadRequest, "SKU is required", nil)
		return
	}

	product, err := h.catalogService.GetProductBySKU(c.Request.Context(), sku)
	if err != nil {
		response.Error(c, http.StatusNotFound, "product not found", err)
		return
	}

	response.Success(c, http.StatusOK, "product retrieved", product)
}
