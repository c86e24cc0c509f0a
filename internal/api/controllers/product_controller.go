package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aurora/internal/config"
	"aurora/internal/models/request_models"
	"aurora/internal/services"
	"aurora/pkg/utils"
)

type ProductController struct {
	productService services.ProductServiceInterface
	maxUpload      int64
}

func NewProductController(productService services.ProductServiceInterface, storage config.StorageConfig) *ProductController {
	return &ProductController{
		productService: productService,
		maxUpload:      storage.MaxUploadBytes,
	}
}

// ListProducts godoc
// @Summary List products
// @Tags Products
// @Produce json
// @Param category query string false "Exact category, case-insensitive"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=[]db_models.Product}
// @Router /products [get]
func (p *ProductController) ListProducts(c *gin.Context) {
	page, pageSize, ok := pagination(c)
	if !ok {
		return
	}

	products, err := p.productService.ListProducts(c.Request.Context(), c.Query("category"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, products, "Products fetched successfully")
}

// GetProduct godoc
// @Summary Get a product
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} utils.APIResponse{data=db_models.Product}
// @Failure 404 {object} utils.APIResponse
// @Router /products/{id} [get]
func (p *ProductController) GetProduct(c *gin.Context) {
	product, err := p.productService.GetProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, product, "Product fetched successfully")
}

// CreateProduct godoc
// @Summary Create a product
// @Tags Products
// @Accept json
// @Produce json
// @Param request body request_models.CreateProductRequest true "Product"
// @Success 201 {object} utils.APIResponse{data=db_models.Product}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /products [post]
func (p *ProductController) CreateProduct(c *gin.Context) {
	var req request_models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	product, err := p.productService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, product, "Product created successfully")
}

// UpdateProduct godoc
// @Summary Update a product
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body request_models.UpdateProductRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse{data=db_models.Product}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /products/{id} [put]
func (p *ProductController) UpdateProduct(c *gin.Context) {
	var req request_models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	product, err := p.productService.UpdateProduct(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, product, "Product updated successfully")
}

// DeleteProduct godoc
// @Summary Delete a product
// @Tags Products
// @Param id path string true "Product ID"
// @Success 204
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /products/{id} [delete]
func (p *ProductController) DeleteProduct(c *gin.Context) {
	if err := p.productService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadProductImage godoc
// @Summary Set the product picture
// @Tags Products
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Product ID"
// @Param image formData file true "Picture"
// @Success 200 {object} utils.APIResponse{data=db_models.Product}
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /products/{id}/image [post]
func (p *ProductController) UploadProductImage(c *gin.Context) {
	data, ok := readImageField(c, p.maxUpload)
	if !ok {
		return
	}
	if p.maxUpload > 0 && int64(len(data)) > p.maxUpload {
		utils.RespondFieldErrors(c, http.StatusBadRequest, "Validation failed",
			map[string][]string{imageField: {"File too large."}})
		return
	}

	product, err := p.productService.UpdateImage(c.Request.Context(), c.Param("id"), data)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, product, "Product image updated")
}
