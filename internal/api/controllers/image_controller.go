package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"aurora/internal/config"
	"aurora/internal/services"
	"aurora/pkg/middleware"
	"aurora/pkg/utils"
)

const maxAnalysisBody = 1 << 20

type ImageController struct {
	imageService services.ImageServiceInterface
	maxUpload    int64
}

func NewImageController(imageService services.ImageServiceInterface, storage config.StorageConfig) *ImageController {
	return &ImageController{
		imageService: imageService,
		maxUpload:    storage.MaxUploadBytes,
	}
}

// UploadImage godoc
// @Summary Upload a skin image
// @Tags Images
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image"
// @Success 201 {object} utils.APIResponse{data=response_models.ImageResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Security BearerAuth
// @Router /images [post]
func (i *ImageController) UploadImage(c *gin.Context) {
	data, ok := readImageField(c, i.maxUpload)
	if !ok {
		return
	}

	image, err := i.imageService.Upload(c.Request.Context(), middleware.PrincipalFrom(c), data)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, image, "Image uploaded successfully")
}

// ListImages godoc
// @Summary List uploaded images
// @Tags Images
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=[]response_models.ImageResponse}
// @Security BearerAuth
// @Router /images [get]
func (i *ImageController) ListImages(c *gin.Context) {
	page, pageSize, ok := pagination(c)
	if !ok {
		return
	}

	images, err := i.imageService.ListImages(c.Request.Context(), middleware.PrincipalFrom(c), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, images, "Images fetched successfully")
}

// GetImage godoc
// @Summary Get an uploaded image
// @Tags Images
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} utils.APIResponse{data=response_models.ImageResponse}
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /images/{id} [get]
func (i *ImageController) GetImage(c *gin.Context) {
	image, err := i.imageService.GetImage(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, image, "Image fetched successfully")
}

// DeleteImage godoc
// @Summary Delete an uploaded image
// @Tags Images
// @Param id path string true "Image ID"
// @Success 204
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /images/{id} [delete]
func (i *ImageController) DeleteImage(c *gin.Context) {
	if err := i.imageService.DeleteImage(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AnalyzeImage godoc
// @Summary Record an analysis result
// @Description Stores a result computed by the external analysis provider and resolves recommended products against the catalog
// @Tags Images
// @Accept json
// @Produce json
// @Param id path string true "Image ID"
// @Param request body request_models.AnalyzeImageRequest true "Analysis result"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /images/{id}/analyze [post]
func (i *ImageController) AnalyzeImage(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxAnalysisBody))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := i.imageService.Analyze(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), body)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Analysis recorded")
}
