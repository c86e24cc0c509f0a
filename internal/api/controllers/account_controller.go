package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aurora/internal/models/request_models"
	"aurora/internal/models/response_models"
	"aurora/internal/services"
	"aurora/pkg/middleware"
	"aurora/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// Register godoc
// @Summary Register a new account
// @Description Create a user account and return a credential pair
// @Tags Users
// @Accept json
// @Produce json
// @Param request body request_models.RegisterRequest true "Account registration payload"
// @Success 201 {object} utils.APIResponse{data=response_models.AuthResponse}
// @Failure 400 {object} utils.APIResponse
// @Router /users/register [post]
func (a *AccountController) Register(c *gin.Context) {
	var req request_models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := a.accountService.Register(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, resp, "Account created successfully")
}

// Login godoc
// @Summary Obtain a credential pair
// @Description Authenticate a staff account and return access and refresh tokens
// @Tags Users
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse{data=response_models.AuthResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /users/token [post]
func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := a.accountService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Login successful")
}

// RefreshToken godoc
// @Summary Refresh an access token
// @Tags Users
// @Accept json
// @Produce json
// @Param request body request_models.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} utils.APIResponse{data=response_models.RefreshResponse}
// @Failure 401 {object} utils.APIResponse
// @Router /users/token/refresh [post]
func (a *AccountController) RefreshToken(c *gin.Context) {
	var req request_models.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := a.accountService.RefreshToken(c.Request.Context(), req.Refresh)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Token refreshed")
}

// CreateAdmin godoc
// @Summary Ensure the administrator account exists
// @Description Idempotently creates the bootstrap administrator or restores its privileges
// @Tags Users
// @Produce json
// @Success 200 {object} utils.APIResponse{data=response_models.EnsureAdminResponse}
// @Failure 400 {object} utils.APIResponse
// @Router /users/create-admin [post]
func (a *AccountController) CreateAdmin(c *gin.Context) {
	admin, err := a.accountService.EnsureAdmin(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.EnsureAdminResponse{
		Email:       admin.Email,
		Username:    admin.Username,
		IsStaff:     admin.IsStaff,
		IsSuperuser: admin.IsSuperuser,
		IsActive:    admin.IsActive,
	}, "Admin user is ready")
}

// ListAccounts godoc
// @Summary List accounts
// @Description Staff see every account; other callers see only their own
// @Tags Users
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=[]response_models.AccountResponse}
// @Failure 401 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users [get]
func (a *AccountController) ListAccounts(c *gin.Context) {
	page, pageSize, ok := pagination(c)
	if !ok {
		return
	}

	accounts, err := a.accountService.ListAccounts(c.Request.Context(), middleware.PrincipalFrom(c), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, accounts, "Accounts fetched successfully")
}

// GetAccount godoc
// @Summary Get an account
// @Tags Users
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} utils.APIResponse{data=response_models.AccountResponse}
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (a *AccountController) GetAccount(c *gin.Context) {
	account, err := a.accountService.GetAccount(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, account, "Account fetched successfully")
}

// UpdateAccount godoc
// @Summary Update your profile
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body request_models.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse{data=response_models.AccountResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/{id} [put]
func (a *AccountController) UpdateAccount(c *gin.Context) {
	var req request_models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	account, err := a.accountService.UpdateProfile(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, account, "Account updated successfully")
}

// DeleteAccount godoc
// @Summary Delete your account
// @Tags Users
// @Param id path string true "Account ID"
// @Success 204
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/{id} [delete]
func (a *AccountController) DeleteAccount(c *gin.Context) {
	if err := a.accountService.DeleteAccount(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
