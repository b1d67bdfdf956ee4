// Package user provides HTTP handlers for account profile operations.
package user

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jobdesk-backend/internal/database"
	"jobdesk-backend/internal/model"
	"jobdesk-backend/internal/utilities"
)

// UserController handles account related endpoints
type UserController struct {
	DB *database.Instance
}

// NewUserController creates a new instance of UserController
func NewUserController(db *database.Instance) *UserController {
	return &UserController{
		DB: db,
	}
}

// GetHandler returns one account. Users can only read themselves.
// @Summary Get an account by ID
// @Tags User
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "User ID"
// @Success 200 {object} model.User
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the account owner"
// @Failure 404 {object} utilities.ErrorResponse "User not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /users/{id} [get]
func (uc *UserController) GetHandler(c *gin.Context) {
	requester, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	targetID := c.Param("id")
	if requester.Role != model.RoleAdmin && requester.ID.String() != targetID {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Cannot read another user's account",
		})
		return
	}

	var target model.User
	if err := uc.DB.Where("id = ?", targetID).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{
				Error: "User not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to fetch user",
		})
		return
	}

	c.JSON(http.StatusOK, target)
}

// UpdateHandler edits the display fields of the requester's own account.
// Email, role and password are not editable here.
// @Summary Edit own account display fields
// @Tags User
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param user body model.EditableUserInfo true "Fields to overwrite"
// @Success 200 {object} model.User "Updated account"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /users/me [put]
func (uc *UserController) UpdateHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var edited model.EditableUserInfo
	if err := c.ShouldBindJSON(&edited); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	utilities.MergeNonEmpty(&user.EditableUserInfo, &edited)

	if err := uc.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to update user",
		})
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeactivateHandler flags the requester's account inactive. Tokens issued
// earlier stop working at the auth middleware.
// @Summary Deactivate own account
// @Tags User
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} utilities.MessageResponse "Account deactivated"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /users/me [delete]
func (uc *UserController) DeactivateHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	err = uc.DB.Model(&model.User{}).
		Where("id = ?", user.ID).
		Update("active", false).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to deactivate user",
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Account deactivated"})
}
