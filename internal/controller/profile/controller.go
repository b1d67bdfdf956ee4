// Package profile provides HTTP handlers for seeker profile extensions:
// skills, education, certifications and languages. Every row is owned by one
// user and every handler filters by that owner.
package profile

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobdesk-backend/internal/database"
	"jobdesk-backend/internal/model"
	"jobdesk-backend/internal/utilities"
)

// ProfileController handles seeker profile extension endpoints
type ProfileController struct {
	DB *database.Instance
}

// NewProfileController creates a new instance of ProfileController
func NewProfileController(db *database.Instance) *ProfileController {
	return &ProfileController{
		DB: db,
	}
}

// requireOwner extracts the authenticated user and checks the userId path
// parameter names them, unless they are an admin. Writes the error response
// itself when the check fails.
func (pc *ProfileController) requireOwner(c *gin.Context) (model.User, bool) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return user, false
	}

	targetID := c.Param("userId")
	if user.Role != model.RoleAdmin && user.ID.String() != targetID {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Cannot access another user's profile",
		})
		return user, false
	}

	return user, true
}

// deleteOwned deletes one profile row scoped to its owner. The user_id filter
// makes deleting another user's row indistinguishable from a missing row.
func (pc *ProfileController) deleteOwned(c *gin.Context, entity interface{}, kind string) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	result := pc.DB.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).Delete(entity)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to delete " + kind,
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{
			Error: kind + " entry not found",
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: kind + " entry deleted"})
}
