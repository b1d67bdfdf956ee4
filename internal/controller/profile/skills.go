package profile

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobdesk-backend/internal/model"
	"jobdesk-backend/internal/utilities"
)

type skillInfo struct {
	Name        string `json:"skill_name" binding:"required"`
	Proficiency string `json:"proficiency_level"`
}

// CreateSkillHandler adds a skill to the requester's profile.
// @Summary Add a skill
// @Tags Profile
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param skill body skillInfo true "Skill fields"
// @Success 201 {object} model.Skill
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 409 {object} utilities.ErrorResponse "Skill already on profile"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /profile/skills [post]
func (pc *ProfileController) CreateSkillHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var info skillInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	skill := model.Skill{
		UserID:      user.ID,
		Name:        info.Name,
		Proficiency: info.Proficiency,
	}
	if err := pc.DB.Create(&skill).Error; err != nil {
		if utilities.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, utilities.ErrorResponse{
				Error: fmt.Sprintf("Skill %q is already on your profile", info.Name),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to create skill",
		})
		return
	}

	c.JSON(http.StatusCreated, skill)
}

// ListSkillsHandler returns the skills of one user. Owner or admin only.
// @Summary List skills of a user
// @Tags Profile
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param userId path string true "User ID"
// @Success 200 {array} model.Skill
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the profile owner"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /profile/skills/user/{userId} [get]
func (pc *ProfileController) ListSkillsHandler(c *gin.Context) {
	if _, ok := pc.requireOwner(c); !ok {
		return
	}

	skills := []model.Skill{}
	err := pc.DB.
		Where("user_id = ?", c.Param("userId")).
		Order("name ASC").
		Find(&skills).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to fetch skills",
		})
		return
	}

	c.JSON(http.StatusOK, skills)
}

// DeleteSkillHandler removes a skill from the requester's profile.
// @Summary Delete a skill
// @Tags Profile
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Skill ID"
// @Success 200 {object} utilities.MessageResponse "Skill entry deleted"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Skill entry not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /profile/skills/{id} [delete]
func (pc *ProfileController) DeleteSkillHandler(c *gin.Context) {
	pc.deleteOwned(c, &model.Skill{}, "Skill")
}
