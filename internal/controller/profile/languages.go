package profile

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jobdesk-backend/internal/model"
	"jobdesk-backend/internal/utilities"
)

type languageInfo struct {
	Name        string `json:"language_name" binding:"required"`
	Proficiency string `json:"proficiency_level"`
}

// CreateLanguageHandler adds a spoken language to the requester's profile.
// @Summary Add a language
// @Tags Profile
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param language body languageInfo true "Language fields"
// @Success 201 {object} model.Language
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 409 {object} utilities.ErrorResponse "Language already on profile"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /profile/languages [post]
func (pc *ProfileController) CreateLanguageHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var info languageInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	language := model.Language{
		UserID:      user.ID,
		Name:        info.Name,
		Proficiency: info.Proficiency,
	}
	if err := pc.DB.Create(&language).Error; err != nil {
		if utilities.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, utilities.ErrorResponse{
				Error: fmt.Sprintf("Language %q is already on your profile", info.Name),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to create language",
		})
		return
	}

	c.JSON(http.StatusCreated, language)
}

// ListLanguagesHandler returns the languages of one user. Owner or admin only.
// @Summary List languages of a user
// @Tags Profile
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param userId path string true "User ID"
// @Success 200 {array} model.Language
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the profile owner"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /profile/languages/user/{userId} [get]
func (pc *ProfileController) ListLanguagesHandler(c *gin.Context) {
	if _, ok := pc.requireOwner(c); !ok {
		return
	}

	languages := []model.Language{}
	err := pc.DB.
		Where("user_id = ?", c.Param("userId")).
		Order("name ASC").
		Find(&languages).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to fetch languages",
		})
		return
	}

	c.JSON(http.StatusOK, languages)
}

// UpdateLanguageHandler overwrites a language entry on the requester's profile.
// @Summary Edit a language
// @Tags Profile
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Language ID"
// @Param language body languageInfo true "Fields to overwrite"
// @Success 200 {object} model.Language "Updated language"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Language entry not found"
// @Failure 409 {object} utilities.ErrorResponse "Language already on profile"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /profile/languages/{id} [put]
func (pc *ProfileController) UpdateLanguageHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var language model.Language
	err = pc.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		First(&language).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{
				Error: "Language entry not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to fetch language",
		})
		return
	}

	var info languageInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	language.Name = info.Name
	language.Proficiency = info.Proficiency

	if err := pc.DB.Save(&language).Error; err != nil {
		if utilities.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, utilities.ErrorResponse{
				Error: fmt.Sprintf("Language %q is already on your profile", info.Name),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to update language",
		})
		return
	}

	c.JSON(http.StatusOK, language)
}

// DeleteLanguageHandler removes a language from the requester's profile.
// @Summary Delete a language
// @Tags Profile
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Language ID"
// @Success 200 {object} utilities.MessageResponse "Language entry deleted"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Language entry not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /profile/languages/{id} [delete]
func (pc *ProfileController) DeleteLanguageHandler(c *gin.Context) {
	pc.deleteOwned(c, &model.Language{}, "Language")
}
