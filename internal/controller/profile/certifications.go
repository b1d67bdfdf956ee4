package profile

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jobdesk-backend/internal/model"
	"jobdesk-backend/internal/utilities"
)

type certificationInfo struct {
	Name             string     `json:"certification_name" binding:"required"`
	IssuingAuthority *string    `json:"issuing_authority"`
	IssueDate        *time.Time `json:"issue_date" time_format:"2006-01-02"`
}

// CreateCertificationHandler adds a certification to the requester's profile.
// @Summary Add a certification
// @Tags Profile
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param certification body certificationInfo true "Certification fields"
// @Success 201 {object} model.Certification
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /profile/certifications [post]
func (pc *ProfileController) CreateCertificationHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var info certificationInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	certification := model.Certification{
		UserID:           user.ID,
		Name:             info.Name,
		IssuingAuthority: info.IssuingAuthority,
		IssueDate:        info.IssueDate,
	}
	if err := pc.DB.Create(&certification).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to create certification",
		})
		return
	}

	c.JSON(http.StatusCreated, certification)
}

// ListCertificationsHandler returns the certifications of one user.
// @Summary List certifications of a user
// @Tags Profile
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param userId path string true "User ID"
// @Success 200 {array} model.Certification
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the profile owner"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /profile/certifications/user/{userId} [get]
func (pc *ProfileController) ListCertificationsHandler(c *gin.Context) {
	if _, ok := pc.requireOwner(c); !ok {
		return
	}

	certifications := []model.Certification{}
	err := pc.DB.
		Where("user_id = ?", c.Param("userId")).
		Order("issue_date DESC NULLS LAST").
		Find(&certifications).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to fetch certifications",
		})
		return
	}

	c.JSON(http.StatusOK, certifications)
}

// UpdateCertificationHandler overwrites a certification on the requester's profile.
// @Summary Edit a certification
// @Tags Profile
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Certification ID"
// @Param certification body certificationInfo true "Fields to overwrite"
// @Success 200 {object} model.Certification "Updated certification"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Certification entry not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /profile/certifications/{id} [put]
func (pc *ProfileController) UpdateCertificationHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var certification model.Certification
	err = pc.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		First(&certification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{
				Error: "Certification entry not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to fetch certification",
		})
		return
	}

	var info certificationInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	certification.Name = info.Name
	certification.IssuingAuthority = info.IssuingAuthority
	certification.IssueDate = info.IssueDate

	if err := pc.DB.Save(&certification).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to update certification",
		})
		return
	}

	c.JSON(http.StatusOK, certification)
}

// DeleteCertificationHandler removes a certification from the requester's profile.
// @Summary Delete a certification
// @Tags Profile
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Certification ID"
// @Success 200 {object} utilities.MessageResponse "Certification entry deleted"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Certification entry not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /profile/certifications/{id} [delete]
func (pc *ProfileController) DeleteCertificationHandler(c *gin.Context) {
	pc.deleteOwned(c, &model.Certification{}, "Certification")
}
