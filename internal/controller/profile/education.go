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

type educationInfo struct {
	School            string     `json:"school_name" binding:"required"`
	SchoolLocation    *string    `json:"school_location"`
	Degree            string     `json:"degree" binding:"required"`
	FieldOfStudy      *string    `json:"field_of_study"`
	StartDate         time.Time  `json:"start_date" binding:"required" time_format:"2006-01-02"`
	EndDate           *time.Time `json:"end_date" time_format:"2006-01-02"`
	CurrentlyStudying bool       `json:"currently_studying"`
	GPA               *string    `json:"gpa"`
	Honors            *string    `json:"honors_awards"`
}

// CreateEducationHandler adds a schooling entry to the requester's profile.
// @Summary Add an education entry
// @Tags Profile
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param education body educationInfo true "Education fields"
// @Success 201 {object} model.Education
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /profile/education [post]
func (pc *ProfileController) CreateEducationHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var info educationInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	education := model.Education{
		UserID:            user.ID,
		School:            info.School,
		SchoolLocation:    info.SchoolLocation,
		Degree:            info.Degree,
		FieldOfStudy:      info.FieldOfStudy,
		StartDate:         info.StartDate,
		EndDate:           info.EndDate,
		CurrentlyStudying: info.CurrentlyStudying,
		GPA:               info.GPA,
		Honors:            info.Honors,
	}
	if err := pc.DB.Create(&education).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to create education entry",
		})
		return
	}

	c.JSON(http.StatusCreated, education)
}

// ListEducationHandler returns the schooling entries of one user, newest first.
// @Summary List education entries of a user
// @Tags Profile
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param userId path string true "User ID"
// @Success 200 {array} model.Education
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the profile owner"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /profile/education/user/{userId} [get]
func (pc *ProfileController) ListEducationHandler(c *gin.Context) {
	if _, ok := pc.requireOwner(c); !ok {
		return
	}

	entries := []model.Education{}
	err := pc.DB.
		Where("user_id = ?", c.Param("userId")).
		Order("start_date DESC").
		Find(&entries).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to fetch education entries",
		})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// UpdateEducationHandler overwrites a schooling entry on the requester's profile.
// @Summary Edit an education entry
// @Tags Profile
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Education ID"
// @Param education body educationInfo true "Fields to overwrite"
// @Success 200 {object} model.Education "Updated entry"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Education entry not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /profile/education/{id} [put]
func (pc *ProfileController) UpdateEducationHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var education model.Education
	err = pc.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		First(&education).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{
				Error: "Education entry not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to fetch education entry",
		})
		return
	}

	var info educationInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	education.School = info.School
	education.SchoolLocation = info.SchoolLocation
	education.Degree = info.Degree
	education.FieldOfStudy = info.FieldOfStudy
	education.StartDate = info.StartDate
	education.EndDate = info.EndDate
	education.CurrentlyStudying = info.CurrentlyStudying
	education.GPA = info.GPA
	education.Honors = info.Honors

	if err := pc.DB.Save(&education).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to update education entry",
		})
		return
	}

	c.JSON(http.StatusOK, education)
}

// DeleteEducationHandler removes a schooling entry from the requester's profile.
// @Summary Delete an education entry
// @Tags Profile
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Education ID"
// @Success 200 {object} utilities.MessageResponse "Education entry deleted"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Education entry not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /profile/education/{id} [delete]
func (pc *ProfileController) DeleteEducationHandler(c *gin.Context) {
	pc.deleteOwned(c, &model.Education{}, "Education")
}
