// Package application provides HTTP handlers for job application operations.
package application

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jobdesk-backend/internal/database"
	"jobdesk-backend/internal/model"
	"jobdesk-backend/internal/utilities"
)

// ApplicationController handles job application related endpoints
type ApplicationController struct {
	DB *database.Instance
}

// NewApplicationController creates a new instance of ApplicationController with the provided database connection.
func NewApplicationController(db *database.Instance) *ApplicationController {
	return &ApplicationController{
		DB: db,
	}
}

type submitInfo struct {
	JobID       uint       `json:"job_id" binding:"required"`
	SubmittedAt *time.Time `json:"application_date"`
	ResumeRef   string     `json:"resume"`
	CoverLetter string     `json:"cover_letter"`
}

type statusInfo struct {
	Status string `json:"status" binding:"required"`
}

// SubmitHandler records a seeker's application against a job.
// The pre-check for an existing application only buys a friendlier message;
// the composite unique index closes the race between concurrent submissions.
// @Summary Apply to a job post
// @Description Only job seekers can access this endpoint; one application per job
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param application body submitInfo true "Application information"
// @Success 201 {object} model.Application "Successfully applied"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as a job seeker"
// @Failure 404 {object} utilities.ErrorResponse "Job post not found or inactive"
// @Failure 409 {object} utilities.ErrorResponse "Already applied to this job"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications [post]
func (ac *ApplicationController) SubmitHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var info submitInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	var job model.Job
	if err := ac.DB.Where("id = ? AND active = ?", info.JobID, true).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{
				Error: "Job post not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to look up job post",
		})
		return
	}

	var existing model.Application
	if err := ac.DB.
		Where("user_id = ? AND job_id = ?", user.ID, info.JobID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, utilities.ErrorResponse{
			Error: "You have already applied to this job post",
		})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to check existing application",
		})
		return
	}

	submittedAt := time.Now()
	if info.SubmittedAt != nil {
		submittedAt = *info.SubmittedAt
	}

	app := model.Application{
		UserID:      user.ID,
		JobID:       info.JobID,
		SubmittedAt: submittedAt,
		Status:      model.StatusApplied,
		ResumeRef:   info.ResumeRef,
		CoverLetter: info.CoverLetter,
	}

	if err := ac.DB.Create(&app).Error; err != nil {
		if utilities.IsUniqueViolation(err) {
			// Lost the race to a concurrent duplicate submission.
			c.JSON(http.StatusConflict, utilities.ErrorResponse{
				Error: "You have already applied to this job post",
			})
			return
		}
		if utilities.IsForeignKeyViolation(err) {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: "Invalid job reference",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to create application",
		})
		return
	}

	c.JSON(http.StatusCreated, app)
}

// ListForUserHandler returns a seeker's applications joined with job and
// company columns, newest first.
// @Summary List applications submitted by a user
// @Description Seekers can only read their own applications
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param userId path string true "User ID"
// @Success 200 {array} model.UserApplication "Applications with job and company info"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the owning user"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/user/{userId} [get]
func (ac *ApplicationController) ListForUserHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	userID := c.Param("userId")
	if user.Role != model.RoleAdmin && user.ID.String() != userID {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Cannot read another user's applications",
		})
		return
	}

	apps := []model.UserApplication{}
	err = ac.DB.Model(&model.Application{}).
		Select("applications.*, jobs.title AS job_title, jobs.location AS job_location, jobs.employment_type AS employment_type, companies.name AS company_name").
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Joins("JOIN companies ON companies.id = jobs.company_id").
		Where("applications.user_id = ?", userID).
		Order("applications.submitted_at DESC").
		Scan(&apps).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to fetch applications",
		})
		return
	}

	c.JSON(http.StatusOK, apps)
}

// ListForCompanyHandler returns every application against the company's jobs,
// with applicant contact columns for triage.
// @Summary List applications received by a company
// @Description Only the owning employer can access this endpoint
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param companyId path integer true "Company ID"
// @Success 200 {array} model.CompanyApplication "Applications with applicant info"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the owning employer"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/company/{companyId} [get]
func (ac *ApplicationController) ListForCompanyHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	companyID := c.Param("companyId")

	if user.Role != model.RoleAdmin {
		company, err := utilities.CompanyForUser(ac.DB.DB, user)
		if err != nil || fmt.Sprint(company.ID) != companyID {
			c.JSON(http.StatusForbidden, utilities.ErrorResponse{
				Error: "Cannot read another company's applications",
			})
			return
		}
	}

	apps := []model.CompanyApplication{}
	err = ac.DB.Model(&model.Application{}).
		Select("applications.*, jobs.title AS job_title, users.full_name AS applicant_name, users.email AS applicant_email, users.phone AS applicant_phone").
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Joins("JOIN users ON users.id = applications.user_id").
		Where("jobs.company_id = ?", companyID).
		Order("applications.submitted_at DESC").
		Scan(&apps).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to fetch applications",
		})
		return
	}

	c.JSON(http.StatusOK, apps)
}

// GetByIDHandler returns one application. Readable by the applying seeker and
// the employer owning the job.
// @Summary Get an application by ID
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Application ID"
// @Success 200 {object} model.Application
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not entitled to this application"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/{id} [get]
func (ac *ApplicationController) GetByIDHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	app, ok := ac.loadApplication(c)
	if !ok {
		return
	}

	if !ac.mayAccess(user, app) {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Cannot read this application",
		})
		return
	}

	c.JSON(http.StatusOK, app)
}

// UpdateStatusHandler moves an application to another status label. Any jump
// among the five known labels is allowed; the set itself is closed.
// @Summary Update application status
// @Description Only the employer owning the job can transition status
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Application ID"
// @Param status body statusInfo true "New status label"
// @Success 200 {object} model.Application "Updated application"
// @Failure 400 {object} utilities.ErrorResponse "Unknown status label"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Job not owned by requester's company"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/{id}/status [patch]
func (ac *ApplicationController) UpdateStatusHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var info statusInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Status must be provided",
		})
		return
	}

	if !model.ValidStatus(info.Status) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error:   fmt.Sprintf("Unknown status %q", info.Status),
			Details: fmt.Sprintf("Known statuses: %v", model.SettableStatuses),
		})
		return
	}

	app, ok := ac.loadApplication(c)
	if !ok {
		return
	}

	if user.Role != model.RoleAdmin {
		company, err := utilities.CompanyForUser(ac.DB.DB, user)
		if err != nil || company.ID != app.Job.CompanyID {
			c.JSON(http.StatusForbidden, utilities.ErrorResponse{
				Error: "Job does not belong to your company",
			})
			return
		}
	}

	if err := ac.DB.Model(&app).Update("status", info.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to update application status",
		})
		return
	}

	c.JSON(http.StatusOK, app)
}

// WithdrawHandler hard-deletes an application. Only the applying seeker may
// withdraw; nothing downstream references a withdrawn application.
// @Summary Withdraw an application
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Application ID"
// @Success 200 {object} utilities.MessageResponse "Application withdrawn"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the applying seeker"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/{id} [delete]
func (ac *ApplicationController) WithdrawHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	app, ok := ac.loadApplication(c)
	if !ok {
		return
	}

	if user.Role != model.RoleAdmin && app.UserID != user.ID {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Cannot withdraw another user's application",
		})
		return
	}

	if err := ac.DB.Delete(&model.Application{}, app.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to withdraw application",
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Application withdrawn"})
}

// loadApplication fetches the application named by the :id path param with its
// job preloaded, writing the error response itself when that fails.
func (ac *ApplicationController) loadApplication(c *gin.Context) (model.Application, bool) {
	var app model.Application
	err := ac.DB.
		Preload("Job", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("id = ?", c.Param("id")).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{
				Error: "Application not found",
			})
			return app, false
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to fetch application",
		})
		return app, false
	}
	return app, true
}

func (ac *ApplicationController) mayAccess(user model.User, app model.Application) bool {
	if user.Role == model.RoleAdmin || app.UserID == user.ID {
		return true
	}
	if user.Role == model.RoleEmployer {
		company, err := utilities.CompanyForUser(ac.DB.DB, user)
		return err == nil && company.ID == app.Job.CompanyID
	}
	return false
}
