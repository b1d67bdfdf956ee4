// Package job provides HTTP handlers for job catalog operations.
package job

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

// JobController handles job catalog related endpoints
type JobController struct {
	DB *database.Instance
}

// NewJobController creates a new instance of JobController
func NewJobController(db *database.Instance) *JobController {
	return &JobController{
		DB: db,
	}
}

// CreateHandler creates a job post owned by the requester's company.
// @Summary Create a job post
// @Description Only employers can access this endpoint; employment_type is a closed enumeration
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param job body model.EditableJobInfo true "Job post fields"
// @Success 201 {object} model.Job "Successfully created job post"
// @Failure 400 {object} utilities.ErrorResponse "Invalid body or unknown employment type"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as an employer"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [post]
func (jc *JobController) CreateHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	company, err := utilities.CompanyForUser(jc.DB.DB, user)
	if err != nil {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Only employers with a company can create job posts",
		})
		return
	}

	var info model.EditableJobInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if info.Title == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Job title is required",
		})
		return
	}

	if !model.ValidEmploymentType(info.EmploymentType) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error:   fmt.Sprintf("Unknown employment type %q", info.EmploymentType),
			Details: fmt.Sprintf("Known types: %v", model.EmploymentTypes),
		})
		return
	}

	jobPost := model.Job{
		CompanyID:       company.ID,
		EditableJobInfo: info,
	}
	if err := jc.DB.Create(&jobPost).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to create job post",
		})
		return
	}

	c.JSON(http.StatusCreated, jobPost)
}

// ListHandler fetches active job posts joined with their company name.
// The search query matches title, company name, or location with
// case-insensitive substrings; employment_type must match exactly.
// @Summary List active job posts
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param search query string false "Substring match on title, company name, or location"
// @Param employment_type query string false "Exact employment type"
// @Success 200 {array} model.JobListing "Active job posts"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [get]
func (jc *JobController) ListHandler(c *gin.Context) {
	rawSearch := c.Query("search")
	rawType := c.Query("employment_type")

	query := jc.DB.Model(&model.Job{}).
		Select("jobs.*, companies.name AS company_name").
		Joins("JOIN companies ON companies.id = jobs.company_id").
		Where("jobs.active = ?", true)

	if rawType != "" {
		query = query.Where("jobs.employment_type = ?", rawType)
	}

	if rawSearch != "" {
		pattern := "%" + rawSearch + "%"
		query = query.Where(
			"jobs.title ILIKE ? OR companies.name ILIKE ? OR jobs.location ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	listings := []model.JobListing{}
	if err := query.Order("jobs.posted_date DESC").Scan(&listings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to fetch job posts",
		})
		return
	}

	c.JSON(http.StatusOK, listings)
}

// GetByIDHandler fetches a single job post with its company name.
// @Summary Get a job post by ID
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Job ID"
// @Success 200 {object} model.JobListing
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Job post not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [get]
func (jc *JobController) GetByIDHandler(c *gin.Context) {
	var listing model.JobListing
	err := jc.DB.Model(&model.Job{}).
		Select("jobs.*, companies.name AS company_name").
		Joins("JOIN companies ON companies.id = jobs.company_id").
		Where("jobs.id = ?", c.Param("id")).
		First(&listing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{
				Error: "Job post not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to fetch job post",
		})
		return
	}

	c.JSON(http.StatusOK, listing)
}

// ListByCompanyHandler fetches every job post owned by a company, newest first.
// @Summary List job posts of a company
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param companyId path integer true "Company ID"
// @Success 200 {array} model.Job
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/company/{companyId} [get]
func (jc *JobController) ListByCompanyHandler(c *gin.Context) {
	jobs := []model.Job{}
	err := jc.DB.
		Where("company_id = ?", c.Param("companyId")).
		Order("posted_date DESC").
		Find(&jobs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to fetch job posts",
		})
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// UpdateHandler overwrites the editable part of a job post. Owner only.
// @Summary Edit a job post
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Job ID"
// @Param job body model.EditableJobInfo true "Fields to overwrite"
// @Success 200 {object} model.Job "Updated job post"
// @Failure 400 {object} utilities.ErrorResponse "Invalid body or unknown employment type"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Job not owned by requester's company"
// @Failure 404 {object} utilities.ErrorResponse "Job post not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [put]
func (jc *JobController) UpdateHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	jobPost, ok := jc.loadOwnedJob(c, user)
	if !ok {
		return
	}

	var edited model.EditableJobInfo
	if err := c.ShouldBindJSON(&edited); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if edited.EmploymentType != "" && !model.ValidEmploymentType(edited.EmploymentType) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error:   fmt.Sprintf("Unknown employment type %q", edited.EmploymentType),
			Details: fmt.Sprintf("Known types: %v", model.EmploymentTypes),
		})
		return
	}

	utilities.MergeNonEmpty(&jobPost.EditableJobInfo, &edited)

	if err := jc.DB.Save(&jobPost).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to update job post",
		})
		return
	}

	c.JSON(http.StatusOK, jobPost)
}

// DeleteHandler removes a job post. Dependent applications are archived in
// the same transaction so no application ever points at a missing job.
// @Summary Delete a job post
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Job ID"
// @Success 200 {object} utilities.MessageResponse "Job deleted, applications archived"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Job not owned by requester's company"
// @Failure 404 {object} utilities.ErrorResponse "Job post not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [delete]
func (jc *JobController) DeleteHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	jobPost, ok := jc.loadOwnedJob(c, user)
	if !ok {
		return
	}

	err = jc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Application{}).
			Where("job_id = ?", jobPost.ID).
			Update("status", model.StatusArchived).Error; err != nil {
			return err
		}
		return tx.Delete(&jobPost).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to delete job post",
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job deleted and applications archived"})
}

// loadOwnedJob fetches the job named by :id and checks the requester's company
// owns it, writing the error response itself when either fails.
func (jc *JobController) loadOwnedJob(c *gin.Context, user model.User) (model.Job, bool) {
	var jobPost model.Job
	if err := jc.DB.Where("id = ?", c.Param("id")).First(&jobPost).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{
				Error: "Job post not found",
			})
			return jobPost, false
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to fetch job post",
		})
		return jobPost, false
	}

	if user.Role == model.RoleAdmin {
		return jobPost, true
	}

	company, err := utilities.CompanyForUser(jc.DB.DB, user)
	if err != nil || company.ID != jobPost.CompanyID {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Job does not belong to your company",
		})
		return jobPost, false
	}

	return jobPost, true
}
