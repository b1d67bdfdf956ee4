// Package company provides HTTP handlers for company directory operations.
package company

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobdesk-backend/internal/database"
	"jobdesk-backend/internal/model"
	"jobdesk-backend/internal/utilities"
)

// CompanyController handles company related endpoints
type CompanyController struct {
	DB *database.Instance
}

// NewCompanyController creates a new instance of CompanyController
func NewCompanyController(db *database.Instance) *CompanyController {
	return &CompanyController{
		DB: db,
	}
}

// ListHandler returns every company on the board.
// @Summary List companies
// @Tags Company
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Company
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /companies [get]
func (cc *CompanyController) ListHandler(c *gin.Context) {
	companies := []model.Company{}
	if err := cc.DB.Order("created_at DESC").Find(&companies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to fetch companies",
		})
		return
	}

	c.JSON(http.StatusOK, companies)
}

// GetByIDHandler returns one company.
// @Summary Get a company by ID
// @Tags Company
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Company ID"
// @Success 200 {object} model.Company
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Company not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /companies/{id} [get]
func (cc *CompanyController) GetByIDHandler(c *gin.Context) {
	company, ok := cc.loadCompany(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, company)
}

type createCompanyInfo struct {
	OwnerUserID string `json:"user_id" binding:"required"`
	model.EditableCompanyInfo
}

// CreateHandler creates a company for an existing employer that has none.
// Normal provisioning happens atomically at employer registration; this
// admin-only path exists to repair accounts.
// @Summary Create a company for an employer (admin)
// @Tags Company
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param company body createCompanyInfo true "Owner and company fields"
// @Success 201 {object} model.Company
// @Failure 400 {object} utilities.ErrorResponse "Invalid body or owner is not an employer"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an admin"
// @Failure 409 {object} utilities.ErrorResponse "Employer already owns a company"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /companies [post]
func (cc *CompanyController) CreateHandler(c *gin.Context) {
	var info createCompanyInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Owner user_id and company_name are required",
		})
		return
	}

	if info.Name == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Company name is required",
		})
		return
	}

	ownerID, err := uuid.Parse(info.OwnerUserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "user_id is not a valid UUID",
		})
		return
	}

	var owner model.User
	if err := cc.DB.Where("id = ? AND role = ?", ownerID, model.RoleEmployer).First(&owner).Error; err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Owner must be an existing employer",
		})
		return
	}

	company := model.Company{
		OwnerID:             ownerID,
		EditableCompanyInfo: info.EditableCompanyInfo,
	}
	if err := cc.DB.Create(&company).Error; err != nil {
		if utilities.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, utilities.ErrorResponse{
				Error: "Employer already owns a company",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to create company",
		})
		return
	}

	c.JSON(http.StatusCreated, company)
}

// UpdateHandler overwrites the editable part of a company profile. Owner only.
// @Summary Edit a company profile
// @Tags Company
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Company ID"
// @Param company body model.EditableCompanyInfo true "Fields to overwrite"
// @Success 200 {object} model.Company "Updated company"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the owning employer"
// @Failure 404 {object} utilities.ErrorResponse "Company not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /companies/{id} [put]
func (cc *CompanyController) UpdateHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	company, ok := cc.loadCompany(c)
	if !ok {
		return
	}

	if user.Role != model.RoleAdmin && company.OwnerID != user.ID {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Cannot edit another employer's company",
		})
		return
	}

	var edited model.EditableCompanyInfo
	if err := c.ShouldBindJSON(&edited); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if edited.EmployeeCount != nil && *edited.EmployeeCount < 0 {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "no_of_employees must not be negative",
		})
		return
	}

	utilities.MergeNonEmpty(&company.EditableCompanyInfo, &edited)

	if err := cc.DB.Save(&company).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to update company",
		})
		return
	}

	c.JSON(http.StatusOK, company)
}

// DeleteHandler removes a company and everything hanging off it in one
// transaction: applications against its jobs are archived, jobs are
// soft-deleted, contacts are removed, then the company row itself goes.
// @Summary Delete a company and cascade to its jobs and contacts
// @Tags Company
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Company ID"
// @Success 200 {object} utilities.MessageResponse "Company deleted"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the owning employer"
// @Failure 404 {object} utilities.ErrorResponse "Company not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /companies/{id} [delete]
func (cc *CompanyController) DeleteHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	company, ok := cc.loadCompany(c)
	if !ok {
		return
	}

	if user.Role != model.RoleAdmin && company.OwnerID != user.ID {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Cannot delete another employer's company",
		})
		return
	}

	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Application{}).
			Where("job_id IN (?)", tx.Model(&model.Job{}).Select("id").Where("company_id = ?", company.ID)).
			Update("status", model.StatusArchived).Error; err != nil {
			return err
		}
		if err := tx.Where("company_id = ?", company.ID).Delete(&model.Job{}).Error; err != nil {
			return err
		}
		if err := tx.Where("company_id = ?", company.ID).Delete(&model.Contact{}).Error; err != nil {
			return err
		}
		return tx.Delete(&company).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to delete company",
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Company deleted"})
}

func (cc *CompanyController) loadCompany(c *gin.Context) (model.Company, bool) {
	var company model.Company
	if err := cc.DB.Where("id = ?", c.Param("id")).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{
				Error: "Company not found",
			})
			return company, false
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to fetch company",
		})
		return company, false
	}
	return company, true
}
