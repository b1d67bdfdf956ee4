// Package contact provides HTTP handlers for recruiter contact operations.
package contact

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

// ContactController handles recruiter contact related endpoints
type ContactController struct {
	DB *database.Instance
}

// NewContactController creates a new instance of ContactController
func NewContactController(db *database.Instance) *ContactController {
	return &ContactController{
		DB: db,
	}
}

type contactInfo struct {
	Name  string  `json:"contact_name" binding:"required"`
	Title *string `json:"job_title"`
	Email string  `json:"email" binding:"required,email"`
	Phone *string `json:"phone"`
}

// CreateHandler adds a recruiter contact to the requester's own company.
// @Summary Create a recruiter contact
// @Tags Contact
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param contact body contactInfo true "Contact fields"
// @Success 201 {object} model.Contact
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an employer with a company"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /contacts [post]
func (cc *ContactController) CreateHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	company, err := utilities.CompanyForUser(cc.DB.DB, user)
	if err != nil {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Only employers with a company can add contacts",
		})
		return
	}

	var info contactInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	contact := model.Contact{
		CompanyID: company.ID,
		Name:      info.Name,
		Title:     info.Title,
		Email:     info.Email,
		Phone:     info.Phone,
	}
	if err := cc.DB.Create(&contact).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to create contact",
		})
		return
	}

	c.JSON(http.StatusCreated, contact)
}

// ListHandler returns every contact on the board joined with its company name.
// @Summary List all recruiter contacts
// @Tags Contact
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.ContactListing
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /contacts [get]
func (cc *ContactController) ListHandler(c *gin.Context) {
	listings := []model.ContactListing{}
	err := cc.DB.Model(&model.Contact{}).
		Select("contacts.*, companies.name AS company_name").
		Joins("JOIN companies ON companies.id = contacts.company_id").
		Order("contacts.name ASC").
		Scan(&listings).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to fetch contacts",
		})
		return
	}

	c.JSON(http.StatusOK, listings)
}

// ListByCompanyHandler returns the contacts of one company.
// @Summary List recruiter contacts of a company
// @Tags Contact
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param companyId path integer true "Company ID"
// @Success 200 {array} model.Contact
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /contacts/company/{companyId} [get]
func (cc *ContactController) ListByCompanyHandler(c *gin.Context) {
	contacts := []model.Contact{}
	err := cc.DB.
		Where("company_id = ?", c.Param("companyId")).
		Order("name ASC").
		Find(&contacts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to fetch contacts",
		})
		return
	}

	c.JSON(http.StatusOK, contacts)
}

// UpdateHandler edits a contact belonging to the requester's company.
// @Summary Edit a recruiter contact
// @Tags Contact
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Contact ID"
// @Param contact body contactInfo true "Fields to overwrite"
// @Success 200 {object} model.Contact "Updated contact"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Contact not owned by requester's company"
// @Failure 404 {object} utilities.ErrorResponse "Contact not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /contacts/{id} [put]
func (cc *ContactController) UpdateHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	contact, ok := cc.loadOwnedContact(c, user)
	if !ok {
		return
	}

	var info contactInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	contact.Name = info.Name
	contact.Email = info.Email
	if info.Title != nil {
		contact.Title = info.Title
	}
	if info.Phone != nil {
		contact.Phone = info.Phone
	}

	if err := cc.DB.Save(&contact).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to update contact",
		})
		return
	}

	c.JSON(http.StatusOK, contact)
}

// DeleteHandler removes a contact belonging to the requester's company.
// @Summary Delete a recruiter contact
// @Tags Contact
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Contact ID"
// @Success 200 {object} utilities.MessageResponse "Contact deleted"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Contact not owned by requester's company"
// @Failure 404 {object} utilities.ErrorResponse "Contact not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /contacts/{id} [delete]
func (cc *ContactController) DeleteHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	contact, ok := cc.loadOwnedContact(c, user)
	if !ok {
		return
	}

	if err := cc.DB.Delete(&contact).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to delete contact",
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Contact deleted"})
}

func (cc *ContactController) loadOwnedContact(c *gin.Context, user model.User) (model.Contact, bool) {
	var contact model.Contact
	if err := cc.DB.Where("id = ?", c.Param("id")).First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{
				Error: "Contact not found",
			})
			return contact, false
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to fetch contact",
		})
		return contact, false
	}

	if user.Role == model.RoleAdmin {
		return contact, true
	}

	company, err := utilities.CompanyForUser(cc.DB.DB, user)
	if err != nil || company.ID != contact.CompanyID {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Contact does not belong to your company",
		})
		return contact, false
	}

	return contact, true
}
