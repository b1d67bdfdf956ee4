package auth

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jobdesk-backend/internal/database"
	"jobdesk-backend/internal/model"
	"jobdesk-backend/internal/utilities"
)

// LocalAuthHandler holds DB reference for handler methods.
type LocalAuthHandler struct {
	DB *database.Instance
}

// NewLocalAuthHandler creates a new instance of LocalAuthHandler with the provided database connection.
func NewLocalAuthHandler(db *database.Instance) *LocalAuthHandler {
	return &LocalAuthHandler{
		DB: db,
	}
}

type registerInfo struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required"`
	FullName string  `json:"full_name" binding:"required"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
	Sex      *string `json:"sex"`
}

type registerEmployerInfo struct {
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required"`
	FullName    string  `json:"full_name" binding:"required"`
	Phone       *string `json:"phone"`
	Location    *string `json:"location"`
	CompanyName string  `json:"company_name" binding:"required"`
	Industry    *string `json:"industry"`
	Website     *string `json:"website"`
	Employees   *int    `json:"no_of_employees"`
	Description *string `json:"description"`
}

type loginInfo struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	UserType string `json:"user_type"`
}

// RegisterHandler handles job seeker registration.
// The role is fixed to job_seeker; employers go through /auth/register-employer.
// @Summary Register a job seeker account
// @Description Email must not already exist and password must be at least 8 characters long
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body registerInfo true "Seeker registration fields"
// @Success 201 {object} model.RegisterResponse "Successfully registered"
// @Failure 400 {object} utilities.ErrorResponse "Missing or malformed fields"
// @Failure 409 {object} utilities.ErrorResponse "Email already registered"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /auth/register [post]
func (lh *LocalAuthHandler) RegisterHandler(c *gin.Context) {
	var info registerInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Email, password, and full name are required",
		})
		return
	}

	if len(info.Password) < 8 {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Password should be longer or equal to 8 characters",
		})
		return
	}

	hashedPassword, err := utilities.HashPassword(info.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed hash password: %s", err.Error()),
		})
		return
	}

	user := model.User{
		Email:    info.Email,
		Password: hashedPassword,
		Role:     model.RoleSeeker,
		EditableUserInfo: model.EditableUserInfo{
			FullName: info.FullName,
			Phone:    info.Phone,
			Location: info.Location,
			Sex:      info.Sex,
		},
	}

	// The unique index on email is the backstop; this create either lands or
	// reports the conflict.
	if err := lh.DB.Create(&user).Error; err != nil {
		if utilities.IsUniqueViolation(err) {
			LogAuthAttempt("info", "Register", "Fail", info.Email, "duplicate email")
			c.JSON(http.StatusConflict, utilities.ErrorResponse{
				Error: "User already exists with this email",
			})
			return
		}
		log.Printf("register: create user: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to create user",
		})
		return
	}

	accessToken, _, err := GenerateStandardToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	LogAuthAttempt("info", "Register", "Success", user.Email, "")
	c.JSON(http.StatusCreated, model.RegisterResponse{
		UserID:      user.ID.String(),
		AccessToken: accessToken,
	})
}

// RegisterEmployerHandler handles employer registration. The employer user and
// their company are created in one transaction: either both rows exist
// afterwards or neither does.
// @Summary Register an employer account together with its company
// @Description Creates the user and company atomically
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body registerEmployerInfo true "Employer registration fields"
// @Success 201 {object} model.RegisterEmployerResponse "Successfully registered"
// @Failure 400 {object} utilities.ErrorResponse "Missing or malformed fields"
// @Failure 409 {object} utilities.ErrorResponse "Email already registered"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /auth/register-employer [post]
func (lh *LocalAuthHandler) RegisterEmployerHandler(c *gin.Context) {
	var info registerEmployerInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Email, password, full name, and company name are required",
		})
		return
	}

	if len(info.Password) < 8 {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Password should be longer or equal to 8 characters",
		})
		return
	}

	if info.Employees != nil && *info.Employees < 0 {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "no_of_employees must not be negative",
		})
		return
	}

	hashedPassword, err := utilities.HashPassword(info.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed hash password: %s", err.Error()),
		})
		return
	}

	user := model.User{
		Email:    info.Email,
		Password: hashedPassword,
		Role:     model.RoleEmployer,
		EditableUserInfo: model.EditableUserInfo{
			FullName: info.FullName,
			Phone:    info.Phone,
			Location: info.Location,
		},
	}
	company := model.Company{
		EditableCompanyInfo: model.EditableCompanyInfo{
			Name:          info.CompanyName,
			Industry:      info.Industry,
			Location:      info.Location,
			Website:       info.Website,
			Description:   info.Description,
			EmployeeCount: info.Employees,
		},
	}

	err = lh.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		company.OwnerID = user.ID
		return tx.Create(&company).Error
	})
	if err != nil {
		if utilities.IsUniqueViolation(err) {
			LogAuthAttempt("info", "RegisterEmployer", "Fail", info.Email, "duplicate email")
			c.JSON(http.StatusConflict, utilities.ErrorResponse{
				Error: "User already exists with this email",
			})
			return
		}
		log.Printf("register employer: transaction: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to register employer",
		})
		return
	}

	accessToken, _, err := GenerateStandardToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	LogAuthAttempt("info", "RegisterEmployer", "Success", user.Email, "")
	c.JSON(http.StatusCreated, model.RegisterEmployerResponse{
		UserID:      user.ID.String(),
		CompanyID:   company.ID,
		AccessToken: accessToken,
	})
}

// LoginHandler handles local login by email and password. When user_type is
// supplied and doesn't match the stored role, the caller is pointed at the
// other portal — but only after the password checks out, so the response never
// reveals role information to someone without the credential.
// @Summary Log in with email and password
// @Description user_type, when given, must match the stored role
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body loginInfo true "Credentials for login"
// @Success 200 {object} model.LoginResponse "Logged in; company present for employers"
// @Failure 400 {object} utilities.ErrorResponse "Missing fields"
// @Failure 401 {object} utilities.ErrorResponse "Email not registered or password incorrect"
// @Failure 403 {object} utilities.ErrorResponse "Inactive account or wrong portal"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/login [post]
func (lh *LocalAuthHandler) LoginHandler(c *gin.Context) {
	var info loginInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Email and password are required",
		})
		return
	}

	var user model.User
	err := lh.DB.Where("email = ?", info.Email).First(&user).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Burn the same bcrypt work as a real comparison so a missing account
		// is not observable through response timing.
		utilities.BurnPasswordCheck(info.Password)
		LogAuthAttempt("info", "Login", "Fail", info.Email, "unknown email")
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Email or password is incorrect",
		})
		return

	case err == nil:
		// Do nothing

	default:
		log.Printf("login: lookup: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Database error",
		})
		return
	}

	if user.Password == "" || !utilities.VerifyPassword(info.Password, user.Password) {
		LogAuthAttempt("info", "Login", "Fail", info.Email, "bad password")
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Email or password is incorrect",
		})
		return
	}

	if !user.Active {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Account is inactive",
		})
		return
	}

	if info.UserType != "" && info.UserType != user.Role {
		portal := "job seeker portal"
		if user.Role == model.RoleEmployer {
			portal = "employer portal"
		}
		LogAuthAttempt("info", "Login", "Fail", info.Email, "role mismatch")
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: fmt.Sprintf("This account is registered as a %s. Please use the %s.", user.Role, portal),
		})
		return
	}

	resp := model.LoginResponse{User: user}

	if user.Role == model.RoleEmployer {
		var company model.Company
		if err := lh.DB.Where("owner_id = ?", user.ID).First(&company).Error; err != nil {
			log.Printf("login: company lookup: %v", err)
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: "Failed to retrieve company data",
			})
			return
		}
		resp.Company = &company
	}

	accessToken, _, err := GenerateStandardToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}
	resp.AccessToken = accessToken

	LogAuthAttempt("info", "Login", "Success", user.Email, "")
	c.JSON(http.StatusOK, resp)
}
