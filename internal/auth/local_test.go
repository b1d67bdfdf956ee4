package auth

import (
	"context"
	"fmt"
	"net/http"

	"os"
	"testing"
	"time"

	"jobdesk-backend/internal/database"
	"jobdesk-backend/internal/model"
	"jobdesk-backend/internal/utilities"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

var testDB *database.Instance
var testTeardown func(context.Context) error

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	var err error
	testTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start test db: %v\n", err)
		os.Exit(1)
	}

	m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := testTeardown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "teardown error: %v\n", err)
	}
}

// Helper: validate access token in response and return claims.
func assertValidAccessToken(t *testing.T, resp map[string]interface{}) *jwt.RegisteredClaims {
	t.Helper()
	tokenStr, ok := resp["access_token"].(string)
	assert.True(t, ok, "access_token not a string")
	token, err := ValidatedToken(tokenStr)
	assert.NoError(t, err)
	assert.True(t, token.Valid)
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	assert.True(t, ok, "claims type mismatch")
	assert.NotEmpty(t, claims.Subject, "token subject empty")
	return claims
}

func TestRegisterSeeker(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	payload := map[string]string{
		"email":     "new_seeker@example.com",
		"password":  "password123",
		"full_name": "New Seeker",
	}
	rec, resp, err := utilities.SimulateAPICall(handler.RegisterHandler, "/register", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code, "unexpected status, body: %s", rec.Body.String())

	assert.Contains(t, resp, "access_token")

	claims := assertValidAccessToken(t, resp)
	if idVal, ok := resp["user_id"].(string); ok {
		assert.Equal(t, idVal, claims.Subject, "JWT subject should match user id")
	}

	// The account must land with the seeker role regardless of the payload.
	var created model.User
	assert.NoError(t, testDB.Where("email = ?", "new_seeker@example.com").First(&created).Error)
	assert.Equal(t, model.RoleSeeker, created.Role)
}

func TestRegisterPasswordTooShort(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	payload := map[string]string{
		"email":     "short_pwd@example.com",
		"password":  "1234567", // 7 chars
		"full_name": "Short Password",
	}
	rec, resp, err := utilities.SimulateAPICall(handler.RegisterHandler, "/register", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	errMsg, _ := resp["error"].(string)
	assert.Contains(t, errMsg, "Password should be longer or equal to 8 characters")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	payload := map[string]string{
		"email":     database.TestSeeker1.Email, // seeded email
		"password":  "password123",
		"full_name": "Dup Email",
	}
	rec, resp, err := utilities.SimulateAPICall(handler.RegisterHandler, "/register", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)

	errMsg, _ := resp["error"].(string)
	assert.Equal(t, "User already exists with this email", errMsg)
}

func TestRegisterEmployer(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	payload := map[string]interface{}{
		"email":           "new_employer@example.com",
		"password":        "companyPass123",
		"full_name":       "New Employer",
		"company_name":    "Initech",
		"industry":        "Technology",
		"no_of_employees": 40,
	}
	rec, resp, err := utilities.SimulateAPICall(handler.RegisterEmployerHandler, "/register-employer", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code, "unexpected status, body: %s", rec.Body.String())

	assert.Contains(t, resp, "access_token")
	assert.Contains(t, resp, "company_id")
	assertValidAccessToken(t, resp)

	// User and company must both exist and be linked.
	var created model.User
	assert.NoError(t, testDB.Where("email = ?", "new_employer@example.com").First(&created).Error)
	assert.Equal(t, model.RoleEmployer, created.Role)

	var company model.Company
	assert.NoError(t, testDB.Where("owner_id = ?", created.ID).First(&company).Error)
	assert.Equal(t, "Initech", company.Name)
}

func TestRegisterEmployerDuplicateEmailLeavesNoCompany(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	var companiesBefore int64
	assert.NoError(t, testDB.Model(&model.Company{}).Count(&companiesBefore).Error)

	payload := map[string]interface{}{
		"email":        database.TestEmployer1.Email, // seeded email
		"password":     "companyPass123",
		"full_name":    "Dup Employer",
		"company_name": "Phantom Corp",
	}
	rec, resp, err := utilities.SimulateAPICall(handler.RegisterEmployerHandler, "/register-employer", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)

	errMsg, _ := resp["error"].(string)
	assert.Equal(t, "User already exists with this email", errMsg)

	// The transaction must roll back the company create too.
	var companiesAfter int64
	assert.NoError(t, testDB.Model(&model.Company{}).Count(&companiesAfter).Error)
	assert.Equal(t, companiesBefore, companiesAfter, "orphan company row left behind")
}

func TestRegisterEmployerNegativeEmployees(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	payload := map[string]interface{}{
		"email":           "negative_employees@example.com",
		"password":        "companyPass123",
		"full_name":       "Negative Employees",
		"company_name":    "Antimatter Inc",
		"no_of_employees": -3,
	}
	rec, resp, err := utilities.SimulateAPICall(handler.RegisterEmployerHandler, "/register-employer", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	errMsg, _ := resp["error"].(string)
	assert.Contains(t, errMsg, "no_of_employees")
}

func TestLoginSeekerSuccess(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)
	payload := map[string]string{
		"email":    database.TestSeeker1.Email,
		"password": database.TestSeedPassword,
	}
	rec, resp, err := utilities.SimulateAPICall(handler.LoginHandler, "/login", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	assert.Contains(t, resp, "access_token")

	claims := assertValidAccessToken(t, resp)
	userVal, ok := resp["user"]
	assert.True(t, ok)
	if uMap, ok := userVal.(map[string]interface{}); ok {
		if idVal, ok := uMap["user_id"].(string); ok {
			assert.Equal(t, idVal, claims.Subject)
		}
		_, hasPassword := uMap["password"]
		assert.False(t, hasPassword, "password hash leaked in response")
	}
}

func TestLoginEmployerIncludesCompany(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)
	payload := map[string]string{
		"email":    database.TestEmployer1.Email,
		"password": database.TestSeedPassword,
	}
	rec, resp, err := utilities.SimulateAPICall(handler.LoginHandler, "/login", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	assert.Contains(t, resp, "access_token")
	assertValidAccessToken(t, resp)

	companyVal, ok := resp["company"]
	assert.True(t, ok, "company missing from employer login response")
	if cMap, ok := companyVal.(map[string]interface{}); ok {
		assert.Equal(t, database.TestCompany1.Name, cMap["company_name"])
	}
}

func TestLoginWrongPassword(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)
	payload := map[string]string{
		"email":    database.TestSeeker1.Email,
		"password": "WrongPass999!",
	}
	rec, resp, err := utilities.SimulateAPICall(handler.LoginHandler, "/login", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	errMsg, _ := resp["error"].(string)
	assert.Equal(t, "Email or password is incorrect", errMsg)
}

func TestLoginUserNotFound(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)
	payload := map[string]string{
		"email":    "non_existent_user@example.com",
		"password": "SomePassword1!",
	}
	rec, resp, err := utilities.SimulateAPICall(handler.LoginHandler, "/login", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	errMsg, _ := resp["error"].(string)
	assert.Equal(t, "Email or password is incorrect", errMsg)
}

func TestLoginRoleMismatch(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)
	payload := map[string]string{
		"email":     database.TestSeeker1.Email,
		"password":  database.TestSeedPassword,
		"user_type": model.RoleEmployer,
	}
	rec, resp, err := utilities.SimulateAPICall(handler.LoginHandler, "/login", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	errMsg, _ := resp["error"].(string)
	assert.Contains(t, errMsg, "job seeker portal")
}

func TestLoginRoleMismatchNeedsValidPassword(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)
	payload := map[string]string{
		"email":     database.TestSeeker1.Email,
		"password":  "WrongPass999!",
		"user_type": model.RoleEmployer,
	}
	rec, resp, err := utilities.SimulateAPICall(handler.LoginHandler, "/login", http.MethodPost, payload)
	assert.NoError(t, err)

	// Wrong password must win over the role hint or the endpoint leaks roles.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	errMsg, _ := resp["error"].(string)
	assert.Equal(t, "Email or password is incorrect", errMsg)
}

func TestLoginInactiveAccount(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	hashed, err := utilities.HashPassword("password123")
	assert.NoError(t, err)
	inactive := model.User{
		Email:    "inactive@example.com",
		Password: hashed,
		Role:     model.RoleSeeker,
		EditableUserInfo: model.EditableUserInfo{
			FullName: "Inactive User",
		},
	}
	assert.NoError(t, testDB.Create(&inactive).Error)
	assert.NoError(t, testDB.Model(&model.User{}).Where("id = ?", inactive.ID).Update("active", false).Error)

	payload := map[string]string{
		"email":    "inactive@example.com",
		"password": "password123",
	}
	rec, resp, err := utilities.SimulateAPICall(handler.LoginHandler, "/login", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	errMsg, _ := resp["error"].(string)
	assert.Equal(t, "Account is inactive", errMsg)
}
