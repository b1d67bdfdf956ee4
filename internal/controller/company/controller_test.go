package company

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"jobdesk-backend/internal/database"
	"jobdesk-backend/internal/model"
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

func simulateAs(
	t *testing.T,
	user model.User,
	handler gin.HandlerFunc,
	method string,
	params gin.Params,
	body interface{},
) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	b, err := json.Marshal(body)
	assert.NoError(t, err)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	req, err := http.NewRequest(method, "/", bytes.NewReader(b))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = params
	c.Set("user", user)
	handler(c)

	resp := map[string]interface{}{}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp
}

func idParam(id interface{}) gin.Params {
	return gin.Params{{Key: "id", Value: fmt.Sprint(id)}}
}

// makeEmployerWithCompany inserts a dedicated employer and company pair so
// destructive tests stay off the shared fixtures.
func makeEmployerWithCompany(t *testing.T, email, companyName string) (model.User, model.Company) {
	t.Helper()
	employer := model.User{
		Email:    email,
		Password: "unused",
		Role:     model.RoleEmployer,
		EditableUserInfo: model.EditableUserInfo{
			FullName: "Disposable Employer",
		},
	}
	assert.NoError(t, testDB.Create(&employer).Error)

	company := model.Company{
		OwnerID: employer.ID,
		EditableCompanyInfo: model.EditableCompanyInfo{
			Name: companyName,
		},
	}
	assert.NoError(t, testDB.Create(&company).Error)
	return employer, company
}

func TestGetCompanyByID(t *testing.T) {
	controller := NewCompanyController(testDB)

	rec, resp := simulateAs(t, database.TestSeeker1, controller.GetByIDHandler, http.MethodGet,
		idParam(database.TestCompany1.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	assert.Equal(t, database.TestCompany1.Name, resp["company_name"])

	rec, _ = simulateAs(t, database.TestSeeker1, controller.GetByIDHandler, http.MethodGet,
		idParam(999999), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateCompanyByOwner(t *testing.T) {
	controller := NewCompanyController(testDB)
	_, company := makeEmployerWithCompany(t, "update_owner@example.com", "Updatable Ltd")
	var owner model.User
	assert.NoError(t, testDB.Where("id = ?", company.OwnerID).First(&owner).Error)

	rec, resp := simulateAs(t, owner, controller.UpdateHandler, http.MethodPut,
		idParam(company.ID), gin.H{
			"industry":        "Aerospace",
			"no_of_employees": 120,
		})
	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	assert.Equal(t, "Aerospace", resp["industry"])
	assert.Equal(t, float64(120), resp["no_of_employees"])
	// Name untouched by the partial update.
	assert.Equal(t, "Updatable Ltd", resp["company_name"])
}

func TestUpdateCompanyNegativeEmployees(t *testing.T) {
	controller := NewCompanyController(testDB)

	rec, resp := simulateAs(t, database.TestEmployer1, controller.UpdateHandler, http.MethodPut,
		idParam(database.TestCompany1.ID), gin.H{
			"no_of_employees": -1,
		})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errMsg, _ := resp["error"].(string)
	assert.Contains(t, errMsg, "no_of_employees")
}

func TestUpdateCompanyByOtherEmployer(t *testing.T) {
	controller := NewCompanyController(testDB)

	rec, resp := simulateAs(t, database.TestEmployer2, controller.UpdateHandler, http.MethodPut,
		idParam(database.TestCompany1.ID), gin.H{
			"company_name": "Hijacked Inc",
		})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	errMsg, _ := resp["error"].(string)
	assert.Equal(t, "Cannot edit another employer's company", errMsg)
}

func TestDeleteCompanyCascades(t *testing.T) {
	controller := NewCompanyController(testDB)
	owner, company := makeEmployerWithCompany(t, "cascade_owner@example.com", "Cascade Corp")

	post := model.Job{
		CompanyID: company.ID,
		EditableJobInfo: model.EditableJobInfo{
			Title:          "Cascade Role",
			EmploymentType: model.EmploymentFullTime,
		},
	}
	assert.NoError(t, testDB.Create(&post).Error)

	contact := model.Contact{
		CompanyID: company.ID,
		Name:      "Recruiter To Be Removed",
		Email:     "recruiter@cascade.example.com",
	}
	assert.NoError(t, testDB.Create(&contact).Error)

	app := model.Application{
		UserID:      database.TestSeeker2.ID,
		JobID:       post.ID,
		SubmittedAt: time.Now(),
		Status:      model.StatusApplied,
	}
	assert.NoError(t, testDB.Create(&app).Error)

	rec, _ := simulateAs(t, owner, controller.DeleteHandler, http.MethodDelete,
		idParam(company.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	// Company and its job are gone from normal reads.
	rec, _ = simulateAs(t, database.TestSeeker1, controller.GetByIDHandler, http.MethodGet,
		idParam(company.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var jobCount int64
	assert.NoError(t, testDB.Model(&model.Job{}).Where("id = ?", post.ID).Count(&jobCount).Error)
	assert.Equal(t, int64(0), jobCount)

	var contactCount int64
	assert.NoError(t, testDB.Model(&model.Contact{}).Where("id = ?", contact.ID).Count(&contactCount).Error)
	assert.Equal(t, int64(0), contactCount)

	// The seeker's application is archived, not lost.
	var kept model.Application
	assert.NoError(t, testDB.Where("id = ?", app.ID).First(&kept).Error)
	assert.Equal(t, model.StatusArchived, kept.Status)
}

func TestDeleteCompanyByOtherEmployer(t *testing.T) {
	controller := NewCompanyController(testDB)
	_, company := makeEmployerWithCompany(t, "protected_owner@example.com", "Protected Co")

	rec, _ := simulateAs(t, database.TestEmployer2, controller.DeleteHandler, http.MethodDelete,
		idParam(company.ID), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var count int64
	assert.NoError(t, testDB.Model(&model.Company{}).Where("id = ?", company.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count, "company must survive a forbidden delete")
}
