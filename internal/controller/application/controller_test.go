package application

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"jobdesk-backend/internal/database"
	"jobdesk-backend/internal/model"
	"jobdesk-backend/internal/utilities"
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

// simulateAs invokes a handler with the given user already placed in the gin
// context, the way the auth middleware would.
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

// simulateListAs is like simulateAs but for endpoints responding with an array.
func simulateListAs(
	t *testing.T,
	user model.User,
	handler gin.HandlerFunc,
	method string,
	params gin.Params,
) (*httptest.ResponseRecorder, []map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	req, err := http.NewRequest(method, "/", nil)
	assert.NoError(t, err)
	c.Request = req
	c.Params = params
	c.Set("user", user)
	handler(c)

	var resp []map[string]interface{}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp
}

// makeSeeker inserts a throwaway seeker account so tests do not trip over the
// one-application-per-job rule on the shared fixtures.
func makeSeeker(t *testing.T, email string) model.User {
	t.Helper()
	u := model.User{
		Email:    email,
		Password: "unused",
		Role:     model.RoleSeeker,
		EditableUserInfo: model.EditableUserInfo{
			FullName: "Throwaway Seeker",
		},
	}
	assert.NoError(t, testDB.Create(&u).Error)
	return u
}

func idParam(id interface{}) gin.Params {
	return gin.Params{{Key: "id", Value: fmt.Sprint(id)}}
}

func TestSubmitApplication(t *testing.T) {
	controller := NewApplicationController(testDB)
	seeker := makeSeeker(t, "apply_basic@example.com")

	rec, resp := simulateAs(t, seeker, controller.SubmitHandler, http.MethodPost, nil, gin.H{
		"job_id":       database.TestJob1.ID,
		"resume":       "resumes/apply_basic.pdf",
		"cover_letter": "I build robot arms.",
	})
	assert.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
	assert.Equal(t, model.StatusApplied, resp["status"], "new applications must start as Applied")
	assert.NotNil(t, resp["application_date"], "submission date must be stamped")
}

func TestSubmitDuplicateApplication(t *testing.T) {
	controller := NewApplicationController(testDB)
	seeker := makeSeeker(t, "apply_dup@example.com")

	rec, _ := simulateAs(t, seeker, controller.SubmitHandler, http.MethodPost, nil, gin.H{
		"job_id": database.TestJob1.ID,
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, resp := simulateAs(t, seeker, controller.SubmitHandler, http.MethodPost, nil, gin.H{
		"job_id": database.TestJob1.ID,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	errMsg, _ := resp["error"].(string)
	assert.Equal(t, "You have already applied to this job post", errMsg)

	// Exactly one row must exist regardless of how many submissions raced.
	var count int64
	assert.NoError(t, testDB.Model(&model.Application{}).
		Where("user_id = ? AND job_id = ?", seeker.ID, database.TestJob1.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSubmitConcurrentDuplicateApplications(t *testing.T) {
	controller := NewApplicationController(testDB)
	seeker := makeSeeker(t, "apply_concurrent@example.com")

	body, err := json.Marshal(gin.H{"job_id": database.TestJob1.ID})
	assert.NoError(t, err)

	// Two submissions in flight at once. Whichever ordering the scheduler
	// picks, exactly one must win with 201 and the other must see 409, either
	// from the pre-check or from the unique index.
	const attempts = 2
	codes := make(chan int, attempts)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			req, reqErr := http.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
			if reqErr != nil {
				t.Error(reqErr)
				return
			}
			req.Header.Set("Content-Type", "application/json")
			c.Request = req
			c.Set("user", seeker)
			<-start
			controller.SubmitHandler(c)
			codes <- rec.Code
		}()
	}
	close(start)
	wg.Wait()
	close(codes)

	got := map[int]int{}
	for code := range codes {
		got[code]++
	}
	assert.Equal(t, 1, got[http.StatusCreated], "exactly one submission must succeed, statuses: %v", got)
	assert.Equal(t, 1, got[http.StatusConflict], "the losing submission must get a conflict, statuses: %v", got)

	var count int64
	assert.NoError(t, testDB.Model(&model.Application{}).
		Where("user_id = ? AND job_id = ?", seeker.ID, database.TestJob1.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count, "concurrent submissions must collapse to one row")
}

func TestSubmitDuplicateInsertHitsUniqueIndex(t *testing.T) {
	seeker := makeSeeker(t, "apply_unique_index@example.com")

	// Insert directly, skipping the handler's pre-check, to show the composite
	// index itself rejects the duplicate and classifies as a unique violation.
	// SubmitHandler maps exactly this error class to 409.
	first := model.Application{
		UserID:      seeker.ID,
		JobID:       database.TestJob1.ID,
		SubmittedAt: time.Now(),
		Status:      model.StatusApplied,
	}
	assert.NoError(t, testDB.Create(&first).Error)

	dup := model.Application{
		UserID:      seeker.ID,
		JobID:       database.TestJob1.ID,
		SubmittedAt: time.Now(),
		Status:      model.StatusApplied,
	}
	err := testDB.Create(&dup).Error
	assert.Error(t, err, "duplicate (user, job) insert must be rejected by the index")
	assert.True(t, utilities.IsUniqueViolation(err), "expected a unique violation, got: %v", err)

	var count int64
	assert.NoError(t, testDB.Model(&model.Application{}).
		Where("user_id = ? AND job_id = ?", seeker.ID, database.TestJob1.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSubmitToMissingJob(t *testing.T) {
	controller := NewApplicationController(testDB)
	seeker := makeSeeker(t, "apply_missing@example.com")

	rec, resp := simulateAs(t, seeker, controller.SubmitHandler, http.MethodPost, nil, gin.H{
		"job_id": 999999,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	errMsg, _ := resp["error"].(string)
	assert.Equal(t, "Job post not found", errMsg)
}

func TestListForUserOwnApplications(t *testing.T) {
	controller := NewApplicationController(testDB)
	seeker := makeSeeker(t, "list_own@example.com")

	for _, jobID := range []uint{database.TestJob1.ID, database.TestJob3.ID} {
		rec, _ := simulateAs(t, seeker, controller.SubmitHandler, http.MethodPost, nil, gin.H{
			"job_id": jobID,
		})
		assert.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, apps := simulateListAs(t, seeker, controller.ListForUserHandler, http.MethodGet,
		gin.Params{{Key: "userId", Value: seeker.ID.String()}})
	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	assert.Len(t, apps, 2)

	titles := map[string]bool{}
	for _, app := range apps {
		title, _ := app["job_title"].(string)
		titles[title] = true
		name, _ := app["company_name"].(string)
		assert.NotEmpty(t, name, "company name missing from listing")
	}
	assert.True(t, titles[database.TestJob1.Title])
	assert.True(t, titles[database.TestJob3.Title])
}

func TestListForUserForbidden(t *testing.T) {
	controller := NewApplicationController(testDB)

	rec, resp := simulateListAs(t, database.TestSeeker1, controller.ListForUserHandler, http.MethodGet,
		gin.Params{{Key: "userId", Value: database.TestSeeker2.ID.String()}})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, resp)
}

func TestListForCompany(t *testing.T) {
	controller := NewApplicationController(testDB)
	seeker := makeSeeker(t, "list_company@example.com")

	rec, _ := simulateAs(t, seeker, controller.SubmitHandler, http.MethodPost, nil, gin.H{
		"job_id": database.TestJob2.ID,
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, apps := simulateListAs(t, database.TestEmployer1, controller.ListForCompanyHandler, http.MethodGet,
		gin.Params{{Key: "companyId", Value: fmt.Sprint(database.TestCompany1.ID)}})
	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	assert.NotEmpty(t, apps)

	found := false
	for _, app := range apps {
		if app["applicant_email"] == seeker.Email {
			found = true
			assert.Equal(t, database.TestJob2.Title, app["job_title"])
		}
	}
	assert.True(t, found, "submitted application missing from company listing")
}

func TestListForCompanyForbidden(t *testing.T) {
	controller := NewApplicationController(testDB)

	rec, _ := simulateListAs(t, database.TestEmployer2, controller.ListForCompanyHandler, http.MethodGet,
		gin.Params{{Key: "companyId", Value: fmt.Sprint(database.TestCompany1.ID)}})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateStatusUnknownLabel(t *testing.T) {
	controller := NewApplicationController(testDB)

	rec, resp := simulateAs(t, database.TestEmployer1, controller.UpdateStatusHandler, http.MethodPatch,
		idParam(1), gin.H{"status": "Ghosted"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errMsg, _ := resp["error"].(string)
	assert.Contains(t, errMsg, "Unknown status")
}

func TestUpdateStatusByOwningEmployer(t *testing.T) {
	controller := NewApplicationController(testDB)
	seeker := makeSeeker(t, "status_owner@example.com")

	rec, created := simulateAs(t, seeker, controller.SubmitHandler, http.MethodPost, nil, gin.H{
		"job_id": database.TestJob1.ID,
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	appID := created["application_id"]

	rec, resp := simulateAs(t, database.TestEmployer1, controller.UpdateStatusHandler, http.MethodPatch,
		idParam(appID), gin.H{"status": model.StatusInterview})
	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	assert.Equal(t, model.StatusInterview, resp["status"])

	// The seeker sees the new status right away.
	rec, apps := simulateListAs(t, seeker, controller.ListForUserHandler, http.MethodGet,
		gin.Params{{Key: "userId", Value: seeker.ID.String()}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, apps, 1)
	assert.Equal(t, model.StatusInterview, apps[0]["status"])
}

func TestUpdateStatusByOtherEmployer(t *testing.T) {
	controller := NewApplicationController(testDB)
	seeker := makeSeeker(t, "status_other@example.com")

	rec, created := simulateAs(t, seeker, controller.SubmitHandler, http.MethodPost, nil, gin.H{
		"job_id": database.TestJob1.ID,
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	appID := created["application_id"]

	rec, resp := simulateAs(t, database.TestEmployer2, controller.UpdateStatusHandler, http.MethodPatch,
		idParam(appID), gin.H{"status": model.StatusRejected})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	errMsg, _ := resp["error"].(string)
	assert.Equal(t, "Job does not belong to your company", errMsg)
}

func TestWithdrawApplication(t *testing.T) {
	controller := NewApplicationController(testDB)
	seeker := makeSeeker(t, "withdraw_own@example.com")

	rec, created := simulateAs(t, seeker, controller.SubmitHandler, http.MethodPost, nil, gin.H{
		"job_id": database.TestJob3.ID,
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	appID := created["application_id"]

	// Another seeker cannot withdraw it.
	rec, _ = simulateAs(t, database.TestSeeker1, controller.WithdrawHandler, http.MethodDelete,
		idParam(appID), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = simulateAs(t, seeker, controller.WithdrawHandler, http.MethodDelete,
		idParam(appID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var count int64
	assert.NoError(t, testDB.Model(&model.Application{}).
		Where("user_id = ?", seeker.ID).
		Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestGetApplicationByID(t *testing.T) {
	controller := NewApplicationController(testDB)
	seeker := makeSeeker(t, "get_by_id@example.com")

	rec, created := simulateAs(t, seeker, controller.SubmitHandler, http.MethodPost, nil, gin.H{
		"job_id": database.TestJob2.ID,
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	appID := created["application_id"]

	// Applying seeker and owning employer can read it.
	rec, _ = simulateAs(t, seeker, controller.GetByIDHandler, http.MethodGet, idParam(appID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = simulateAs(t, database.TestEmployer1, controller.GetByIDHandler, http.MethodGet, idParam(appID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// A bystander seeker and a non-owning employer cannot.
	rec, _ = simulateAs(t, database.TestSeeker1, controller.GetByIDHandler, http.MethodGet, idParam(appID), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = simulateAs(t, database.TestEmployer2, controller.GetByIDHandler, http.MethodGet, idParam(appID), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
