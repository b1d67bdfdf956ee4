package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "jobdesk-backend/internal/model"
	"jobdesk-backend/internal/utilities"
)

var testInstance *Instance
var teardown func(context.Context) error

// Exported seeded users, companies and jobs for tests.
var (
	TestSeeker1   m.User
	TestSeeker2   m.User
	TestEmployer1 m.User
	TestEmployer2 m.User
	TestCompany1  m.Company
	TestCompany2  m.Company

	TestJob1 m.Job
	TestJob2 m.Job
	TestJob3 m.Job

	// Plain password every seeded account logs in with.
	TestSeedPassword = "SeedPass123!"
)

// GetTestDB starts a PostgreSQL test container and returns a teardown
// function, the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context) error, *Instance, error) {

	if testInstance != nil && teardown != nil {
		return teardown, testInstance, nil
	}

	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &Config{
		useConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts two seekers and two employer/company pairs plus three
// job posts, or reloads them when the container is reused.
func seedTestData(db *Instance) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}

	if userCount > 0 {
		return loadTestData(db)
	}

	hashed, err := utilities.HashPassword(TestSeedPassword)
	if err != nil {
		return err
	}

	TestSeeker1 = m.User{
		Email:    "seeker1@example.com",
		Password: hashed,
		Role:     m.RoleSeeker,
		EditableUserInfo: m.EditableUserInfo{
			FullName: "Sam Seeker",
			Phone:    strPtr("555-0101"),
			Location: strPtr("Lisbon"),
		},
	}
	TestSeeker2 = m.User{
		Email:    "seeker2@example.com",
		Password: hashed,
		Role:     m.RoleSeeker,
		EditableUserInfo: m.EditableUserInfo{
			FullName: "Sasha Seeker",
		},
	}
	TestEmployer1 = m.User{
		Email:    "employer1@example.com",
		Password: hashed,
		Role:     m.RoleEmployer,
		EditableUserInfo: m.EditableUserInfo{
			FullName: "Erin Employer",
		},
	}
	TestEmployer2 = m.User{
		Email:    "employer2@example.com",
		Password: hashed,
		Role:     m.RoleEmployer,
		EditableUserInfo: m.EditableUserInfo{
			FullName: "Evan Employer",
		},
	}

	for _, u := range []*m.User{&TestSeeker1, &TestSeeker2, &TestEmployer1, &TestEmployer2} {
		if err := db.Create(u).Error; err != nil {
			return err
		}
	}

	TestCompany1 = m.Company{
		OwnerID: TestEmployer1.ID,
		EditableCompanyInfo: m.EditableCompanyInfo{
			Name:     "Acme Robotics",
			Industry: strPtr("Manufacturing"),
			Location: strPtr("Lisbon"),
		},
		Verified: true,
	}
	TestCompany2 = m.Company{
		OwnerID: TestEmployer2.ID,
		EditableCompanyInfo: m.EditableCompanyInfo{
			Name:     "Globex Software",
			Industry: strPtr("Technology"),
		},
		Verified: true,
	}
	for _, c := range []*m.Company{&TestCompany1, &TestCompany2} {
		if err := db.Create(c).Error; err != nil {
			return err
		}
	}

	TestJob1 = m.Job{
		CompanyID: TestCompany1.ID,
		EditableJobInfo: m.EditableJobInfo{
			Title:          "Robotics Engineer",
			Description:    "Build robot arms",
			Location:       "Lisbon",
			EmploymentType: m.EmploymentFullTime,
			SalaryRange:    "60k-80k",
			Tags:           pq.StringArray{"robotics", "go"},
		},
	}
	TestJob2 = m.Job{
		CompanyID: TestCompany1.ID,
		EditableJobInfo: m.EditableJobInfo{
			Title:          "QA Intern",
			EmploymentType: m.EmploymentInternship,
		},
	}
	TestJob3 = m.Job{
		CompanyID: TestCompany2.ID,
		EditableJobInfo: m.EditableJobInfo{
			Title:          "Backend Developer",
			Location:       "Remote",
			EmploymentType: m.EmploymentRemote,
		},
	}
	for _, j := range []*m.Job{&TestJob1, &TestJob2, &TestJob3} {
		if err := db.Create(j).Error; err != nil {
			return err
		}
	}

	return nil
}

// loadTestData refreshes the exported fixtures from an already-seeded DB.
func loadTestData(db *Instance) error {
	pairs := []struct {
		email string
		dst   *m.User
	}{
		{"seeker1@example.com", &TestSeeker1},
		{"seeker2@example.com", &TestSeeker2},
		{"employer1@example.com", &TestEmployer1},
		{"employer2@example.com", &TestEmployer2},
	}
	for _, p := range pairs {
		if err := db.Where("email = ?", p.email).First(p.dst).Error; err != nil {
			return err
		}
	}

	if err := db.Where("owner_id = ?", TestEmployer1.ID).First(&TestCompany1).Error; err != nil {
		return err
	}
	if err := db.Where("owner_id = ?", TestEmployer2.ID).First(&TestCompany2).Error; err != nil {
		return err
	}

	jobs := []struct {
		title string
		dst   *m.Job
	}{
		{"Robotics Engineer", &TestJob1},
		{"QA Intern", &TestJob2},
		{"Backend Developer", &TestJob3},
	}
	for _, j := range jobs {
		if err := db.Where("title = ?", j.title).First(j.dst).Error; err != nil {
			return err
		}
	}

	return nil
}

func strPtr(s string) *string { return &s }
