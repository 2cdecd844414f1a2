package service

import (
	"testing"

	"freelance_hub_backend/internal/model"
	"freelance_hub_backend/internal/repository"
	"freelance_hub_backend/internal/testinfra"

	"gorm.io/gorm"
)

// projectFixture 一个客户、一个指派的自由职业者、一个局外人和管理员
type projectFixture struct {
	db         *gorm.DB
	projects   *repository.GormProjectRepository
	project    *model.Project
	client     model.Identity
	freelancer model.Identity
	outsider   model.Identity
	admin      model.Identity
}

func newProjectFixture(t *testing.T) projectFixture {
	t.Helper()
	db := testinfra.NewTestDB(t)
	client := testinfra.CreateUser(t, db, "client", model.Client)
	freelancer := testinfra.CreateUser(t, db, "freelancer", model.Freelancer)
	outsider := testinfra.CreateUser(t, db, "outsider", model.Freelancer)
	admin := testinfra.CreateUser(t, db, "admin", model.Admin)

	return projectFixture{
		db:         db,
		projects:   repository.NewProjectRepository(db),
		project:    testinfra.CreateProject(t, db, client.ID, &freelancer.ID),
		client:     testinfra.Identity(client),
		freelancer: testinfra.Identity(freelancer),
		outsider:   testinfra.Identity(outsider),
		admin:      testinfra.Identity(admin),
	}
}
