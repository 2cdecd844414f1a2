// Package testinfra 提供测试用的基础设施：内存 SQLite 上的 gorm 连接和常用种子数据。
package testinfra

import (
	"testing"

	"freelance_hub_backend/internal/model"
	"freelance_hub_backend/pkg/database"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB 返回一个已迁移的内存数据库。
// 只保留一个连接，保证同一个 :memory: 库在整个测试内可见。
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(database.Models()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// CreateUser 插入一个用户，email 需要在同一个库里唯一
func CreateUser(t *testing.T, db *gorm.DB, name string, role model.UserRole) *model.User {
	t.Helper()
	user := &model.User{
		Name:     name,
		Email:    name + "@example.test",
		Password: "x",
		Role:     role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func CreateCategory(t *testing.T, db *gorm.DB, name string) *model.Category {
	t.Helper()
	category := &model.Category{Name: name, IsActive: true}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

func CreateResource(t *testing.T, db *gorm.DB, categoryID string, authorID uint, published bool) *model.Resource {
	t.Helper()
	resource := &model.Resource{
		Title:       "Writing a winning proposal",
		Summary:     "How to scope and price freelance work",
		Type:        model.ResourceArticle,
		CategoryID:  categoryID,
		AuthorID:    authorID,
		IsPublished: published,
	}
	if err := db.Create(resource).Error; err != nil {
		t.Fatalf("create resource: %v", err)
	}
	return resource
}

func CreateProject(t *testing.T, db *gorm.DB, clientID uint, freelancerID *uint) *model.Project {
	t.Helper()
	project := &model.Project{
		Title:        "Marketing site redesign",
		ClientID:     clientID,
		FreelancerID: freelancerID,
		Status:       model.ProjectActive,
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}
	return project
}

func Identity(u *model.User) model.Identity {
	return model.Identity{UserID: u.ID, Role: u.Role}
}
