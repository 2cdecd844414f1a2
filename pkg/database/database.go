package database

import (
	"freelance_hub_backend/internal/config"
	"freelance_hub_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, mode string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	logLevel := logger.Warn
	if mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		// 级联删除在 repository 的事务里完成，不依赖数据库外键
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")
	return db, nil
}

// Models 参与自动迁移的全部表
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Category{},
		&model.Resource{},
		&model.ResourceAttachment{},
		&model.ResourceComment{},
		&model.CommentReply{},
		&model.CommentReaction{},
		&model.ReplyReaction{},
		&model.Favorite{},
		&model.Pin{},
		&model.ResourceProgress{},
		&model.Certificate{},
		&model.Project{},
		&model.Deliverable{},
		&model.DeliverableAttachment{},
		&model.Folder{},
		&model.Document{},
		&model.KanbanBoard{},
		&model.KanbanColumn{},
		&model.KanbanCard{},
		&model.Meeting{},
		&model.MeetingAttendee{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	log.Println("Database migration completed")

	// 默认分类
	var count int64
	db.Model(&model.Category{}).Count(&count)
	if count == 0 {
		defaults := []model.Category{
			{Name: "Getting Started", Description: "Onboarding guides for new freelancers and clients", IsActive: true},
			{Name: "Contracts & Payments", Description: "Proposals, invoicing and payment terms", IsActive: true},
			{Name: "Project Delivery", Description: "Planning, communication and delivery practices", IsActive: true},
		}
		for i := range defaults {
			if err := db.Create(&defaults[i]).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
