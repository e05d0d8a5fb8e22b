package database

import (
	"fmt"
	"log"
	"micro_tutor_backend/internal/config"
	"micro_tutor_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultUserID 单用户部署的隐式学习者。启动时保证存在。
const DefaultUserID uint = 1

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
			cfg.ParseTime,
		)
		dialector = mysql.Open(dsn)
	default:
		dialector = sqlite.Open(cfg.Path)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Skill{},
		&model.Lesson{},
		&model.LessonAttempt{},
		&model.Quiz{},
		&model.QuizAttempt{},
		&model.ReviewCard{},
		&model.UserProgress{},
		&model.Achievement{},
		&model.ChatMessage{},
		&model.SkillProject{},
		&model.ProjectSubmission{},
	)
	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := ensureDefaultUser(db); err != nil {
		return nil, err
	}

	return db, nil
}

// ensureDefaultUser 保证默认学习者及其进度行存在（幂等）
func ensureDefaultUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).Where("id = ?", DefaultUserID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		user := &model.User{Name: "Learner"}
		user.ID = DefaultUserID
		if err := db.Create(user).Error; err != nil {
			return err
		}
	}

	var progressCount int64
	if err := db.Model(&model.UserProgress{}).Where("user_id = ?", DefaultUserID).Count(&progressCount).Error; err != nil {
		return err
	}
	if progressCount == 0 {
		progress := &model.UserProgress{UserID: DefaultUserID, Level: 1}
		if err := db.Create(progress).Error; err != nil {
			return err
		}
	}

	return nil
}
