package testutil

import (
	"fmt"
	"strings"
	"testing"

	"micro_tutor_backend/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SetupTestDB 建一个仅存于内存的sqlite库并迁移全部表。
// 每个测试用独立的命名内存库，cache=shared保证连接池里的连接看到同一份数据
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}

	if err := db.AutoMigrate(
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
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access underlying DB: %v", err)
	}
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// SeedUser 插入一个用户及其进度行，返回用户ID
func SeedUser(t *testing.T, db *gorm.DB) uint {
	t.Helper()

	user := model.User{Name: "Learner"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	progress := model.UserProgress{UserID: user.ID, Level: 1}
	if err := db.Create(&progress).Error; err != nil {
		t.Fatalf("failed to seed user progress: %v", err)
	}
	return user.ID
}
