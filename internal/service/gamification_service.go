package service

import (
	"math"
	"time"

	"micro_tutor_backend/internal/model"
	"micro_tutor_backend/internal/repository"
	"micro_tutor_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// 各类活动的经验值奖励
const (
	XPLessonComplete   = 50
	XPCorrectAnswer    = 20
	XPPerfectQuiz      = 50
	XPReviewCard       = 10
	XPDailyStreak      = 25
	XPExerciseComplete = 15
	XPProjectPass      = 100
)

const dateLayout = "2006-01-02"

type AchievementDef struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// achievementCatalog 成就目录。顺序即检查和返回顺序，键一旦上线不可改名，
// 改名会导致老用户的解锁记录失联。
var achievementCatalog = []AchievementDef{
	{Key: "first_lesson", Name: "第一课", Description: "完成第一节课程"},
	{Key: "first_quiz", Name: "初试锋芒", Description: "完成第一次测验"},
	{Key: "perfect_score", Name: "满分答卷", Description: "在一次测验中全部答对"},
	{Key: "streak_3", Name: "三日之约", Description: "连续学习3天"},
	{Key: "streak_7", Name: "七日不辍", Description: "连续学习7天"},
	{Key: "streak_30", Name: "月度学霸", Description: "连续学习30天"},
	{Key: "lessons_10", Name: "小有所成", Description: "累计完成10节课程"},
	{Key: "lessons_50", Name: "学而不厌", Description: "累计完成50节课程"},
	{Key: "xp_1000", Name: "千分达人", Description: "累计获得1000点经验"},
	{Key: "first_review", Name: "温故知新", Description: "完成第一次复习"},
	{Key: "multi_skill", Name: "多面手", Description: "同时学习3项技能"},
}

// AchievementDefByKey 按键查成就定义，未知键返回nil
func AchievementDefByKey(key string) *AchievementDef {
	for i := range achievementCatalog {
		if achievementCatalog[i].Key == key {
			return &achievementCatalog[i]
		}
	}
	return nil
}

// XPForLevel 升到level级所需的累计经验，曲线为 round(100 * level^1.5)。
// 1级为起点不需要经验。
func XPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return int(math.Round(100 * math.Pow(float64(level), 1.5)))
}

// LevelFromXP 由累计经验反推等级。等级无上限，逐级上探到经验不够为止
func LevelFromXP(totalXP int) int {
	level := 1
	for XPForLevel(level+1) <= totalXP {
		level++
	}
	return level
}

type XPResult struct {
	TotalXP int `json:"total_xp"`
	Level   int `json:"level"`
	XPAdded int `json:"xp_added"`
}

type StreakResult struct {
	CurrentStreak int  `json:"current_streak"`
	LongestStreak int  `json:"longest_streak"`
	BonusAwarded  bool `json:"bonus_awarded"`
	BonusXP       int  `json:"bonus_xp"`
}

type AchievementStatus struct {
	AchievementDef
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

// GamificationService 进度账本：经验、等级、连击、成就。
// 所有写操作以user_progress单行为准，多步更新包在事务里。
type GamificationService struct {
	DB              *gorm.DB
	ProgressRepo    *repository.ProgressRepository
	AchievementRepo *repository.AchievementRepository
}

func NewGamificationService(db *gorm.DB, progressRepo *repository.ProgressRepository, achievementRepo *repository.AchievementRepository) *GamificationService {
	return &GamificationService{
		DB:              db,
		ProgressRepo:    progressRepo,
		AchievementRepo: achievementRepo,
	}
}

// AddXP 给用户加经验并重算等级，经验只增不减
func (s *GamificationService) AddXP(userID uint, amount int) (*XPResult, error) {
	var result XPResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var progress model.UserProgress
		if err := tx.Where("user_id = ?", userID).First(&progress).Error; err != nil {
			return err
		}
		progress.TotalXP += amount
		progress.Level = LevelFromXP(progress.TotalXP)
		if err := tx.Save(&progress).Error; err != nil {
			return err
		}
		result = XPResult{TotalXP: progress.TotalXP, Level: progress.Level, XPAdded: amount}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// AwardActivity 按活动类型加经验，kind仅用于监控打点
func (s *GamificationService) AwardActivity(userID uint, kind string, amount int) (*XPResult, error) {
	result, err := s.AddXP(userID, amount)
	if err != nil {
		return nil, err
	}
	monitoring.XPAwarded.WithLabelValues(kind).Add(float64(amount))
	return result, nil
}

// UpdateStreak 记录一次当日学习活动并维护连击天数。
// 同一天重复调用不改变连击；昨天有活动则连击加一并发连击奖励；
// 断档则连击重置为1。奖励走AddXP，不会再次触发连击更新。
func (s *GamificationService) UpdateStreak(userID uint) (*StreakResult, error) {
	today := time.Now().Format(dateLayout)
	yesterday := time.Now().AddDate(0, 0, -1).Format(dateLayout)

	var result StreakResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var progress model.UserProgress
		if err := tx.Where("user_id = ?", userID).First(&progress).Error; err != nil {
			return err
		}

		switch progress.LastActivityDate {
		case today:
			result = StreakResult{CurrentStreak: progress.CurrentStreak, LongestStreak: progress.LongestStreak}
			return nil
		case yesterday:
			progress.CurrentStreak++
			result.BonusAwarded = true
		default:
			progress.CurrentStreak = 1
		}
		progress.LastActivityDate = today
		if progress.CurrentStreak > progress.LongestStreak {
			progress.LongestStreak = progress.CurrentStreak
		}
		if err := tx.Save(&progress).Error; err != nil {
			return err
		}
		result.CurrentStreak = progress.CurrentStreak
		result.LongestStreak = progress.LongestStreak
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.BonusAwarded {
		if _, err := s.AwardActivity(userID, "streak", XPDailyStreak); err != nil {
			return nil, err
		}
		result.BonusXP = XPDailyStreak
	}
	return &result, nil
}

// CheckAchievements 对照当前进度检查阈值型成就，返回本次新解锁的成就。
// perfect_score和multi_skill属于事件型成就，由事件发生处用UnlockSpecial解锁。
func (s *GamificationService) CheckAchievements(userID uint) ([]AchievementDef, error) {
	progress, err := s.ProgressRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	conditions := map[string]bool{
		"first_lesson": progress.LessonsCompleted >= 1,
		"first_quiz":   progress.QuizzesCompleted >= 1,
		"streak_3":     progress.CurrentStreak >= 3,
		"streak_7":     progress.CurrentStreak >= 7,
		"streak_30":    progress.CurrentStreak >= 30,
		"lessons_10":   progress.LessonsCompleted >= 10,
		"lessons_50":   progress.LessonsCompleted >= 50,
		"xp_1000":      progress.TotalXP >= 1000,
		"first_review": progress.ReviewsCompleted >= 1,
	}

	newlyUnlocked := []AchievementDef{}
	for _, def := range achievementCatalog {
		met, checked := conditions[def.Key]
		if !checked || !met {
			continue
		}
		inserted, err := s.AchievementRepo.UnlockIfAbsent(userID, def.Key)
		if err != nil {
			return nil, err
		}
		if inserted {
			newlyUnlocked = append(newlyUnlocked, def)
		}
	}
	return newlyUnlocked, nil
}

// UnlockSpecial 解锁事件型成就，首次解锁返回定义，重复解锁返回nil
func (s *GamificationService) UnlockSpecial(userID uint, key string) (*AchievementDef, error) {
	def := AchievementDefByKey(key)
	if def == nil {
		return nil, nil
	}
	inserted, err := s.AchievementRepo.UnlockIfAbsent(userID, key)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, nil
	}
	return def, nil
}

func (s *GamificationService) RecordLessonCompleted(userID uint) error {
	return s.ProgressRepo.IncrementLessons(userID)
}

func (s *GamificationService) RecordQuizCompleted(userID uint) error {
	return s.ProgressRepo.IncrementQuizzes(userID)
}

func (s *GamificationService) RecordReviewCompleted(userID uint) error {
	return s.ProgressRepo.IncrementReviews(userID)
}

func (s *GamificationService) GetProgress(userID uint) (*model.UserProgress, error) {
	return s.ProgressRepo.FindByUserID(userID)
}

// GetAchievements 返回完整成就目录及解锁状态，供进度页渲染
func (s *GamificationService) GetAchievements(userID uint) ([]AchievementStatus, error) {
	var unlocks []model.Achievement
	if err := s.DB.Where("user_id = ?", userID).Find(&unlocks).Error; err != nil {
		return nil, err
	}
	unlockedAt := make(map[string]time.Time, len(unlocks))
	for _, u := range unlocks {
		unlockedAt[u.AchievementKey] = u.UnlockedAt
	}

	statuses := make([]AchievementStatus, 0, len(achievementCatalog))
	for _, def := range achievementCatalog {
		status := AchievementStatus{AchievementDef: def}
		if at, ok := unlockedAt[def.Key]; ok {
			status.Unlocked = true
			status.UnlockedAt = &at
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}
