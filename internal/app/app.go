package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"micro_tutor_backend/internal/config"
	"micro_tutor_backend/internal/controller"
	"micro_tutor_backend/internal/repository"
	"micro_tutor_backend/internal/service"
	"micro_tutor_backend/pkg/database"
	"micro_tutor_backend/pkg/logger"
	"micro_tutor_backend/pkg/monitoring"
	"micro_tutor_backend/pkg/security"
	"micro_tutor_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user        *repository.UserRepository
	skill       *repository.SkillRepository
	lesson      *repository.LessonRepository
	quiz        *repository.QuizRepository
	reviewCard  *repository.ReviewCardRepository
	progress    *repository.ProgressRepository
	achievement *repository.AchievementRepository
	chat        *repository.ChatRepository
	project     *repository.ProjectRepository
}

type services struct {
	tutor        *service.TutorService
	gamification *service.GamificationService
	review       *service.ReviewService
	skill        *service.SkillService
	lesson       *service.LessonService
	quiz         *service.QuizService
	project      *service.ProjectService
	exercise     *service.ExerciseService
	chat         *service.ChatService
	resource     *service.ResourceService
}

type controllers struct {
	skill    *controller.SkillController
	lesson   *controller.LessonController
	quiz     *controller.QuizController
	review   *controller.ReviewController
	progress *controller.ProgressController
	chat     *controller.ChatController
	project  *controller.ProjectController
	exercise *controller.ExerciseController
	resource *controller.ResourceController
	health   *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		skill:       repository.NewSkillRepository(db),
		lesson:      repository.NewLessonRepository(db),
		quiz:        repository.NewQuizRepository(db),
		reviewCard:  repository.NewReviewCardRepository(db),
		progress:    repository.NewProgressRepository(db),
		achievement: repository.NewAchievementRepository(db),
		chat:        repository.NewChatRepository(db),
		project:     repository.NewProjectRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.tutor = service.NewTutorService(cfg.AI)
	s.gamification = service.NewGamificationService(db, repos.progress, repos.achievement)
	s.review = service.NewReviewService(repos.reviewCard, s.gamification)
	s.skill = service.NewSkillService(repos.skill, repos.lesson, s.gamification, s.tutor, rdb)
	s.lesson = service.NewLessonService(repos.lesson, repos.skill, repos.reviewCard, s.gamification, s.tutor)
	s.quiz = service.NewQuizService(repos.quiz, repos.lesson, s.gamification, s.tutor)
	s.project = service.NewProjectService(repos.project, repos.skill, repos.lesson, s.gamification, s.tutor)
	s.exercise = service.NewExerciseService(s.gamification, s.tutor)
	s.chat = service.NewChatService(repos.chat, repos.skill, s.tutor)
	s.resource = service.NewResourceService()

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		skill:    controller.NewSkillController(s.skill),
		lesson:   controller.NewLessonController(s.lesson),
		quiz:     controller.NewQuizController(s.quiz),
		review:   controller.NewReviewController(s.review),
		progress: controller.NewProgressController(s.gamification, s.review),
		chat:     controller.NewChatController(s.chat),
		project:  controller.NewProjectController(s.project),
		exercise: controller.NewExerciseController(s.exercise),
		resource: controller.NewResourceController(s.resource),
		health:   controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks 后台任务：定期刷新到期复习卡片数指标
func (a *App) startBackgroundTasks(repos *repositories) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		for range ticker.C {
			count, err := repos.reviewCard.CountDueAll(time.Now().UTC())
			if err != nil {
				logger.Log.Error("count due reviews error", zap.Error(err))
				continue
			}
			monitoring.DueReviews.Set(float64(count))
		}
	}()
}

// ApplyConfig 配置热更新回调。只有AI接入参数支持运行时替换，
// 端口、数据库等改动需要重启生效
func (a *App) ApplyConfig(newCfg *config.Config) {
	if a.services == nil || a.services.tutor == nil {
		return
	}
	a.services.tutor.UpdateConfig(newCfg.AI)
	a.Config.AI = newCfg.AI
	logger.Log.Info("AI config reloaded",
		zap.String("baseUrl", newCfg.AI.BaseURL),
		zap.String("model", newCfg.AI.Model))
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.MigrateOnly {
		return app
	}

	repos := app.initRepositories(db)
	svcs := app.initServices(repos, cfg, db, rdb)
	app.services = svcs
	ctrls := app.initControllers(svcs, db)

	monitoring.Init()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("micro-tutor", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, ctrls, repos)

	app.startBackgroundTasks(repos)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
