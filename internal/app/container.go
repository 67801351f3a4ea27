package app

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"empedi/internal/config"
	"empedi/internal/database"
	dbpostgres "empedi/internal/database/postgres"
	"empedi/internal/infrastructure/cache"
	"empedi/internal/pkg/jwt"
	"empedi/internal/repository"
	"empedi/internal/scheduler"
	"empedi/internal/usecase"
	"empedi/internal/ws"
)

// Container owns every long-lived dependency of the server process.
type Container struct {
	Config config.Config
	Logger *log.Logger
	DB     database.DB
	Redis  *cache.Redis
	JWT    jwt.Service

	Hub       *ws.Hub
	Relay     *ws.Relay
	Scheduler *scheduler.Scheduler

	Auth            usecase.AuthUsecase
	Users           usecase.UserUsecase
	Skills          usecase.SkillUsecase
	Recommendations usecase.RecommendationUsecase
	JobDetails      usecase.JobDetailUsecase
	JobPostings     usecase.JobPostingUsecase
	JobExpiry       usecase.JobExpiryUsecase
	Courses         usecase.CourseDetailUsecase
	Mentors         usecase.MentorProfileUsecase
	Applications    usecase.JobApplicationUsecase
	Enrollments     usecase.EnrollmentUsecase
}

func NewLogger() *log.Logger {
	return log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = NewLogger()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	return NewContainerFromDB(cfg, db, cache.NewRedis(cfg.Redis, logger), logger), nil
}

// NewContainerFromDB wires usecases over an open pool. redis may be a
// disabled client.
func NewContainerFromDB(cfg config.Config, db database.DB, redis *cache.Redis, logger *log.Logger) *Container {
	if logger == nil {
		logger = NewLogger()
	}
	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Redis:  redis,
		JWT: jwt.NewHMACService(
			cfg.JWT.AccessSecret,
			cfg.JWT.RefreshSecret,
			cfg.JWT.AccessExpiresIn,
			cfg.JWT.RefreshExpiresIn,
		),
	}
	c.wire()
	return c
}

func (c *Container) wire() {
	users := repository.NewPostgresUserRepository(c.DB)
	skills := repository.NewPostgresSkillRepository(c.DB)
	jobs := repository.NewPostgresJobRepository(c.DB)
	courses := repository.NewPostgresCourseRepository(c.DB)
	mentors := repository.NewPostgresMentorRepository(c.DB)
	applications := repository.NewPostgresApplicationRepository(c.DB)
	enrollments := repository.NewPostgresEnrollmentRepository(c.DB)

	c.Hub = ws.NewHub(c.Logger)
	c.Relay = ws.NewRelay(c.Hub, c.Redis, c.Logger)
	events := ws.NewLocalFallbackPublisher(c.Redis, c.Relay, cache.ErrUnavailable)

	resolver := usecase.NewRecommendationUsecase(jobs, courses, mentors, c.Config.Recommendation.DefaultLimit, c.Logger)

	c.Auth = usecase.NewAuthUsecase(users, c.JWT, c.Logger)
	c.Users = usecase.NewUserUsecase(users, c.Logger)
	c.Skills = usecase.NewSkillUsecase(skills, c.Redis, c.Logger)
	c.Recommendations = resolver
	c.JobDetails = usecase.NewJobDetailUsecase(jobs, courses, mentors, resolver, c.Logger)
	c.JobPostings = usecase.NewJobPostingUsecase(jobs, skills, users, events, c.Logger)
	c.Courses = usecase.NewCourseDetailUsecase(jobs, courses, mentors, resolver, c.Logger)
	c.Mentors = usecase.NewMentorProfileUsecase(jobs, courses, mentors, resolver, c.Logger)
	c.Applications = usecase.NewJobApplicationUsecase(applications, jobs, c.Logger)
	c.Enrollments = usecase.NewEnrollmentUsecase(enrollments, courses, c.Logger)

	expiry := usecase.NewJobExpiryUsecase(jobs, c.Logger)
	c.JobExpiry = expiry
	c.Scheduler = scheduler.New(expiry, c.Config.Scheduler.JobExpirySpec, c.Logger)
}

// Start launches the background workers. They stop when ctx is done.
func (c *Container) Start(ctx context.Context) error {
	go c.Hub.Run(ctx)
	go c.Relay.Run(ctx, cache.ErrUnavailable)
	return c.Scheduler.Start(ctx)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}

	var errs []error
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
