package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/truest-construction/site-backend/config"
	"github.com/truest-construction/site-backend/metrics"
	"github.com/truest-construction/site-backend/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
	_ "modernc.org/sqlite"
)

const (
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 5 * time.Minute
	pingTimeout            = 5 * time.Second
)

type Database struct {
	db                    *gorm.DB
	pageRepo              *PageRepo
	blogPostRepo          *BlogPostRepo
	serviceRepo           *ServiceRepo
	testimonialRepo       *TestimonialRepo
	contactSubmissionRepo *ContactSubmissionRepo
	calloutRepo           *CalloutRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                    db,
		pageRepo:              NewPageRepo(db),
		blogPostRepo:          NewBlogPostRepo(db),
		serviceRepo:           NewServiceRepo(db),
		testimonialRepo:       NewTestimonialRepo(db),
		contactSubmissionRepo: NewContactSubmissionRepo(db),
		calloutRepo:           NewCalloutRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) PageRepo() *PageRepo {
	return d.pageRepo
}

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

func (d Database) ServiceRepo() *ServiceRepo {
	return d.serviceRepo
}

func (d Database) TestimonialRepo() *TestimonialRepo {
	return d.testimonialRepo
}

func (d Database) ContactSubmissionRepo() *ContactSubmissionRepo {
	return d.contactSubmissionRepo
}

func (d Database) CalloutRepo() *CalloutRepo {
	return d.calloutRepo
}

// Ping checks that the database answers within the context deadline.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Stats returns the connection pool statistics.
func (d Database) Stats() (sql.DBStats, error) {
	sqlDB, err := d.db.DB()
	if err != nil {
		return sql.DBStats{}, err
	}
	return sqlDB.Stats(), nil
}

// DB exposes the shared connection for tooling such as code generation.
func (d Database) DB() *gorm.DB {
	return d.db
}

// Close releases the underlying connection pool.
func (d Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate creates or alters every table to match the models.
func (d Database) Migrate() error {
	return Migrate(d.db)
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}
	return nil
}

// Config selects and tunes the database connection.
type Config struct {
	// Type is "postgres", "supa" (postgres built from SUPABASE_DB_* parts) or "sqlite".
	Type            string
	DSN             string
	ReplicaDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SlowThreshold   time.Duration
	LogLevel        logger.LogLevel
}

// ConfigFromEnv builds a Config from the environment map returned by config.New.
func ConfigFromEnv(c map[string]string) (Config, error) {
	cfg := Config{
		Type:            strings.ToLower(config.GetString(c, "DB_TYPE", "postgres")),
		ReplicaDSN:      config.GetString(c, "DATABASE_REPLICA_URL", ""),
		MaxOpenConns:    config.GetInt(c, "DB_MAX_OPEN_CONNS", defaultMaxOpenConns),
		MaxIdleConns:    config.GetInt(c, "DB_MAX_IDLE_CONNS", defaultMaxIdleConns),
		ConnMaxLifetime: defaultConnMaxLifetime,
		SlowThreshold:   config.GetSeconds(c, "DB_SLOW_QUERY_SECONDS", 10),
		LogLevel:        logger.Warn,
	}

	switch cfg.Type {
	case "supa":
		cfg.DSN = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			config.GetString(c, "SUPABASE_DB_HOST", ""),
			config.GetString(c, "SUPABASE_DB_USER", ""),
			config.GetString(c, "SUPABASE_DB_PASSWORD", ""),
			config.GetString(c, "SUPABASE_DB_NAME", ""),
			config.GetString(c, "SUPABASE_DB_PORT", "5432"),
		)
	case "postgres":
		cfg.DSN = config.GetString(c, "DATABASE_URL", "")
		if cfg.DSN == "" {
			return cfg, fmt.Errorf("DATABASE_URL is required when DB_TYPE=postgres")
		}
	case "sqlite":
		cfg.DSN = config.GetString(c, "SQLITE_PATH", "site.db")
	default:
		return cfg, fmt.Errorf("unsupported DB_TYPE %q", cfg.Type)
	}

	return cfg, nil
}

func (c Config) dialector() gorm.Dialector {
	if c.Type == "sqlite" {
		return sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: c.DSN})
	}
	return postgres.New(postgres.Config{
		DSN:                  c.DSN,
		PreferSimpleProtocol: true,
	})
}

// Open connects, applies pool limits, registers the read replica if one is configured and
// checks the connection.
func Open(cfg Config) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             cfg.SlowThreshold,
			LogLevel:                  cfg.LogLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(cfg.dialector(), &gorm.Config{
		PrepareStmt:    false,
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to %s database: %w", cfg.Type, err)
	}

	if err := db.Use(metrics.GormPlugin{}); err != nil {
		return nil, fmt.Errorf("registering metrics plugin: %w", err)
	}

	if cfg.ReplicaDSN != "" && cfg.Type != "sqlite" {
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.New(postgres.Config{
				DSN:                  cfg.ReplicaDSN,
				PreferSimpleProtocol: true,
			})},
			Policy: dbresolver.RandomPolicy{},
		})
		if err := db.Use(resolver); err != nil {
			return nil, fmt.Errorf("registering read replica: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging %s database: %w", cfg.Type, err)
	}

	return db, nil
}

// OpenInMemory opens a private in-memory sqlite database with every table migrated.
// The pool is pinned to a single connection because each sqlite memory connection is its own database.
func OpenInMemory() (*gorm.DB, error) {
	db, err := Open(Config{
		Type:         "sqlite",
		DSN:          ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     logger.Silent,
	})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
