package database

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// Options configures Open.
type Options struct {
	DSN           string
	ReplicaDSN    string // optional read replica
	SlowThreshold time.Duration
	LogWriter     io.Writer
}

// BuildDSN returns DATABASE_URL when set, otherwise a key/value DSN assembled
// from the SUPABASE_DB_* settings.
func BuildDSN(getenv func(key, fallback string) string) string {
	if url := getenv("DATABASE_URL", ""); url != "" {
		return url
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		getenv("SUPABASE_DB_HOST", "localhost"),
		getenv("SUPABASE_DB_USER", "postgres"),
		getenv("SUPABASE_DB_PASSWORD", ""),
		getenv("SUPABASE_DB_NAME", "postgres"),
		getenv("SUPABASE_DB_PORT", "5432"),
		getenv("SUPABASE_DB_SSLMODE", "require"),
	)
}

// Open connects to Postgres and checks the connection. Reads are routed to
// the replica when one is configured.
func Open(opts Options) (*gorm.DB, error) {
	if opts.DSN == "" {
		return nil, fmt.Errorf("open database: empty DSN")
	}
	if opts.SlowThreshold == 0 {
		opts.SlowThreshold = 10 * time.Second
	}
	if opts.LogWriter == nil {
		opts.LogWriter = os.Stdout
	}

	newLogger := logger.New(
		log.New(opts.LogWriter, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             opts.SlowThreshold,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  opts.DSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if opts.ReplicaDSN != "" {
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.New(postgres.Config{
				DSN:                  opts.ReplicaDSN,
				PreferSimpleProtocol: true,
			})},
			Policy: dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return nil, fmt.Errorf("register read replica: %w", err)
		}
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("test database connection: %w", err)
	}
	return db, nil
}
