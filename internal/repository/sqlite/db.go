package sqlite

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alcyxob/exercise-catalog/internal/catalog"
	"alcyxob/exercise-catalog/internal/repository"
)

// driverName is go-sqlite3 with a casefold(text) SQL function, which applies
// the same Unicode folding as catalog.Matches. SQLite's LOWER is ASCII-only.
const driverName = "sqlite3_catalog"

var registerDriver sync.Once

func registerCatalogDriver() {
	registerDriver.Do(func() {
		sql.Register(driverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("casefold", catalog.Fold, true)
			},
		})
	})
}

// NewDB opens a SQLite database and migrates the catalog tables.
func NewDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = "exercise_catalog.db"
	}

	if err := ensureDirForSQLite(dsn); err != nil {
		return nil, err
	}

	dbLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	registerCatalogDriver()
	db, err := gorm.Open(&sqlite.Dialector{DriverName: driverName, DSN: dsn}, &gorm.Config{
		Logger:         dbLogger,
		TranslateError: true, // Unique violations surface as gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.AutoMigrate(&categoryModel{}, &exerciseModel{}, &variantModel{}, &descriptionModel{}); err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	return db, nil
}

// NewStore wires every catalog repository onto db.
func NewStore(db *gorm.DB) *repository.Store {
	return &repository.Store{
		Exercises:    NewExerciseRepository(db),
		Variants:     NewVariantRepository(db),
		Categories:   NewCategoryRepository(db),
		Descriptions: NewDescriptionRepository(db),
		Close: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

// ensureDirForSQLite creates parent dir for SQLite file if needed.
func ensureDirForSQLite(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}
