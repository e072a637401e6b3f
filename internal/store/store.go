// Package store persists per-profile high scores in SQLite through GORM.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// HighScore is the best result recorded for one profile.
type HighScore struct {
	ID        uint   `gorm:"primarykey"`
	Profile   string `gorm:"uniqueIndex;size:64;not null"`
	Score     int    `gorm:"not null"`
	Wave      int    `gorm:"not null"`
	UpdatedAt time.Time
}

// Store reads and writes high scores. Safe for concurrent use.
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Open connects to the SQLite file at path and migrates the schema.
// An empty path opens a private in-memory database.
func Open(path string, log zerolog.Logger) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database %q: %w", dsn, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("accessing sql interface: %w", err)
	}
	// SQLite allows a single writer; in-memory databases are also per connection.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&HighScore{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrating high score table: %w", err)
	}

	log.Debug().Str("path", dsn).Msg("high score store ready")
	return &Store{db: db, log: log}, nil
}

// HighScore returns the stored best score for profile, or 0 if none.
func (s *Store) HighScore(ctx context.Context, profile string) (int, error) {
	var hs HighScore
	err := s.db.WithContext(ctx).Where("profile = ?", profile).First(&hs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading high score for %q: %w", profile, err)
	}
	return hs.Score, nil
}

// Commit records score for profile only if it strictly exceeds the stored
// value. Reports whether a write happened.
func (s *Store) Commit(ctx context.Context, profile string, score, wave int) (bool, error) {
	written := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var hs HighScore
		err := tx.Where("profile = ?", profile).First(&hs).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if score <= 0 {
				return nil
			}
			written = true
			return tx.Create(&HighScore{Profile: profile, Score: score, Wave: wave}).Error
		case err != nil:
			return err
		case score <= hs.Score:
			return nil
		}
		written = true
		return tx.Model(&hs).Updates(map[string]any{"score": score, "wave": wave}).Error
	})
	if err != nil {
		return false, fmt.Errorf("committing high score for %q: %w", profile, err)
	}
	if written {
		s.log.Info().Str("profile", profile).Int("score", score).Msg("new high score")
	}
	return written, nil
}

// Top returns up to n entries ordered by score, best first.
func (s *Store) Top(ctx context.Context, n int) ([]HighScore, error) {
	var out []HighScore
	err := s.db.WithContext(ctx).Order("score DESC").Order("updated_at ASC").Limit(n).Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing high scores: %w", err)
	}
	return out, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("accessing sql interface: %w", err)
	}
	return sqlDB.Close()
}
