// Package storage persists emitted detections in SQLite via GORM.
package storage

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/Parfait-17/Detection-droneV3/internal/core/domain"
)

// SQLiteStore implements ports.DetectionStore.
type SQLiteStore struct {
	db *gorm.DB
}

// DetectionModel is the GORM row for one emitted detection, upserted by
// session so a session updates in place as more frames merge into it.
type DetectionModel struct {
	SessionID string `gorm:"primaryKey"`
	SourceMAC string `gorm:"index"`

	UASID     string `gorm:"index"`
	UASIDType int
	Source    string

	Latitude          *float64
	Longitude         *float64
	AltitudePressure  *float64
	AltitudeMSL       *float64
	HeightAGL         *float64
	Speed             *float64
	Heading           *float64
	VerticalSpeed     *float64
	Status            int
	LocationTimestamp *float64

	OperatorID        string
	OperatorLatitude  *float64
	OperatorLongitude *float64
	OperatorAltitude  *float64
	SelfID            string

	OperatorLocationType int
	ClassificationType   int
	CategoryEU           int
	ClassEU              int
	AreaCount            int
	AreaRadius           int
	AreaCeiling          *float64
	AreaFloor            *float64

	AuthType      *int
	AuthPage      *int
	AuthLastPage  *int
	AuthData      []byte
	AuthMultiPage bool

	RSSI      int
	Frequency int
	Channel   int

	FirstSeen time.Time
	LastSeen  time.Time `gorm:"index"`
	Frames    int
}

// NewSQLiteStore opens (or creates) the database and migrates the schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open detection db: %w", err)
	}

	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, fmt.Errorf("enable db tracing: %w", err)
	}

	if err := db.AutoMigrate(&DetectionModel{}); err != nil {
		return nil, fmt.Errorf("migrate detection db: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save upserts a detection by session ID.
func (s *SQLiteStore) Save(ctx context.Context, det domain.Detection) error {
	model := toModel(det)
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		UpdateAll: true,
	}).Create(&model).Error
}

// GetBySession retrieves one detection by its session UUID.
func (s *SQLiteStore) GetBySession(ctx context.Context, sessionID string) (*domain.Detection, error) {
	var model DetectionModel
	if err := s.db.WithContext(ctx).First(&model, "session_id = ?", sessionID).Error; err != nil {
		return nil, err
	}
	det := toDomain(model)
	return &det, nil
}

// ListSince returns detections last seen at or after the given time, most
// recent first.
func (s *SQLiteStore) ListSince(ctx context.Context, since time.Time) ([]domain.Detection, error) {
	var models []DetectionModel
	if err := s.db.WithContext(ctx).
		Where("last_seen >= ?", since).
		Order("last_seen DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	dets := make([]domain.Detection, len(models))
	for i, m := range models {
		dets[i] = toDomain(m)
	}
	return dets, nil
}

// Close releases the underlying connection pool.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
