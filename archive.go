package querypod

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConversationTurn is one archived row. The archive is a write-only audit
// trail of committed turns; it is never read back to serve a session, so
// sessions still start empty after a restart.
type ConversationTurn struct {
	ID        uint   `gorm:"primaryKey"`
	SessionID string `gorm:"index;not null"`
	Role      string `gorm:"not null"`
	Content   string
	CreatedAt time.Time
}

func (ConversationTurn) TableName() string {
	return "conversation_turns"
}

// Archive appends committed conversation turns to Postgres.
type Archive struct {
	db *gorm.DB
}

// OpenArchive connects to Postgres and ensures the schema exists.
func OpenArchive(dsn string) (*Archive, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}
	if err := db.AutoMigrate(&ConversationTurn{}); err != nil {
		return nil, fmt.Errorf("failed to migrate archive schema: %w", err)
	}
	return &Archive{db: db}, nil
}

// SaveTurns appends the given turns under sessionID.
func (a *Archive) SaveTurns(ctx context.Context, sessionID string, turns []Turn) error {
	if len(turns) == 0 {
		return nil
	}
	rows := make([]ConversationTurn, 0, len(turns))
	for _, t := range turns {
		rows = append(rows, ConversationTurn{
			SessionID: sessionID,
			Role:      t.Role,
			Content:   t.Content,
		})
	}
	if err := a.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to archive turns: %w", err)
	}
	return nil
}

// Close releases the underlying database connection.
func (a *Archive) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return fmt.Errorf("failed to access underlying db: %w", err)
	}
	return sqlDB.Close()
}
