package snapshot

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// snapshotRow maps the snapshots key-value table.
type snapshotRow struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Payload   string    `gorm:"column:payload;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (snapshotRow) TableName() string { return "snapshots" }

// DBStore persists snapshots in a SQL key-value table.
type DBStore struct {
	db *gorm.DB
}

// NewDBStore constructs a snapshot store bound to the provided gorm DB.
func NewDBStore(db *gorm.DB) (*DBStore, error) {
	if db == nil {
		return nil, errors.New("db handle is required")
	}
	return &DBStore{db: db}, nil
}

// Read loads the payload stored at key.
func (s *DBStore) Read(ctx context.Context, key string) ([]byte, bool, error) {
	var row snapshotRow
	err := s.db.WithContext(ctx).Take(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(row.Payload), true, nil
}

// Write upserts the payload stored at key. The ON CONFLICT form works on both
// Postgres and the SQLite used in tests.
func (s *DBStore) Write(ctx context.Context, key string, payload []byte) error {
	return s.db.WithContext(ctx).
		Exec(`INSERT INTO snapshots (key, payload, created_at, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
ON CONFLICT (key) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP`, key, string(payload)).
		Error
}

// Ping verifies the datasource is reachable.
func (s *DBStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
