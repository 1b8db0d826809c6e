package recorder

import (
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLite writes matches through GORM into a SQLite file. Events are buffered
// and written with CreateInBatches once batchSize rows are pending.
type SQLite struct {
	db        *gorm.DB
	path      string
	batchSize int
	pending   []CombatEvent
	log       zerolog.Logger
	mu        sync.Mutex
}

// NewSQLite opens the database at path. An empty path or ":memory:" gives a
// private in-memory database.
func NewSQLite(path string, batchSize int, log zerolog.Logger) (*SQLite, error) {
	inMemory := path == "" || path == ":memory:"
	dsn := path
	if inMemory {
		dsn = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        batchSize,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	// sqlite has a single writer, and an in-memory database is private to
	// its connection
	sqlDB.SetMaxOpenConns(1)
	if inMemory {
		log.Debug().Msg("Using in-memory SQLite DB")
	} else {
		log.Info().Str("path", path).Msg("Using local SQLite DB")
	}

	return &SQLite{
		db:        db,
		path:      dsn,
		batchSize: batchSize,
		log:       log,
	}, nil
}

// Init sets pragmas and migrates the schema.
func (b *SQLite) Init() error {
	pragmas := []string{
		"PRAGMA journal_mode = MEMORY;",
		"PRAGMA synchronous = OFF;",
		"PRAGMA temp_store = MEMORY;",
	}
	for _, pragma := range pragmas {
		if err := b.db.Exec(pragma).Error; err != nil {
			return fmt.Errorf("error setting PRAGMA: %w", err)
		}
	}

	b.log.Debug().Msg("Migrating schema")
	if err := b.db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close flushes pending events and closes the connection pool.
func (b *SQLite) Close() error {
	flushErr := b.Flush()
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return err
	}
	return flushErr
}

func (b *SQLite) StartMatch(m *Match) error {
	return b.db.Create(m).Error
}

func (b *SQLite) EndMatch(m *Match) error {
	return b.db.Save(m).Error
}

// RecordEvents buffers events and writes a batch when the buffer is full.
func (b *SQLite) RecordEvents(events []CombatEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, events...)
	if len(b.pending) < b.batchSize {
		return nil
	}
	return b.flushLocked()
}

// Flush writes every buffered event.
func (b *SQLite) Flush() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.flushLocked()
}

func (b *SQLite) flushLocked() error {
	if len(b.pending) == 0 {
		return nil
	}
	if err := b.db.CreateInBatches(b.pending, b.batchSize).Error; err != nil {
		return fmt.Errorf("failed to write %d events: %w", len(b.pending), err)
	}
	b.log.Debug().Int("rows", len(b.pending)).Msg("events written")
	b.pending = b.pending[:0]
	return nil
}

// Events returns the stored events of one match in id order. Buffered rows
// are flushed first.
func (b *SQLite) Events(matchID uint) ([]CombatEvent, error) {
	if err := b.Flush(); err != nil {
		return nil, err
	}
	var out []CombatEvent
	err := b.db.Where("match_id = ?", matchID).Order("id").Find(&out).Error
	return out, err
}

func (b *SQLite) CountByKind(matchID uint) (map[string]int, error) {
	if err := b.Flush(); err != nil {
		return nil, err
	}
	var rows []struct {
		Kind  string
		Total int
	}
	err := b.db.Model(&CombatEvent{}).
		Select("kind, count(*) as total").
		Where("match_id = ?", matchID).
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.Kind] = r.Total
	}
	return counts, nil
}

// Path is the DSN the database was opened with.
func (b *SQLite) Path() string { return b.path }
