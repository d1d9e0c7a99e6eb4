package repositories

import (
	"context"
	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const pipelineDocumentID = "application_pipeline"

type pipelineDocument struct {
	ID    string `gorm:"primaryKey"`
	Value []byte
}

// SqliteBackend stores the pipeline document as a single blob row. It is a
// drop-in alternative to the file backend for setups that already keep their
// data in sqlite.
type SqliteBackend struct {
	db *gorm.DB
}

func NewSqliteBackend(connectionString string) (*SqliteBackend, error) {
	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open pipeline database")
	}

	if err = db.AutoMigrate(pipelineDocument{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate pipeline document entity")
	}

	return &SqliteBackend{db: db}, nil
}

func (b *SqliteBackend) Read(ctx context.Context) ([]byte, error) {
	doc := &pipelineDocument{}
	err := b.db.WithContext(ctx).First(doc, "id = ?", pipelineDocumentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotExists
		}
		return nil, errors.Wrap(err, "failed to load pipeline document")
	}
	return doc.Value, nil
}

func (b *SqliteBackend) Write(ctx context.Context, data []byte) error {
	return b.db.WithContext(ctx).Save(&pipelineDocument{
		ID:    pipelineDocumentID,
		Value: data,
	}).Error
}

func (b *SqliteBackend) Close() error {
	db, err := b.db.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
