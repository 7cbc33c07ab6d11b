package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nueracare-api/internal/domain/entity"
	"nueracare-api/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// documentRecord is one row of the documents table. Body holds the whole
// document including _id and _type.
type documentRecord struct {
	ID        string          `gorm:"type:varchar(255);primaryKey"`
	Type      string          `gorm:"type:varchar(100);not null;index"`
	Body      entity.Document `gorm:"type:jsonb;not null"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime"`
}

func (documentRecord) TableName() string {
	return "documents"
}

// PostgresStore keeps documents in a jsonb column.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateOrReplace(ctx context.Context, doc entity.Document) (entity.Document, error) {
	normalized, err := checkDocument("createOrReplace", doc)
	if err != nil {
		return nil, err
	}

	record := &documentRecord{
		ID:   normalized.ID(),
		Type: normalized.Type(),
		Body: normalized,
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"type", "body", "updated_at"}),
	}).Create(record).Error
	if err != nil {
		return nil, mapPostgresError("createOrReplace", record.ID, err)
	}

	return normalized, nil
}

func (s *PostgresStore) Patch(ctx context.Context, id string, set map[string]interface{}) (entity.Document, error) {
	fields, err := normalizeSet("patch", id, set)
	if err != nil {
		return nil, err
	}

	var patched entity.Document
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record documentRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&record).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.NewStoreError(repository.ErrNotFound, "patch", id, nil)
			}
			return mapPostgresError("patch", id, err)
		}

		patched, err = applyPatch("patch", record.Body, fields)
		if err != nil {
			return err
		}

		record.Body = patched
		if err := tx.Save(&record).Error; err != nil {
			return mapPostgresError("patch", id, err)
		}
		return nil
	})
	if err != nil {
		var storeErr *repository.StoreError
		if errors.As(err, &storeErr) {
			return nil, err
		}
		return nil, mapPostgresError("patch", id, err)
	}

	return patched, nil
}

func (s *PostgresStore) Fetch(ctx context.Context, q repository.Query) (entity.Document, error) {
	query := s.db.WithContext(ctx).Where("type = ?", q.Type)
	for field, value := range q.Where {
		query = query.Where("body ->> ? = ?", field, fmt.Sprint(value))
	}

	var record documentRecord
	err := query.Order("id").First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, mapPostgresError("fetch", "", err)
	}
	return record.Body, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&documentRecord{}).Error
	if err != nil {
		return mapPostgresError("delete", id, err)
	}
	return nil
}

// mapPostgresError sorts driver errors into the store taxonomy by SQLSTATE
// class: 28xxx and 42501 are auth, 22xxx and 23xxx are rejected data.
func mapPostgresError(op, id string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "42501", strings.HasPrefix(pgErr.Code, "28"):
			return repository.NewStoreError(repository.ErrAuth, op, id, err)
		case strings.HasPrefix(pgErr.Code, "22"), strings.HasPrefix(pgErr.Code, "23"):
			return repository.NewStoreError(repository.ErrValidation, op, id, err)
		}
		return repository.NewStoreError(repository.ErrNetwork, op, id, err)
	}

	// Connection resets, timeouts and cancelled contexts.
	return repository.NewStoreError(repository.ErrNetwork, op, id, err)
}
