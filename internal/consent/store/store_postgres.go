package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"proofgate/internal/consent/models"
	id "proofgate/pkg/domain"
)

// PostgresStore persists consent records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed consent store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, record models.Record) error {
	query := `
		INSERT INTO consent_records (subject_id, allow_contact, allow_skill_view, allow_profile_view, require_nda, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (subject_id) DO UPDATE SET
			allow_contact = EXCLUDED.allow_contact,
			allow_skill_view = EXCLUDED.allow_skill_view,
			allow_profile_view = EXCLUDED.allow_profile_view,
			require_nda = EXCLUDED.require_nda,
			updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		record.SubjectID.String(),
		record.AllowContact,
		record.AllowSkillView,
		record.AllowProfileView,
		record.RequireNDA,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save consent record: %w", err)
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, subjectID id.SubjectID) (models.Record, error) {
	query := `
		SELECT subject_id, allow_contact, allow_skill_view, allow_profile_view, require_nda, updated_at
		FROM consent_records
		WHERE subject_id = $1
	`
	var record models.Record
	var rawSubject string
	err := s.db.QueryRowContext(ctx, query, subjectID.String()).Scan(
		&rawSubject,
		&record.AllowContact,
		&record.AllowSkillView,
		&record.AllowProfileView,
		&record.RequireNDA,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Record{}, ErrNotFound
		}
		return models.Record{}, fmt.Errorf("find consent record: %w", err)
	}

	parsed, err := id.ParseSubjectID(rawSubject)
	if err != nil {
		return models.Record{}, fmt.Errorf("parse consent subject: %w", err)
	}
	record.SubjectID = parsed
	return record, nil
}
