// Package readmodel mirrors committed ledger state into PostgreSQL for local
// queries. The mirror is derived data: the ledger stays authoritative, and a
// missed sync is repaired by the next mutation for the same credential.
package readmodel

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"proofgate/internal/registry/models"
	"proofgate/internal/registry/store"
	id "proofgate/pkg/domain"
)

// PostgresMirror upserts credential records keyed by credential_id.
type PostgresMirror struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed read-model mirror.
func NewPostgres(db *sql.DB) *PostgresMirror {
	return &PostgresMirror{db: db}
}

// Sync upserts the committed credential state. last_synced_at records when
// the mirror last converged with the ledger for this credential.
func (m *PostgresMirror) Sync(ctx context.Context, credential models.Credential, syncedAt time.Time) error {
	query := `
		INSERT INTO credentials (
			credential_id, subject_id, issuer_id, proof_type, proof_level,
			claim_digest, proof_digest, issued_at, expires_at,
			status, revoked_at, revoked_by, last_synced_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (credential_id) DO UPDATE SET
			status = EXCLUDED.status,
			revoked_at = EXCLUDED.revoked_at,
			revoked_by = EXCLUDED.revoked_by,
			last_synced_at = EXCLUDED.last_synced_at
	`
	_, err := m.db.ExecContext(ctx, query,
		credential.ID.String(),
		credential.SubjectID.String(),
		credential.IssuerID.String(),
		string(credential.ProofType),
		string(credential.ProofLevel),
		credential.ClaimDigest,
		credential.ProofDigest,
		credential.IssuedAt,
		credential.ExpiresAt,
		string(credential.Status),
		credential.RevokedAt,
		nullableActor(credential.RevokedBy),
		syncedAt,
	)
	if err != nil {
		return fmt.Errorf("sync credential read model: %w", err)
	}
	return nil
}

// FindByID reads a mirrored credential. Serves reporting queries only; the
// verification path reads the ledger through the cache.
func (m *PostgresMirror) FindByID(ctx context.Context, credentialID id.CredentialID) (models.Credential, error) {
	query := `
		SELECT credential_id, subject_id, issuer_id, proof_type, proof_level,
			claim_digest, proof_digest, issued_at, expires_at,
			status, revoked_at, revoked_by
		FROM credentials
		WHERE credential_id = $1
	`
	record, err := scanCredential(m.db.QueryRowContext(ctx, query, credentialID.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Credential{}, store.ErrNotFound
		}
		return models.Credential{}, fmt.Errorf("find mirrored credential: %w", err)
	}
	return record, nil
}

// ListBySubject reads a subject's mirrored credentials, newest first.
func (m *PostgresMirror) ListBySubject(ctx context.Context, subjectID id.SubjectID) ([]models.Credential, error) {
	query := `
		SELECT credential_id, subject_id, issuer_id, proof_type, proof_level,
			claim_digest, proof_digest, issued_at, expires_at,
			status, revoked_at, revoked_by
		FROM credentials
		WHERE subject_id = $1
		ORDER BY issued_at DESC
	`
	rows, err := m.db.QueryContext(ctx, query, subjectID.String())
	if err != nil {
		return nil, fmt.Errorf("list mirrored credentials: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only rows

	var out []models.Credential
	for rows.Next() {
		record, err := scanCredential(rows)
		if err != nil {
			return nil, fmt.Errorf("scan mirrored credential: %w", err)
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mirrored credentials: %w", err)
	}
	return out, nil
}

type credentialRow interface {
	Scan(dest ...any) error
}

func scanCredential(row credentialRow) (models.Credential, error) {
	var record models.Credential
	var credentialID, subjectID, issuerID, proofType, proofLevel, status string
	var revokedBy sql.NullString
	if err := row.Scan(
		&credentialID, &subjectID, &issuerID, &proofType, &proofLevel,
		&record.ClaimDigest, &record.ProofDigest, &record.IssuedAt, &record.ExpiresAt,
		&status, &record.RevokedAt, &revokedBy,
	); err != nil {
		return models.Credential{}, err
	}

	record.ID = id.CredentialID(credentialID)
	parsedSubject, err := id.ParseSubjectID(subjectID)
	if err != nil {
		return models.Credential{}, fmt.Errorf("parse mirrored subject: %w", err)
	}
	record.SubjectID = parsedSubject

	parsedIssuer, err := id.ParseIssuerID(issuerID)
	if err != nil {
		return models.Credential{}, fmt.Errorf("parse mirrored issuer: %w", err)
	}
	record.IssuerID = parsedIssuer

	record.ProofType = id.ProofType(proofType)
	record.ProofLevel = id.ProofLevel(proofLevel)
	record.Status = models.Status(status)

	if revokedBy.Valid && revokedBy.String != "" {
		actor, err := id.ParseActorID(revokedBy.String)
		if err != nil {
			return models.Credential{}, fmt.Errorf("parse mirrored revoker: %w", err)
		}
		record.RevokedBy = actor
	}
	return record, nil
}

func nullableActor(actor id.ActorID) sql.NullString {
	if actor.IsNil() {
		return sql.NullString{}
	}
	return sql.NullString{String: actor.String(), Valid: true}
}
