package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"dashkit/internal/storage"
	"github.com/google/uuid"
)

// APIKeyRepository implements repository.APIKeyRepository for SQLite.
// Only the SHA-256 of a token is stored; the plaintext is returned once,
// from Create, and cannot be recovered afterwards.
type APIKeyRepository struct {
	db *DB
}

// NewAPIKeyRepository creates a new APIKeyRepository
func NewAPIKeyRepository(db *DB) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

// Create generates a new API key for a project and returns the plaintext token.
func (r *APIKeyRepository) Create(ctx context.Context, projectID int64, description string) (string, error) {
	token := uuid.NewString()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO api_keys (key_hash, project_id, description)
		VALUES (?, ?, ?)
	`, hashToken(token), projectID, description)
	if err != nil {
		return "", fmt.Errorf("failed to create api key: %w", err)
	}

	return token, nil
}

// Resolve maps a token to its project id and stamps last_used.
func (r *APIKeyRepository) Resolve(ctx context.Context, token string) (int64, error) {
	hash := hashToken(token)

	var projectID int64
	err := r.db.QueryRowContext(ctx,
		`SELECT project_id FROM api_keys WHERE key_hash = ?`, hash).Scan(&projectID)
	if err == sql.ErrNoRows {
		return 0, storage.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve api key: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE api_keys SET last_used = ? WHERE key_hash = ?`, time.Now(), hash)
	if err != nil {
		return 0, fmt.Errorf("failed to touch api key: %w", err)
	}

	return projectID, nil
}

// Revoke deletes a key. Revoking an unknown token is a no-op.
func (r *APIKeyRepository) Revoke(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM api_keys WHERE key_hash = ?`, hashToken(token))
	if err != nil {
		return fmt.Errorf("failed to revoke api key: %w", err)
	}
	return nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
