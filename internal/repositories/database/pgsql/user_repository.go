package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/gallery_app/internal/apperrors"
	"github.com/SscSPs/gallery_app/internal/core/domain"
	portsrepo "github.com/SscSPs/gallery_app/internal/core/ports/repositories"
	"github.com/SscSPs/gallery_app/internal/models"
	"github.com/SscSPs/gallery_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, username, email, given_name, family_name,
	google_id, facebook_id, twitter_id, password_hash,
	verified, enabled, admin,
	login_ip, login_agent, login_at, registered_ip, registered_agent, registered_at,
	created_at, created_by, last_updated_at, last_updated_by`

const adminIndex = "users_single_admin_idx"

var userUniqueFields = uniqueFields{
	"users_pkey":            "user_id",
	"users_username_idx":    "username",
	"users_email_idx":       "email",
	"users_google_id_idx":   "google_id",
	"users_facebook_id_idx": "facebook_id",
	"users_twitter_id_idx":  "twitter_id",
}

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID, m.Username, m.Email, m.GivenName, m.FamilyName,
		m.GoogleID, m.FacebookID, m.TwitterID, m.PasswordHash,
		m.Verified, m.Enabled, m.Admin,
		m.LoginIP, m.LoginAgent, m.LoginAt, m.RegisteredIP, m.RegisteredAgent, m.RegisteredAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return r.translateWriteError(err, "failed to save user", userUniqueFields, adminIndex)
	}
	return nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		UPDATE users
		SET username = $1, email = $2, given_name = $3, family_name = $4,
			google_id = $5, facebook_id = $6, twitter_id = $7, password_hash = $8,
			verified = $9, enabled = $10, admin = $11,
			login_ip = $12, login_agent = $13, login_at = $14,
			last_updated_at = $15, last_updated_by = $16
		WHERE user_id = $17;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Username, m.Email, m.GivenName, m.FamilyName,
		m.GoogleID, m.FacebookID, m.TwitterID, m.PasswordHash,
		m.Verified, m.Enabled, m.Admin,
		m.LoginIP, m.LoginAgent, m.LoginAt,
		m.LastUpdatedAt, m.LastUpdatedBy,
		m.UserID,
	)
	if err != nil {
		return r.translateWriteError(err, "failed to execute update user query", userUniqueFields, adminIndex)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found: %w", user.UserID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, "user_id = $1", userID)
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "username = $1", username)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = $1", email)
}

func (r *PgxUserRepository) FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	var column string
	switch provider {
	case domain.ProviderGoogle:
		column = "google_id"
	case domain.ProviderFacebook:
		column = "facebook_id"
	case domain.ProviderTwitter:
		column = "twitter_id"
	default:
		return nil, fmt.Errorf("unsupported provider %q: %w", provider, apperrors.ErrValidation)
	}
	return r.findOne(ctx, column+" = $1", providerUserID)
}

func (r *PgxUserRepository) FindAdmin(ctx context.Context) (*domain.User, error) {
	return r.findOne(ctx, "admin")
}

// FindUsers lists users oldest first. Rows after the cursor are selected on
// (created_at, user_id) so pages stay stable while new users sign up.
func (r *PgxUserRepository) FindUsers(ctx context.Context, limit int, after *portsrepo.UserCursor) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}

	var (
		rows pgx.Rows
		err  error
	)
	if after == nil {
		rows, err = r.Pool.Query(ctx, `
			SELECT `+userColumns+`
			FROM users
			ORDER BY created_at, user_id
			LIMIT $1;
		`, limit)
	} else {
		rows, err = r.Pool.Query(ctx, `
			SELECT `+userColumns+`
			FROM users
			WHERE (created_at, user_id) > ($1, $2)
			ORDER BY created_at, user_id
			LIMIT $3;
		`, after.CreatedAt, after.UserID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	modelUsers := []models.User{}
	for rows.Next() {
		m, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		modelUsers = append(modelUsers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return mapping.ToDomainUserSlice(modelUsers), nil
}

func (r *PgxUserRepository) findOne(ctx context.Context, where string, args ...any) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where + ` LIMIT 1;`
	m, err := scanUser(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user (%s): %w", where, err)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID, &m.Username, &m.Email, &m.GivenName, &m.FamilyName,
		&m.GoogleID, &m.FacebookID, &m.TwitterID, &m.PasswordHash,
		&m.Verified, &m.Enabled, &m.Admin,
		&m.LoginIP, &m.LoginAgent, &m.LoginAt, &m.RegisteredIP, &m.RegisteredAgent, &m.RegisteredAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}
