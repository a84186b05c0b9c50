package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/kindlot/charity-auction/internal/model"
	"github.com/kindlot/charity-auction/internal/utils"
)

// UserRepo owns the `users` table: account identity, role and the
// email-verification state.  Passwords enter and leave this repo only as
// bcrypt hashes; callers verify credentials through utils.VerifyPassword.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// NormalizeEmail lowercases and trims an email for storage and lookup.
// Uniqueness is enforced on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EmailLocalPart returns the text before the "@".  It is the fallback for a
// missing username and the last resort for a charity profile name.
func EmailLocalPart(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}

// isDuplicate reports whether err is a MySQL duplicate-key error (1062) on
// the named key.  Callers pass the full unique-key name (e.g.
// "uq_users_email") so a duplicate *value* that happens to contain a column
// name cannot match the wrong key.  With key == "" any duplicate matches.
func isDuplicate(err error, key string) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "1062") {
		return false
	}
	return key == "" || strings.Contains(msg, key)
}

// CreateTx inserts a new account within the given transaction and populates
// acc.ID.  The email is normalized first; a missing username defaults to
// the email local part.  The password is bcrypt-hashed with the given cost.
// Duplicate email and username rows surface as ErrEmailExists and
// ErrUsernameExists so the caller can report the conflict instead of
// silently renaming.
func (r *UserRepo) CreateTx(ctx context.Context, tx *sql.Tx, acc *model.Account, password string, cost int) error {
	acc.Email = NormalizeEmail(acc.Email)
	if acc.Username == "" {
		acc.Username = EmailLocalPart(acc.Email)
	}
	if !acc.Role.Valid() {
		acc.Role = model.RoleBuyer
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	acc.PasswordHash = hash

	res, err := tx.ExecContext(ctx,
		`INSERT INTO users
		   (email, username, first_name, password_hash, role, is_active, is_staff, is_superuser,
		    is_email_verified, email_verification_code, email_verification_expires)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		acc.Email, acc.Username, acc.FirstName, acc.PasswordHash, string(acc.Role),
		acc.IsActive, acc.IsStaff, acc.IsSuperuser,
		acc.IsEmailVerified, acc.VerificationCode, acc.VerificationExp)
	if err != nil {
		if isDuplicate(err, "uq_users_email") {
			return ErrEmailExists
		}
		if isDuplicate(err, "uq_users_username") {
			return ErrUsernameExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	acc.ID = uint64(id)
	return nil
}

// SuperuserFlags carries the explicit elevation flags for CreateSuperuser.
// A nil pointer means "not supplied" and defaults to true; an explicit
// false is rejected.
type SuperuserFlags struct {
	IsStaff     *bool
	IsSuperuser *bool
}

// CreateSuperuser creates a privileged account.  The role is forced to
// ADMIN and both elevation flags must end up true; supplying either flag as
// false fails with ErrInvalidPrivilegeEscalation before anything is
// written.  The account is created active with a verified email, since
// superusers are provisioned by operators, not by the onboarding flow.
// provision runs inside the same transaction so the admin gets its balance
// like every other account.
func (r *UserRepo) CreateSuperuser(ctx context.Context, email, password string, cost int, flags SuperuserFlags,
	provision func(context.Context, *sql.Tx, *model.Account) error) (*model.Account, error) {
	if flags.IsStaff != nil && !*flags.IsStaff {
		return nil, ErrInvalidPrivilegeEscalation
	}
	if flags.IsSuperuser != nil && !*flags.IsSuperuser {
		return nil, ErrInvalidPrivilegeEscalation
	}
	acc := &model.Account{
		Email:           email,
		Role:            model.RoleAdmin,
		IsActive:        true,
		IsStaff:         true,
		IsSuperuser:     true,
		IsEmailVerified: true,
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := r.CreateTx(ctx, tx, acc, password, cost); err != nil {
		return nil, err
	}
	if provision != nil {
		if err := provision(ctx, tx, acc); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return acc, nil
}

const userColumns = `id, email, username, first_name, password_hash, role,
	is_active, is_staff, is_superuser, is_email_verified,
	email_verification_code, email_verification_expires, created_at, updated_at`

func scanAccount(row *sql.Row) (model.Account, error) {
	var (
		a    model.Account
		role string
		code sql.NullString
		exp  sql.NullTime
	)
	err := row.Scan(&a.ID, &a.Email, &a.Username, &a.FirstName, &a.PasswordHash, &role,
		&a.IsActive, &a.IsStaff, &a.IsSuperuser, &a.IsEmailVerified,
		&code, &exp, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return model.Account{}, err
	}
	a.Role = model.Role(role)
	if code.Valid {
		c := code.String
		a.VerificationCode = &c
	}
	if exp.Valid {
		t := exp.Time
		a.VerificationExp = &t
	}
	return a, nil
}

// GetByEmail fetches an account by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", NormalizeEmail(email))
	return scanAccount(row)
}

// GetByID fetches an account by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.Account, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
	return scanAccount(row)
}

// VerifyEmailByCode flips is_email_verified for the account holding the
// given verification code, provided the code has not expired, and clears
// the code so it cannot be replayed.  Unknown and expired codes are
// indistinguishable to the caller (both ErrVerificationCode).
func (r *UserRepo) VerifyEmailByCode(ctx context.Context, code string) error {
	if strings.TrimSpace(code) == "" {
		return ErrVerificationCode
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users
		    SET is_email_verified=1, email_verification_code=NULL, email_verification_expires=NULL
		  WHERE email_verification_code=? AND email_verification_expires > ?`,
		code, time.Now().UTC())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrVerificationCode
	}
	return nil
}

// SetPassword replaces the stored credential with a fresh bcrypt hash.
func (r *UserRepo) SetPassword(ctx context.Context, userID uint64, password string, cost int) error {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=? WHERE id=?", hash, userID)
	return err
}
