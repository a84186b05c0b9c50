package repository

import (
	"context"
	"database/sql"

	"github.com/kindlot/charity-auction/internal/model"
)

// CharityRepo owns the `charity_profiles` table.  Profiles are created only
// by provisioning; the unique key on user_id enforces the one-profile-
// per-account invariant.
type CharityRepo struct{ DB *sql.DB }

func NewCharityRepo(db *sql.DB) *CharityRepo { return &CharityRepo{DB: db} }

// CreateTx inserts a charity profile inside the registration transaction.
// Retried provisioning fails with ErrDuplicateCharityProfile rather than
// inserting a second row.
func (r *CharityRepo) CreateTx(ctx context.Context, tx *sql.Tx, p *model.CharityProfile) error {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO charity_profiles (user_id, name, reg_number, description) VALUES (?,?,?,?)",
		p.UserID, p.Name, p.RegNumber, p.Description)
	if err != nil {
		if isDuplicate(err, "uq_charity_profiles_user") {
			return ErrDuplicateCharityProfile
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

func scanProfile(scan func(dest ...any) error) (model.CharityProfile, error) {
	var (
		p   model.CharityProfile
		reg sql.NullString
	)
	err := scan(&p.ID, &p.UserID, &p.Name, &reg, &p.Description, &p.CreatedAt)
	if err != nil {
		return model.CharityProfile{}, err
	}
	if reg.Valid {
		v := reg.String
		p.RegNumber = &v
	}
	return p, nil
}

// GetByUserID fetches the profile owned by the given account.
func (r *CharityRepo) GetByUserID(ctx context.Context, userID uint64) (model.CharityProfile, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT id, user_id, name, reg_number, description, created_at
		   FROM charity_profiles WHERE user_id=? LIMIT 1`, userID)
	return scanProfile(row.Scan)
}

// List returns all registered charity profiles ordered by name.  Backs the
// public charity directory endpoint.
func (r *CharityRepo) List(ctx context.Context) ([]model.CharityProfile, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, user_id, name, reg_number, description, created_at
		   FROM charity_profiles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CharityProfile
	for rows.Next() {
		p, err := scanProfile(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateRegNumber fills in the official registration number once the
// organization supplies it.  Registration numbers are unique across all
// profiles; a collision surfaces as ErrRegNumberExists.  A caller without
// a profile row gets sql.ErrNoRows instead of a silent success.
func (r *CharityRepo) UpdateRegNumber(ctx context.Context, userID uint64, regNumber string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE charity_profiles SET reg_number=? WHERE user_id=?", regNumber, userID)
	if err != nil {
		if isDuplicate(err, "uq_charity_profiles_reg_number") {
			return ErrRegNumberExists
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
