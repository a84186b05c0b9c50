package repository

import (
	"context"
	"database/sql"

	"github.com/kindlot/charity-auction/internal/model"
)

// LotRepo owns the `lots` table.  Visibility is not decided here: GetByID
// returns any existing row and handlers apply the policy package, so that
// a policy denial and a missing row can be collapsed into one 404.
type LotRepo struct{ DB *sql.DB }

func NewLotRepo(db *sql.DB) *LotRepo { return &LotRepo{DB: db} }

const lotColumns = `id, owner_id, title, description, status, starting_price_cents, created_at, updated_at`

func scanLot(scan func(dest ...any) error) (model.Lot, error) {
	var (
		l      model.Lot
		status string
	)
	err := scan(&l.ID, &l.OwnerID, &l.Title, &l.Description, &status,
		&l.StartingPriceCents, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return model.Lot{}, err
	}
	l.Status = model.LotStatus(status)
	return l, nil
}

// Create inserts a new lot in PENDING state and populates lot.ID.
func (r *LotRepo) Create(ctx context.Context, lot *model.Lot) error {
	lot.Status = model.LotPending
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO lots (owner_id, title, description, status, starting_price_cents) VALUES (?,?,?,?,?)",
		lot.OwnerID, lot.Title, lot.Description, string(lot.Status), lot.StartingPriceCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	lot.ID = uint64(id)
	return nil
}

// GetByID fetches a lot regardless of status or ownership.  Absent rows map
// to ErrLotNotFound.
func (r *LotRepo) GetByID(ctx context.Context, id uint64) (model.Lot, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+lotColumns+" FROM lots WHERE id=? LIMIT 1", id)
	lot, err := scanLot(row.Scan)
	if err == sql.ErrNoRows {
		return model.Lot{}, ErrLotNotFound
	}
	return lot, err
}

// ListByStatus returns lots in the given status, newest first.
func (r *LotRepo) ListByStatus(ctx context.Context, status model.LotStatus) ([]model.Lot, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+lotColumns+" FROM lots WHERE status=? ORDER BY id DESC", string(status))
	if err != nil {
		return nil, err
	}
	return collectLots(rows)
}

// ListByOwner returns all of a donor's lots regardless of status.
func (r *LotRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Lot, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+lotColumns+" FROM lots WHERE owner_id=? ORDER BY id DESC", ownerID)
	if err != nil {
		return nil, err
	}
	return collectLots(rows)
}

func collectLots(rows *sql.Rows) ([]model.Lot, error) {
	defer rows.Close()
	var out []model.Lot
	for rows.Next() {
		lot, err := scanLot(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, lot)
	}
	return out, rows.Err()
}

// Update rewrites the editable fields of a lot.  Editing resets the lot to
// PENDING so changed listings go back through moderation.
func (r *LotRepo) Update(ctx context.Context, lot *model.Lot) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE lots SET title=?, description=?, starting_price_cents=?, status=? WHERE id=?",
		lot.Title, lot.Description, lot.StartingPriceCents, string(model.LotPending), lot.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Matched rows, not changed rows: the pool connects with
		// clientFoundRows, so resubmitting identical values still counts.
		return ErrLotNotFound
	}
	lot.Status = model.LotPending
	return nil
}

// SetStatus records a moderation decision.  Only PENDING lots can be
// decided; deciding an already-decided lot reports ErrConflict so retries
// are visible to the moderator.
func (r *LotRepo) SetStatus(ctx context.Context, id uint64, status model.LotStatus) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE lots SET status=? WHERE id=? AND status=?",
		string(status), id, string(model.LotPending))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish absent from already-decided for the moderator only;
		// this path is never reachable by unprivileged users.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrConflict
	}
	return nil
}

// Delete removes a lot by id and owner.  Zero rows affected means the lot
// does not exist or belongs to someone else; both map to ErrLotNotFound.
func (r *LotRepo) Delete(ctx context.Context, id, ownerID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM lots WHERE id=? AND owner_id=?", id, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLotNotFound
	}
	return nil
}
