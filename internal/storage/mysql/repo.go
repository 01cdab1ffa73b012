// Package mysql is the reporting sink for exported folios.
package mysql

import (
	"context"
	"database/sql"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"front_desk/internal/domain"
)

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertRoom(ctx context.Context, rm domain.Room) error {
	_, err := r.db.ExecContext(ctx, upsertRoomSQL,
		rm.ID,
		rm.Number,
		string(rm.Type),
		string(rm.Status),
		valStr(rm.CurrentGuestID),
		rm.ExtraCharges.StringFixed(2),
	)
	return errors.Wrapf(err, "upsert room %s", rm.ID)
}

func (r *Repo) UpsertPurchases(ctx context.Context, ps []domain.Purchase) error {
	if len(ps) == 0 {
		return nil
	}
	values := make([]string, 0, len(ps))
	args := make([]any, 0, len(ps)*6)
	for _, p := range ps {
		// (id, room_id, product_id, product_name, price, recorded_at)
		values = append(values, "(?,?,?,?,?,?)")
		args = append(args,
			p.ID,
			p.RoomID,
			p.ProductID,
			p.ProductName,
			p.Price.StringFixed(2),
			p.Timestamp.UTC(),
		)
	}
	sqlStr := insertPurchasesPrefix + strings.Join(values, ",") + insertPurchasesOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return errors.Wrap(err, "insert purchases")
}

func (r *Repo) LogMiss(ctx context.Context, roomID string, status int, reason string) error {
	_, err := r.db.ExecContext(ctx, insertMissSQL, roomID, status, reason)
	return err
}

// GetRoomTotal sums the exported ledger for roomID.
func (r *Repo) GetRoomTotal(ctx context.Context, roomID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.QueryRowContext(ctx, roomTotalSQL, roomID).Scan(&total); err != nil {
		return decimal.Zero, errors.Wrapf(err, "room total %s", roomID)
	}
	return total, nil
}
