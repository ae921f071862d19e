package repository

import (
	"context"
	"errors"
	"fmt"

	constant "github.com/SeakMengs/RenovaSite/internal/constant"
	"github.com/SeakMengs/RenovaSite/pkg/portfolio"
	"gorm.io/gorm"
)

type OrderRepository struct {
	*baseRepository
}

// ApplyOrder writes the order_index of every position with its own UPDATE. There is no
// transaction: each row is attempted, and the failures are returned joined together, so a
// partial failure leaves the rows that succeeded updated.
func (o OrderRepository) ApplyOrder(ctx context.Context, tx *gorm.DB, mdl any, positions []portfolio.Position) error {
	o.logger.Debugf("Apply order to %d rows of %T \n", len(positions), mdl)

	db := o.getDB(tx)

	var errs []error
	for _, p := range positions {
		if err := o.updateOrderIndex(ctx, db, mdl, p); err != nil {
			errs = append(errs, fmt.Errorf("update order of %s: %w", p.ID, err))
		}
	}

	return errors.Join(errs...)
}

func (o OrderRepository) updateOrderIndex(ctx context.Context, db *gorm.DB, mdl any, p portfolio.Position) error {
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	res := db.WithContext(ctx).Model(mdl).Where("id = ?", p.ID).Update("order_index", p.OrderIndex)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// changedPositions keeps the positions of after whose index differs from before.
func changedPositions(before, after []portfolio.Position) []portfolio.Position {
	prev := make(map[string]int, len(before))
	for _, p := range before {
		prev[p.ID] = p.OrderIndex
	}

	out := make([]portfolio.Position, 0, len(after))
	for _, p := range after {
		if idx, ok := prev[p.ID]; ok && idx == p.OrderIndex {
			continue
		}
		out = append(out, p)
	}
	return out
}
