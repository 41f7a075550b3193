package cart

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type Repository interface {
	// GetCartsPaidToday returns every cart that was paid during the current
	// UTC day and is still in the paid status, items included. The result is
	// a finite snapshot; callers consume it once.
	GetCartsPaidToday(ctx context.Context) ([]Cart, error)
	// Save persists the cart's current status and delivery estimate. Saving
	// the same state twice is a no-op at the database level.
	Save(ctx context.Context, c *Cart) error
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

func (r *repo) GetCartsPaidToday(ctx context.Context) ([]Cart, error) {
	dayStart := time.Now().UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, status, estimated_delivery_day, paid_at, updated_at
         FROM carts
         WHERE status = $1 AND paid_at >= $2 AND paid_at < $3
         ORDER BY paid_at`,
		StatusPaid, dayStart, dayEnd,
	)
	if err != nil {
		return nil, fmt.Errorf("select paid carts: %w", err)
	}
	defer rows.Close()

	var carts []Cart
	for rows.Next() {
		var c Cart
		var day sql.NullInt64
		if err := rows.Scan(&c.ID, &c.UserID, &c.Status, &day, &c.PaidAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cart: %w", err)
		}
		if day.Valid {
			d := int(day.Int64)
			c.EstimatedDeliveryDay = &d
		}
		carts = append(carts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	// Load items per cart; fine for the volumes a daily batch sees
	for i := range carts {
		itemRows, err := r.db.QueryContext(ctx,
			`SELECT product_id, name, quantity, price, category
             FROM cart_items WHERE cart_id = $1`,
			carts[i].ID,
		)
		if err != nil {
			return nil, fmt.Errorf("select cart_items: %w", err)
		}
		for itemRows.Next() {
			var it Item
			if err := itemRows.Scan(&it.ProductID, &it.Name, &it.Quantity, &it.Price, &it.Category); err != nil {
				itemRows.Close()
				return nil, fmt.Errorf("scan cart_item: %w", err)
			}
			carts[i].Items = append(carts[i].Items, it)
		}
		if err := itemRows.Err(); err != nil {
			itemRows.Close()
			return nil, fmt.Errorf("item rows: %w", err)
		}
		itemRows.Close()
	}

	return carts, nil
}

func (r *repo) Save(ctx context.Context, c *Cart) error {
	var day sql.NullInt64
	if c.EstimatedDeliveryDay != nil {
		day = sql.NullInt64{Int64: int64(*c.EstimatedDeliveryDay), Valid: true}
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE carts
         SET status = $2, estimated_delivery_day = $3, updated_at = NOW()
         WHERE id = $1`,
		c.ID, c.Status, day,
	)
	if err != nil {
		return fmt.Errorf("update cart: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("cart %s not found", c.ID)
	}
	return nil
}
