package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storeroomlabs/storeroom/internal/domain"
	"github.com/storeroomlabs/storeroom/internal/repository"
)

// InventoryRepository implements repository.Inventory for PostgreSQL
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) repository.Inventory {
	return &InventoryRepository{db: db}
}

// GetLocation retrieves a single inventory location
func (r *InventoryRepository) GetLocation(ctx context.Context, locationID string) (*domain.InventoryLocation, error) {
	query := `
		SELECT location_id, location_name, created_at
		FROM locations
		WHERE location_id = $1
	`

	var loc domain.InventoryLocation
	err := r.db.QueryRow(ctx, query, locationID).Scan(
		&loc.ID,
		&loc.Name,
		&loc.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrLocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	return &loc, nil
}

// GetTagsByLocation retrieves all tags for a location
func (r *InventoryRepository) GetTagsByLocation(ctx context.Context, locationID string) ([]domain.Tag, error) {
	query := `
		SELECT tag_id, location_id, tag_name
		FROM tags
		WHERE location_id = $1
		ORDER BY tag_name
	`

	rows, err := r.db.Query(ctx, query, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.LocationID, &tag.Name); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgRowIteration, err)
	}

	return tags, nil
}

// GetItemsByLocation retrieves all live items at a location with current stock
func (r *InventoryRepository) GetItemsByLocation(ctx context.Context, locationID string) ([]domain.Item, error) {
	query := `
		SELECT item_id, location_id, COALESCE(tag_id, ''), item_name, quantity, note
		FROM items
		WHERE location_id = $1 AND deleted_at IS NULL
		ORDER BY item_name, item_id
	`

	rows, err := r.db.Query(ctx, query, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var item domain.Item
		err := rows.Scan(
			&item.ID,
			&item.LocationID,
			&item.TagID,
			&item.Name,
			&item.Quantity,
			&item.Note,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgRowIteration, err)
	}

	return items, nil
}

// GetItemByID retrieves a single live item
func (r *InventoryRepository) GetItemByID(ctx context.Context, itemID string) (*domain.Item, error) {
	query := `
		SELECT item_id, location_id, COALESCE(tag_id, ''), item_name, quantity, note
		FROM items
		WHERE item_id = $1 AND deleted_at IS NULL
	`

	var item domain.Item
	err := r.db.QueryRow(ctx, query, itemID).Scan(
		&item.ID,
		&item.LocationID,
		&item.TagID,
		&item.Name,
		&item.Quantity,
		&item.Note,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return &item, nil
}

// GetUserByID retrieves a user by ID
func (r *InventoryRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT user_id, username, account_type
		FROM users
		WHERE user_id = $1
	`

	var user domain.User
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.Username,
		&user.AccountType,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
