package pgrepo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/contracts"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
)

// SpecialPriceRepo implements contracts.SpecialPriceCollection on the
// special_prices table.
type SpecialPriceRepo struct {
	db *gorm.DB
}

// NewSpecialPriceRepo creates a SpecialPriceRepo.
func NewSpecialPriceRepo(db *gorm.DB) *SpecialPriceRepo {
	return &SpecialPriceRepo{db: db}
}

var _ contracts.SpecialPriceCollection = (*SpecialPriceRepo)(nil)

func scoped(tx *gorm.DB, f contracts.SpecialPriceFilter) *gorm.DB {
	if f.ID != "" {
		tx = tx.Where("id = ?", f.ID)
	}
	if f.UserID != "" {
		tx = tx.Where("user_id = ?", f.UserID)
	}
	if f.ClientID != "" {
		tx = tx.Where("client_id = ?", f.ClientID)
	}
	if f.ProductID != "" {
		tx = tx.Where("product_id = ?", f.ProductID)
	}
	if f.ProductIDs != nil {
		tx = tx.Where("product_id IN ?", f.ProductIDs)
	}
	if f.ApplicableAt != nil {
		tx = tx.Where("active = ? AND valid_from <= ? AND valid_until >= ?", true, *f.ApplicableAt, *f.ApplicableAt)
	}
	return tx
}

// skip reports whether the filter can match nothing without asking the
// database. Malformed ids would otherwise fail the uuid cast.
func skip(f contracts.SpecialPriceFilter) bool {
	if f.ProductIDs != nil && len(f.ProductIDs) == 0 {
		return true
	}
	if f.ID != "" {
		if _, err := uuid.Parse(f.ID); err != nil {
			return true
		}
	}
	return false
}

// Find returns every record matching the filter.
func (r *SpecialPriceRepo) Find(ctx context.Context, filter contracts.SpecialPriceFilter) ([]*domain.SpecialPrice, error) {
	if skip(filter) {
		return []*domain.SpecialPrice{}, nil
	}

	var rows []specialPriceRow
	if err := scoped(r.db.WithContext(ctx), filter).Find(&rows).Error; err != nil {
		return nil, translateError("find special prices", err)
	}

	records := make([]*domain.SpecialPrice, 0, len(rows))
	for i := range rows {
		records = append(records, rows[i].toDomain())
	}
	return records, nil
}

// FindOne returns the first matching record, or nil.
func (r *SpecialPriceRepo) FindOne(ctx context.Context, filter contracts.SpecialPriceFilter) (*domain.SpecialPrice, error) {
	if skip(filter) {
		return nil, nil
	}

	var rows []specialPriceRow
	if err := scoped(r.db.WithContext(ctx), filter).Limit(1).Find(&rows).Error; err != nil {
		return nil, translateError("find special price", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toDomain(), nil
}

// InsertOne inserts the record, generating a uuid when it has none.
func (r *SpecialPriceRepo) InsertOne(ctx context.Context, sp *domain.SpecialPrice) (string, error) {
	id := sp.ID()
	if id == "" {
		id = uuid.New().String()
	}

	if err := r.db.WithContext(ctx).Create(newSpecialPriceRow(id, sp)).Error; err != nil {
		return "", translateError("insert special price", err)
	}
	return id, nil
}

// UpdateOne updates the first matching record and returns the affected row count.
func (r *SpecialPriceRepo) UpdateOne(ctx context.Context, filter contracts.SpecialPriceFilter, update contracts.SpecialPriceUpdate) (int64, error) {
	if update.IsEmpty() || skip(filter) {
		return 0, nil
	}

	columns := map[string]any{}
	if update.SpecialPrice != nil {
		columns["special_price"] = update.SpecialPrice.Decimal()
	}
	if update.DiscountPercent != nil {
		columns["discount_percent"] = *update.DiscountPercent
	}
	if update.Active != nil {
		columns["active"] = *update.Active
	}
	if !update.UpdatedAt.IsZero() {
		columns["updated_at"] = update.UpdatedAt
	}

	first := scoped(r.db.WithContext(ctx).Model(&specialPriceRow{}), filter).Select("id").Limit(1)
	res := r.db.WithContext(ctx).
		Model(&specialPriceRow{}).
		Where("id IN (?)", first).
		UpdateColumns(columns)
	if res.Error != nil {
		return 0, translateError("update special price", res.Error)
	}
	return res.RowsAffected, nil
}
