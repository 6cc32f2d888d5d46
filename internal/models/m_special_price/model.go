package m_special_price

import (
	"sort"

	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the special_prices table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a record. A plain insert
// is used so that a second record for the same triple fails on the unique
// index instead of overwriting.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		Columns,
		[]interface{}{
			data.SpecialPriceID,
			data.UserID,
			data.ClientID,
			data.ProductID,
			&data.SpecialPrice,
			&data.DiscountPercent,
			data.ValidFrom,
			data.ValidUntil,
			data.Active,
			data.ProductName,
			data.ProductImage,
			&data.BasePrice,
			data.CreatedBy,
			data.CreatedAt,
			data.UpdatedAt,
		},
	)
}

// UpdateMut creates a Spanner mutation for updating specific fields of a record.
// The updates map holds column names and new values. Columns are emitted in
// sorted order so the mutation is deterministic.
func (m *Model) UpdateMut(specialPriceID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	names := make([]string, 0, len(updates))
	for col := range updates {
		names = append(names, col)
	}
	sort.Strings(names)

	columns := make([]string, 0, len(updates)+1)
	values := make([]interface{}, 0, len(updates)+1)

	columns = append(columns, SpecialPriceID)
	values = append(values, specialPriceID)

	for _, col := range names {
		columns = append(columns, col)
		values = append(values, updates[col])
	}

	return spanner.Update(TableName, columns, values)
}
