package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/contracts"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
	"github.com/light-bringer/specialprice-service/internal/models/m_special_price"
	"github.com/light-bringer/specialprice-service/internal/pkg/committer"
	"github.com/light-bringer/specialprice-service/internal/pkg/query"
)

// SpecialPriceRepo implements contracts.SpecialPriceCollection for Spanner.
// Uniqueness of the triple is enforced by the idx_special_prices_triple
// unique index.
type SpecialPriceRepo struct {
	client    *spanner.Client
	model     *m_special_price.Model
	committer *committer.Committer
}

// NewSpecialPriceRepo creates a new SpecialPriceRepo.
func NewSpecialPriceRepo(client *spanner.Client) *SpecialPriceRepo {
	return &SpecialPriceRepo{
		client:    client,
		model:     m_special_price.NewModel(),
		committer: committer.NewCommitter(client),
	}
}

var _ contracts.SpecialPriceCollection = (*SpecialPriceRepo)(nil)

// filterQuery translates a filter into a SELECT over all columns.
func filterQuery(f contracts.SpecialPriceFilter) *query.Builder {
	b := query.From(m_special_price.TableName).Select(m_special_price.Columns...)

	if f.ID != "" {
		b = b.Where(query.Eq(m_special_price.SpecialPriceID, f.ID))
	}
	if f.UserID != "" {
		b = b.Where(query.Eq(m_special_price.UserID, f.UserID))
	}
	if f.ClientID != "" {
		b = b.Where(query.Eq(m_special_price.ClientID, f.ClientID))
	}
	if f.ProductID != "" {
		b = b.Where(query.Eq(m_special_price.ProductID, f.ProductID))
	}
	if f.ProductIDs != nil {
		b = b.Where(query.In(m_special_price.ProductID, f.ProductIDs))
	}
	if f.ApplicableAt != nil {
		b = b.Where(query.Eq(m_special_price.Active, true)).
			Where(query.Lte(m_special_price.ValidFrom, *f.ApplicableAt)).
			Where(query.Gte(m_special_price.ValidUntil, *f.ApplicableAt))
	}
	return b
}

// Find returns every record matching the filter.
func (r *SpecialPriceRepo) Find(ctx context.Context, filter contracts.SpecialPriceFilter) ([]*domain.SpecialPrice, error) {
	if filter.ProductIDs != nil && len(filter.ProductIDs) == 0 {
		return []*domain.SpecialPrice{}, nil
	}

	iter := r.client.Single().Query(ctx, filterQuery(filter).Build())
	return collect(iter)
}

// FindOne returns the first matching record, or nil.
func (r *SpecialPriceRepo) FindOne(ctx context.Context, filter contracts.SpecialPriceFilter) (*domain.SpecialPrice, error) {
	if filter.ProductIDs != nil && len(filter.ProductIDs) == 0 {
		return nil, nil
	}

	iter := r.client.Single().Query(ctx, filterQuery(filter).Limit(1).Build())
	records, err := collect(iter)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// InsertOne inserts the record, generating an id when it has none.
func (r *SpecialPriceRepo) InsertOne(ctx context.Context, sp *domain.SpecialPrice) (string, error) {
	id := sp.ID()
	if id == "" {
		id = uuid.New().String()
	}

	plan := committer.NewPlan()
	plan.Add(r.model.InsertMut(specialPriceToData(id, sp)))

	if err := r.committer.Apply(ctx, plan); err != nil {
		return "", translateError("insert special price", err)
	}
	return id, nil
}

// UpdateOne locates the first matching record and updates it in the same
// read-write transaction.
func (r *SpecialPriceRepo) UpdateOne(ctx context.Context, filter contracts.SpecialPriceFilter, update contracts.SpecialPriceUpdate) (int64, error) {
	updates := updateColumns(update)
	if len(updates) == 0 {
		return 0, nil
	}

	var modified int64
	err := r.committer.ApplyWithReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) (*committer.CommitPlan, error) {
		modified = 0

		stmt := filterQuery(filter).Limit(1).Build()
		records, err := collect(txn.Query(ctx, stmt))
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			return nil, nil
		}

		plan := committer.NewPlan()
		plan.Add(r.model.UpdateMut(records[0].ID(), updates))
		modified = 1
		return plan, nil
	})
	if err != nil {
		return 0, translateError("update special price", err)
	}
	return modified, nil
}

func updateColumns(update contracts.SpecialPriceUpdate) map[string]interface{} {
	updates := make(map[string]interface{})
	if update.SpecialPrice != nil {
		updates[m_special_price.SpecialPrice] = ratFromDecimal(update.SpecialPrice.Decimal())
	}
	if update.DiscountPercent != nil {
		updates[m_special_price.DiscountPercent] = ratFromDecimal(*update.DiscountPercent)
	}
	if update.Active != nil {
		updates[m_special_price.Active] = *update.Active
	}
	if len(updates) > 0 && !update.UpdatedAt.IsZero() {
		updates[m_special_price.UpdatedAt] = update.UpdatedAt
	}
	return updates
}

func collect(iter *spanner.RowIterator) ([]*domain.SpecialPrice, error) {
	defer iter.Stop()

	records := make([]*domain.SpecialPrice, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, translateError("query special prices", err)
		}

		var data m_special_price.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse special price: %w", err)
		}

		sp, err := specialPriceFromData(&data)
		if err != nil {
			return nil, err
		}
		records = append(records, sp)
	}
	return records, nil
}
