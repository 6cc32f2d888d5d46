package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/contracts"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
	"github.com/light-bringer/specialprice-service/internal/models/m_product"
	"github.com/light-bringer/specialprice-service/internal/pkg/committer"
	"github.com/light-bringer/specialprice-service/internal/pkg/query"
)

// CatalogRepo implements contracts.ProductCatalog for Spanner.
type CatalogRepo struct {
	client    *spanner.Client
	model     *m_product.Model
	committer *committer.Committer
}

// NewCatalogRepo creates a new CatalogRepo.
func NewCatalogRepo(client *spanner.Client) *CatalogRepo {
	return &CatalogRepo{
		client:    client,
		model:     m_product.NewModel(),
		committer: committer.NewCommitter(client),
	}
}

var _ contracts.ProductCatalog = (*CatalogRepo)(nil)

// GetByID reads a product by primary key.
func (r *CatalogRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	row, err := r.client.Single().ReadRow(ctx, m_product.TableName, spanner.Key{id}, m_product.Columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrProductNotFound
		}
		return nil, translateError("read product", err)
	}

	var data m_product.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}
	return productFromData(&data)
}

// GetByIDs reads every requested primary key with a single Read call.
func (r *CatalogRepo) GetByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	found := make(map[string]domain.Product, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	keys := make([]spanner.Key, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, spanner.Key{id})
	}

	iter := r.client.Single().Read(ctx, m_product.TableName, spanner.KeySetFromKeys(keys...), m_product.Columns)
	defer iter.Stop()

	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, translateError("read products", err)
		}

		var data m_product.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse product: %w", err)
		}
		p, err := productFromData(&data)
		if err != nil {
			return nil, err
		}
		found[p.ID] = *p
	}
	return found, nil
}

// List returns one page of products and the number of matches.
func (r *CatalogRepo) List(ctx context.Context, filter contracts.ProductFilter) (*contracts.ProductPage, error) {
	filter = filter.Normalize()

	b := query.From(m_product.TableName).Select(m_product.Columns...)
	if filter.Category != "" {
		b = b.Where(query.Eq(m_product.Category, filter.Category))
	}
	if filter.Search != "" {
		b = b.Where(query.AnyOf(
			query.ContainsFold(m_product.Name, filter.Search),
			query.ContainsFold(m_product.Description, filter.Search),
			query.ContainsFold(m_product.Brand, filter.Search),
		))
	}
	if filter.MinPrice != nil {
		b = b.Where(query.Gte(m_product.BasePrice, ratFromDecimal(*filter.MinPrice)))
	}
	if filter.MaxPrice != nil {
		b = b.Where(query.Lte(m_product.BasePrice, ratFromDecimal(*filter.MaxPrice)))
	}

	total, err := r.count(ctx, b.Count().Build())
	if err != nil {
		return nil, err
	}

	switch filter.SortBy {
	case contracts.SortByPriceAsc:
		b = b.OrderBy(m_product.BasePrice, query.Asc)
	case contracts.SortByPriceDesc:
		b = b.OrderBy(m_product.BasePrice, query.Desc)
	case contracts.SortByRating:
		b = b.OrderBy(m_product.Rating, query.Desc)
	default:
		b = b.OrderBy(m_product.Name, query.Asc)
	}
	b = b.OrderBy(m_product.ProductID, query.Asc).
		Limit(int64(filter.Limit)).
		Offset(int64(filter.Offset()))

	iter := r.client.Single().Query(ctx, b.Build())
	defer iter.Stop()

	products := make([]domain.Product, 0, filter.Limit)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, translateError("list products", err)
		}

		var data m_product.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse product: %w", err)
		}
		p, err := productFromData(&data)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}

	return &contracts.ProductPage{Products: products, Total: total}, nil
}

func (r *CatalogRepo) count(ctx context.Context, stmt spanner.Statement) (int64, error) {
	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, translateError("count products", err)
	}

	var total int64
	if err := row.Columns(&total); err != nil {
		return 0, fmt.Errorf("failed to parse product count: %w", err)
	}
	return total, nil
}

// Insert validates and inserts a product.
func (r *CatalogRepo) Insert(ctx context.Context, product *domain.Product) (string, error) {
	if err := product.Validate(); err != nil {
		return "", err
	}

	p := *product
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	plan := committer.NewPlan()
	plan.Add(r.model.InsertMut(productToData(&p)))
	if err := r.committer.Apply(ctx, plan); err != nil {
		return "", translateError("insert product", err)
	}
	return p.ID, nil
}

// Ping runs a trivial query to check connectivity.
func Ping(ctx context.Context, client *spanner.Client) error {
	iter := client.Single().Query(ctx, spanner.Statement{SQL: "SELECT 1"})
	defer iter.Stop()

	if _, err := iter.Next(); err != nil {
		return translateError("ping spanner", err)
	}
	return nil
}
