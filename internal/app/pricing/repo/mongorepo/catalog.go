package mongorepo

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/contracts"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
)

// Catalog implements contracts.ProductCatalog on the productos collection.
type Catalog struct {
	coll *mongo.Collection
}

// NewCatalog wraps the products collection of db.
func NewCatalog(db *mongo.Database) *Catalog {
	return &Catalog{coll: db.Collection(ProductsCollection)}
}

var _ contracts.ProductCatalog = (*Catalog)(nil)

// GetByID finds a product by its hex ObjectID.
func (c *Catalog) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc productDoc
	err = c.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, translateError("find product", err)
	}
	return doc.toDomain()
}

// GetByIDs finds the requested products with a single $in query.
func (c *Catalog) GetByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	found := make(map[string]domain.Product, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	oids := make(bson.A, 0, len(ids))
	for _, id := range ids {
		oid, err := objectID(id)
		if err != nil {
			return nil, err
		}
		oids = append(oids, oid)
	}

	cursor, err := c.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, translateError("find products", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc productDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, translateError("decode product", err)
		}
		p, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		found[p.ID] = *p
	}
	if err := cursor.Err(); err != nil {
		return nil, translateError("iterate products", err)
	}
	return found, nil
}

// List returns one page of matching products and the total match count.
func (c *Catalog) List(ctx context.Context, filter contracts.ProductFilter) (*contracts.ProductPage, error) {
	filter = filter.Normalize()

	q := bson.M{}
	if filter.Category != "" {
		q["categoria"] = filter.Category
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		q["$or"] = bson.A{
			bson.M{"nombre": pattern},
			bson.M{"descripcion": pattern},
			bson.M{"marca": pattern},
		}
	}
	if filter.MinPrice != nil || filter.MaxPrice != nil {
		rng := bson.M{}
		if filter.MinPrice != nil {
			v, err := toDecimal128(*filter.MinPrice)
			if err != nil {
				return nil, err
			}
			rng["$gte"] = v
		}
		if filter.MaxPrice != nil {
			v, err := toDecimal128(*filter.MaxPrice)
			if err != nil {
				return nil, err
			}
			rng["$lte"] = v
		}
		q["precioBase"] = rng
	}

	var sort bson.D
	switch filter.SortBy {
	case contracts.SortByPriceAsc:
		sort = bson.D{{Key: "precioBase", Value: 1}}
	case contracts.SortByPriceDesc:
		sort = bson.D{{Key: "precioBase", Value: -1}}
	case contracts.SortByRating:
		sort = bson.D{{Key: "rating", Value: -1}}
	default:
		sort = bson.D{{Key: "nombre", Value: 1}}
	}
	sort = append(sort, bson.E{Key: "_id", Value: 1})

	opts := options.Find().
		SetSort(sort).
		SetSkip(int64(filter.Offset())).
		SetLimit(int64(filter.Limit))

	cursor, err := c.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, translateError("list products", err)
	}
	var docs []productDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, translateError("decode products", err)
	}

	total, err := c.coll.CountDocuments(ctx, q)
	if err != nil {
		return nil, translateError("count products", err)
	}

	products := make([]domain.Product, 0, len(docs))
	for i := range docs {
		p, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return &contracts.ProductPage{Products: products, Total: total}, nil
}

// Insert validates and inserts a product, returning its hex ObjectID.
func (c *Catalog) Insert(ctx context.Context, product *domain.Product) (string, error) {
	if err := product.Validate(); err != nil {
		return "", err
	}

	doc, err := newProductDoc(product)
	if err != nil {
		return "", err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}

	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return "", translateError("insert product", err)
	}
	return doc.ID.Hex(), nil
}
