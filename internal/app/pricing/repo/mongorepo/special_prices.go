package mongorepo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/contracts"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
)

// SpecialPriceCollection implements contracts.SpecialPriceCollection on a
// MongoDB collection carrying a unique (usuarioId, clienteId, productoId) index.
type SpecialPriceCollection struct {
	coll *mongo.Collection
}

// NewSpecialPriceCollection wraps the named collection of db. An empty name
// selects SpecialPricesCollection.
func NewSpecialPriceCollection(db *mongo.Database, name string) *SpecialPriceCollection {
	if name == "" {
		name = SpecialPricesCollection
	}
	return &SpecialPriceCollection{coll: db.Collection(name)}
}

var _ contracts.SpecialPriceCollection = (*SpecialPriceCollection)(nil)

// filterDoc translates a filter into a query document. The second result is
// false when the filter can match nothing, e.g. a malformed ObjectID.
func filterDoc(f contracts.SpecialPriceFilter) (bson.M, bool) {
	q := bson.M{}

	if f.ID != "" {
		id, err := primitive.ObjectIDFromHex(f.ID)
		if err != nil {
			return nil, false
		}
		q["_id"] = id
	}
	if f.UserID != "" {
		q["usuarioId"] = f.UserID
	}
	if f.ClientID != "" {
		q["clienteId"] = f.ClientID
	}
	if f.ProductID != "" {
		id, err := primitive.ObjectIDFromHex(f.ProductID)
		if err != nil {
			return nil, false
		}
		q["productoId"] = id
	}
	if f.ProductIDs != nil {
		ids := make([]primitive.ObjectID, 0, len(f.ProductIDs))
		for _, hex := range f.ProductIDs {
			if id, err := primitive.ObjectIDFromHex(hex); err == nil {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			return nil, false
		}
		if f.ProductID != "" {
			q["$and"] = bson.A{bson.M{"productoId": bson.M{"$in": ids}}}
		} else {
			q["productoId"] = bson.M{"$in": ids}
		}
	}
	if f.ApplicableAt != nil {
		q["activo"] = true
		q["fechaInicio"] = bson.M{"$lte": *f.ApplicableAt}
		q["fechaFin"] = bson.M{"$gte": *f.ApplicableAt}
	}
	return q, true
}

// Find returns all matching records.
func (c *SpecialPriceCollection) Find(ctx context.Context, filter contracts.SpecialPriceFilter) ([]*domain.SpecialPrice, error) {
	q, ok := filterDoc(filter)
	if !ok {
		return []*domain.SpecialPrice{}, nil
	}

	cursor, err := c.coll.Find(ctx, q)
	if err != nil {
		return nil, translateError("find special prices", err)
	}

	var docs []specialPriceDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, translateError("decode special prices", err)
	}

	records := make([]*domain.SpecialPrice, 0, len(docs))
	for i := range docs {
		sp, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		records = append(records, sp)
	}
	return records, nil
}

// FindOne returns the first matching record, or nil.
func (c *SpecialPriceCollection) FindOne(ctx context.Context, filter contracts.SpecialPriceFilter) (*domain.SpecialPrice, error) {
	q, ok := filterDoc(filter)
	if !ok {
		return nil, nil
	}

	var doc specialPriceDoc
	err := c.coll.FindOne(ctx, q).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, translateError("find special price", err)
	}
	return doc.toDomain()
}

// InsertOne inserts the record and returns the hex ObjectID.
func (c *SpecialPriceCollection) InsertOne(ctx context.Context, sp *domain.SpecialPrice) (string, error) {
	doc, err := newSpecialPriceDoc(sp)
	if err != nil {
		return "", err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}

	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return "", translateError("insert special price", err)
	}
	return doc.ID.Hex(), nil
}

// UpdateOne applies a $set of the update fields and returns the modified count.
func (c *SpecialPriceCollection) UpdateOne(ctx context.Context, filter contracts.SpecialPriceFilter, update contracts.SpecialPriceUpdate) (int64, error) {
	q, ok := filterDoc(filter)
	if !ok {
		return 0, nil
	}

	set := bson.M{}
	if update.SpecialPrice != nil {
		v, err := toDecimal128(update.SpecialPrice.Decimal())
		if err != nil {
			return 0, err
		}
		set["precioEspecial"] = v
	}
	if update.DiscountPercent != nil {
		v, err := toDecimal128(*update.DiscountPercent)
		if err != nil {
			return 0, err
		}
		set["porcentajeDescuento"] = v
	}
	if update.Active != nil {
		set["activo"] = *update.Active
	}
	if len(set) == 0 {
		return 0, nil
	}
	if !update.UpdatedAt.IsZero() {
		set["fechaActualizacion"] = update.UpdatedAt
	}

	res, err := c.coll.UpdateOne(ctx, q, bson.M{"$set": set})
	if err != nil {
		return 0, translateError("update special price", err)
	}
	return res.ModifiedCount, nil
}

// Migrate creates the indexes the collections rely on. It is idempotent.
func Migrate(ctx context.Context, db *mongo.Database, specialPrices string) error {
	if specialPrices == "" {
		specialPrices = SpecialPricesCollection
	}
	_, err := db.Collection(specialPrices).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "usuarioId", Value: 1}, {Key: "clienteId", Value: 1}, {Key: "productoId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(TripleIndexName),
		},
		{
			Keys:    bson.D{{Key: "usuarioId", Value: 1}, {Key: "productoId", Value: 1}},
			Options: options.Index().SetName("idx_usuario_producto"),
		},
		{
			Keys:    bson.D{{Key: "fechaInicio", Value: 1}, {Key: "fechaFin", Value: 1}},
			Options: options.Index().SetName("idx_fechas_vigencia"),
		},
	})
	if err != nil {
		return translateError("create special price indexes", err)
	}

	_, err = db.Collection(ProductsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sku", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_sku_unique"),
		},
		{
			Keys:    bson.D{{Key: "categoria", Value: 1}},
			Options: options.Index().SetName("idx_categoria"),
		},
	})
	if err != nil {
		return translateError("create product indexes", err)
	}
	return nil
}
