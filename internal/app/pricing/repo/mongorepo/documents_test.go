package mongorepo

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/contracts"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
)

const productHex = "65f1a2b3c4d5e6f7a8b9c0d1"

func TestSpecialPriceDoc_KeepsDecimalPrecision(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	sp, err := domain.NewSpecialPrice(
		domain.Triple{UserID: "USR001", ClientID: "CLI001", ProductID: productHex},
		domain.MustMoney("950.10"),
		domain.MustMoney("1299.99"),
		domain.ProductSnapshot{Name: "iPhone 15 Pro Max", BasePrice: domain.MustMoney("1299.99")},
		domain.DefaultValidityPolicy,
		"system",
		now,
	)
	require.NoError(t, err)

	doc, err := newSpecialPriceDoc(sp)
	require.NoError(t, err)
	doc.ID = primitive.NewObjectID()

	back, err := doc.toDomain()
	require.NoError(t, err)
	assert.True(t, back.SpecialPrice().Equals(domain.MustMoney("950.1")))
	assert.True(t, back.DiscountPercent().Equal(sp.DiscountPercent()))
	assert.Equal(t, productHex, back.ProductID())
	assert.Equal(t, sp.ValidUntil(), back.ValidUntil())
}

func TestNewSpecialPriceDoc_RejectsMalformedProductID(t *testing.T) {
	sp := domain.ReconstructSpecialPrice("", domain.Triple{UserID: "u", ClientID: "c", ProductID: "P1"},
		domain.MustMoney("1"), decimal.Zero, time.Time{}, time.Time{}, true,
		domain.ProductSnapshot{}, "system", time.Time{}, time.Time{})

	_, err := newSpecialPriceDoc(sp)
	assert.ErrorIs(t, err, domain.ErrInvalidProductID)
}

func TestFilterDoc(t *testing.T) {
	at := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	q, ok := filterDoc(contracts.SpecialPriceFilter{UserID: "USR001", ProductIDs: []string{productHex, "bogus"}, ApplicableAt: &at})
	require.True(t, ok)
	assert.Equal(t, "USR001", q["usuarioId"])
	assert.Equal(t, true, q["activo"])
	assert.Equal(t, bson.M{"$lte": at}, q["fechaInicio"])
	assert.Equal(t, bson.M{"$gte": at}, q["fechaFin"])

	in := q["productoId"].(bson.M)["$in"].([]primitive.ObjectID)
	require.Len(t, in, 1)
	assert.Equal(t, productHex, in[0].Hex())

	_, ok = filterDoc(contracts.SpecialPriceFilter{ProductID: "bogus"})
	assert.False(t, ok)

	_, ok = filterDoc(contracts.SpecialPriceFilter{ProductIDs: []string{"bogus"}})
	assert.False(t, ok)
}
