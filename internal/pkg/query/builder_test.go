package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_SelectAllColumns(t *testing.T) {
	stmt := From("special_prices").Build()

	assert.Equal(t, "SELECT * FROM special_prices", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_MultipleSelectCalls(t *testing.T) {
	stmt := From("special_prices").
		Select("special_price_id", "user_id").
		Select("product_id").
		Build()

	assert.Equal(t, "SELECT special_price_id, user_id, product_id FROM special_prices", stmt.SQL)
}

func TestBuilder_TripleLookup(t *testing.T) {
	stmt := From("special_prices").
		Select("special_price_id").
		Where(Eq("user_id", "U1")).
		Where(Eq("client_id", "C1")).
		Where(Eq("product_id", "P1")).
		Limit(1).
		Build()

	assert.Equal(t, "SELECT special_price_id FROM special_prices WHERE user_id = @p0 AND client_id = @p1 AND product_id = @p2 LIMIT @limit", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0":    "U1",
		"p1":    "C1",
		"p2":    "P1",
		"limit": int64(1),
	}, stmt.Params)
}

func TestBuilder_ApplicableLookup(t *testing.T) {
	stmt := From("special_prices").
		Select("special_price_id").
		Where(Eq("user_id", "U1")).
		Where(In("product_id", []string{"P1", "P2"})).
		Where(Eq("active", true)).
		Where(Lte("valid_from", "t")).
		Where(Gte("valid_until", "t")).
		Build()

	assert.Equal(t, "SELECT special_price_id FROM special_prices WHERE user_id = @p0 AND product_id IN UNNEST(@p1) AND active = @p2 AND valid_from <= @p3 AND valid_until >= @p4", stmt.SQL)
	assert.Equal(t, []string{"P1", "P2"}, stmt.Params["p1"])
	assert.Equal(t, true, stmt.Params["p2"])
	assert.Len(t, stmt.Params, 5)
}

func TestBuilder_OrderByTerms(t *testing.T) {
	stmt := From("products").
		Select("product_id").
		OrderBy("base_price", Desc).
		OrderBy("product_id", Asc).
		Build()

	assert.Equal(t, "SELECT product_id FROM products ORDER BY base_price DESC, product_id ASC", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_LimitAndOffset(t *testing.T) {
	stmt := From("products").
		Select("product_id", "name").
		Limit(10).
		Offset(20).
		Build()

	assert.Equal(t, "SELECT product_id, name FROM products LIMIT @limit OFFSET @offset", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"limit":  int64(10),
		"offset": int64(20),
	}, stmt.Params)
}

func TestBuilder_CatalogPage(t *testing.T) {
	builder := From("products").
		Select("product_id", "name").
		Where(Eq("category", "Laptops")).
		Where(AnyOf(ContainsFold("name", "Pro"), ContainsFold("brand", "Pro"))).
		Where(Gte("base_price", 100)).
		OrderBy("name", Asc).
		Limit(50).
		Offset(50)

	stmt := builder.Build()
	assert.Equal(t, "SELECT product_id, name FROM products WHERE category = @p0 AND (LOWER(name) LIKE @p1 OR LOWER(brand) LIKE @p2) AND base_price >= @p3 ORDER BY name ASC LIMIT @limit OFFSET @offset", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0":     "Laptops",
		"p1":     "%pro%",
		"p2":     "%pro%",
		"p3":     100,
		"limit":  int64(50),
		"offset": int64(50),
	}, stmt.Params)

	countStmt := builder.Count().Build()
	assert.Equal(t, "SELECT COUNT(*) FROM products WHERE category = @p0 AND (LOWER(name) LIKE @p1 OR LOWER(brand) LIKE @p2) AND base_price >= @p3", countStmt.SQL)
	assert.Len(t, countStmt.Params, 4)

	// Count leaves the receiver untouched
	assert.Equal(t, stmt.SQL, builder.Build().SQL)
}

func TestBuilder_CountWithoutFilters(t *testing.T) {
	stmt := From("special_prices").
		Select("special_price_id").
		Count().
		Build()

	assert.Equal(t, "SELECT COUNT(*) FROM special_prices", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_Immutability(t *testing.T) {
	base := From("special_prices").Select("special_price_id")

	stmt1 := base.Where(Eq("user_id", "U1")).Build()
	stmt2 := base.Where(Eq("client_id", "C1")).Build()

	assert.Contains(t, stmt1.SQL, "user_id = @p0")
	assert.NotContains(t, stmt1.SQL, "client_id")

	assert.Contains(t, stmt2.SQL, "client_id = @p0")
	assert.NotContains(t, stmt2.SQL, "user_id")
}

func TestCondition_EqWithDifferentParamIndex(t *testing.T) {
	sql, params := Eq("user_id", "U1").SQL(5)

	assert.Equal(t, "user_id = @p5", sql)
	assert.Equal(t, map[string]interface{}{"p5": "U1"}, params)
}

func TestCondition_ContainsFoldEscapesWildcards(t *testing.T) {
	sql, params := ContainsFold("name", "50%_OFF").SQL(0)

	assert.Equal(t, "LOWER(name) LIKE @p0", sql)
	assert.Equal(t, `%50\%\_off%`, params["p0"])
}

func TestCondition_AnyOfNumbersSequentially(t *testing.T) {
	sql, params := AnyOf(Eq("a", 1), Lte("b", 2), Gte("c", 3)).SQL(2)

	assert.Equal(t, "(a = @p2 OR b <= @p3 OR c >= @p4)", sql)
	assert.Len(t, params, 3)
}

func TestBuilder_String(t *testing.T) {
	str := From("special_prices").Where(Eq("user_id", "U1")).String()

	require.NotEmpty(t, str)
	assert.Contains(t, str, "SQL:")
	assert.Contains(t, str, "Params:")
	assert.Contains(t, str, "special_prices")
}
