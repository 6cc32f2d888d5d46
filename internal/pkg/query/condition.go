package query

import (
	"fmt"
	"strings"
)

// Condition represents a WHERE clause condition.
// Implementations generate SQL fragments and parameter maps using Spanner's
// named parameter format (@p0, @p1, ...). Each condition names its parameters
// starting at paramIndex and must return exactly the parameters it used.
type Condition interface {
	SQL(paramIndex int) (string, map[string]interface{})
}

func paramName(index int) string {
	return fmt.Sprintf("p%d", index)
}

// comparison implements field <op> value.
type comparison struct {
	field string
	op    string
	value interface{}
}

func (c *comparison) SQL(paramIndex int) (string, map[string]interface{}) {
	name := paramName(paramIndex)
	return fmt.Sprintf("%s %s @%s", c.field, c.op, name), map[string]interface{}{name: c.value}
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("user_id", "U1") generates "user_id = @p0"
func Eq(field string, value interface{}) Condition {
	return &comparison{field: field, op: "=", value: value}
}

// Lte creates a "field <= @pN" condition.
func Lte(field string, value interface{}) Condition {
	return &comparison{field: field, op: "<=", value: value}
}

// Gte creates a "field >= @pN" condition.
func Gte(field string, value interface{}) Condition {
	return &comparison{field: field, op: ">=", value: value}
}

// inCondition matches a field against an array parameter.
type inCondition struct {
	field  string
	values []string
}

// In creates a set membership condition bound as a single array parameter.
// Example: In("product_id", ids) generates "product_id IN UNNEST(@p0)"
func In(field string, values []string) Condition {
	return &inCondition{field: field, values: values}
}

func (c *inCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	name := paramName(paramIndex)
	return fmt.Sprintf("%s IN UNNEST(@%s)", c.field, name), map[string]interface{}{name: c.values}
}

// containsFoldCondition is a case-insensitive substring match.
type containsFoldCondition struct {
	field string
	value string
}

// ContainsFold creates a case-insensitive substring match.
// Example: ContainsFold("name", "Mac") generates "LOWER(name) LIKE @p0" bound to "%mac%"
func ContainsFold(field, value string) Condition {
	return &containsFoldCondition{field: field, value: value}
}

func (c *containsFoldCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	name := paramName(paramIndex)
	pattern := "%" + escapeLike(strings.ToLower(c.value)) + "%"
	return fmt.Sprintf("LOWER(%s) LIKE @%s", c.field, name), map[string]interface{}{name: pattern}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// anyOfCondition joins conditions with OR inside parentheses.
type anyOfCondition struct {
	conditions []Condition
}

// AnyOf creates a parenthesized OR group.
// Example: AnyOf(Eq("a", 1), Eq("b", 2)) generates "(a = @p0 OR b = @p1)"
func AnyOf(conditions ...Condition) Condition {
	return &anyOfCondition{conditions: conditions}
}

func (c *anyOfCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	parts := make([]string, 0, len(c.conditions))
	params := make(map[string]interface{})
	for _, cond := range c.conditions {
		fragment, condParams := cond.SQL(paramIndex)
		parts = append(parts, fragment)
		for k, v := range condParams {
			params[k] = v
		}
		paramIndex += len(condParams)
	}
	return "(" + strings.Join(parts, " OR ") + ")", params
}
