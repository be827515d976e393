package query

import (
	"fmt"
	"strings"
)

// Condition represents a WHERE clause fragment. Implementations generate SQL
// using Spanner's named parameter format (@paramName); paramIndex keeps
// generated names unique across a statement.
type Condition interface {
	SQL(paramIndex int) (string, map[string]interface{})
}

// Eq creates an equality condition: "field = @pN".
func Eq(field string, value interface{}) Condition {
	return &eqCondition{field: field, value: value}
}

type eqCondition struct {
	field string
	value interface{}
}

func (c *eqCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	name := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s = @%s", c.field, name), map[string]interface{}{name: c.value}
}

// In creates a membership condition over an array parameter:
// "field IN UNNEST(@pN)".
func In(field string, values interface{}) Condition {
	return &inCondition{field: field, values: values}
}

type inCondition struct {
	field  string
	values interface{}
}

func (c *inCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	name := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s IN UNNEST(@%s)", c.field, name), map[string]interface{}{name: c.values}
}

// ColEq creates a column-to-column equality: "a = b". No parameters.
func ColEq(field, other string) Condition {
	return &colEqCondition{field: field, other: other}
}

type colEqCondition struct {
	field string
	other string
}

func (c *colEqCondition) SQL(int) (string, map[string]interface{}) {
	return fmt.Sprintf("%s = %s", c.field, c.other), map[string]interface{}{}
}

// Exists creates a correlated subquery restriction:
// "EXISTS (SELECT 1 FROM table WHERE ... AND ...)".
// Inner conditions share the outer statement's parameter numbering.
func Exists(table string, conditions ...Condition) Condition {
	return &existsCondition{table: table, conditions: conditions}
}

type existsCondition struct {
	table      string
	conditions []Condition
}

func (c *existsCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	params := make(map[string]interface{})
	parts := make([]string, 0, len(c.conditions))
	for _, cond := range c.conditions {
		fragment, condParams := cond.SQL(paramIndex)
		parts = append(parts, fragment)
		for k, v := range condParams {
			params[k] = v
		}
		paramIndex += len(condParams)
	}
	sql := fmt.Sprintf("EXISTS (SELECT 1 FROM %s", c.table)
	if len(parts) > 0 {
		sql += " WHERE " + strings.Join(parts, " AND ")
	}
	sql += ")"
	return sql, params
}

// IsNull creates "field IS NULL".
func IsNull(field string) Condition {
	return &isNullCondition{field: field}
}

type isNullCondition struct {
	field string
}

func (c *isNullCondition) SQL(int) (string, map[string]interface{}) {
	return fmt.Sprintf("%s IS NULL", c.field), map[string]interface{}{}
}

// IsNotNull creates "field IS NOT NULL".
func IsNotNull(field string) Condition {
	return &isNotNullCondition{field: field}
}

type isNotNullCondition struct {
	field string
}

func (c *isNotNullCondition) SQL(int) (string, map[string]interface{}) {
	return fmt.Sprintf("%s IS NOT NULL", c.field), map[string]interface{}{}
}
