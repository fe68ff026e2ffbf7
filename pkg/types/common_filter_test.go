package types

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

// sqlBuilder renders expressions with ? placeholders.
type sqlBuilder struct {
	strings.Builder
	vars []any
}

func (b *sqlBuilder) WriteQuoted(field any) {
	switch v := field.(type) {
	case clause.Column:
		b.WriteString(`"` + v.Name + `"`)
	default:
		b.WriteString(fmt.Sprintf(`"%v"`, v))
	}
}

func (b *sqlBuilder) AddVar(_ clause.Writer, vars ...any) {
	for i, v := range vars {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("?")
		b.vars = append(b.vars, v)
	}
}

func (b *sqlBuilder) AddError(error) error { return nil }

var allowed = map[string]bool{"status": true, "object_id": true, "notification_time": true}

func TestCommonFilter_Validate(t *testing.T) {
	require.NoError(t, (&CommonFilter{Field: "status", Operator: CommonFilterOperatorEq, Values: []any{"rejected"}}).Validate(allowed))
	require.NoError(t, (&CommonFilter{Field: "notification_time", Operator: CommonFilterOperatorRange, Values: []any{"a", "b"}}).Validate(allowed))

	require.Error(t, (&CommonFilter{Field: "data->>'x'", Operator: CommonFilterOperatorEq, Values: []any{"1"}}).Validate(allowed))
	require.Error(t, (&CommonFilter{Field: "status", Operator: "like", Values: []any{"x"}}).Validate(allowed))
	require.Error(t, (&CommonFilter{Field: "status", Operator: CommonFilterOperatorEq}).Validate(allowed))
	require.Error(t, (&CommonFilter{Field: "notification_time", Operator: CommonFilterOperatorRange, Values: []any{"a"}}).Validate(allowed))
}

func TestFiltersAnd_Build(t *testing.T) {
	b := &sqlBuilder{}
	FiltersAnd{
		{Field: "object_id", Operator: CommonFilterOperatorEq, Values: []any{"doc-1"}},
		{Field: "status", Operator: CommonFilterOperatorIn, Values: []any{"rejected", "handle_failed"}},
	}.Build(b)

	require.Equal(t, `("object_id" = ? AND "status" IN (?,?))`, b.String())
	require.Equal(t, []any{"doc-1", "rejected", "handle_failed"}, b.vars)
}

func TestFiltersAnd_Empty(t *testing.T) {
	b := &sqlBuilder{}
	FiltersAnd(nil).Build(b)
	require.Equal(t, "1=1", b.String())
}
