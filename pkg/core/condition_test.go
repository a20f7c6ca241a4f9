package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestConditionContextFind(t *testing.T) {
	cc := &ConditionContext{}
	assert.True(t, cc.IsEmpty())

	cc.Add(&Condition{
		Column:   Column{Table: "orders", Name: "user_id"},
		Operator: OpEqual,
		Values:   []ConditionValue{{Param: intPtr(0)}},
	})

	got, ok := cc.Find("ORDERS", "User_Id")
	require.True(t, ok)
	assert.Equal(t, OpEqual, got.Operator)

	_, ok = cc.Find("orders", "status")
	assert.False(t, ok)
	assert.False(t, cc.IsEmpty())
}

func TestConditionValueResolve(t *testing.T) {
	params := []any{int64(10), "x"}

	tests := []struct {
		name   string
		value  ConditionValue
		want   any
		wantOK bool
	}{
		{"literal", ConditionValue{Literal: strPtr("42")}, "42", true},
		{"first param", ConditionValue{Param: intPtr(0)}, int64(10), true},
		{"second param", ConditionValue{Param: intPtr(1)}, "x", true},
		{"unbound param", ConditionValue{Param: intPtr(2)}, nil, false},
		{"empty", ConditionValue{}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.value.Resolve(params)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeverityTextRoundTrip(t *testing.T) {
	for _, s := range []Severity{SeverityError, SeverityWarning, SeverityInfo, SeverityHint} {
		text, err := s.MarshalText()
		require.NoError(t, err)

		var back Severity
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, s, back)
	}

	var s Severity
	assert.Error(t, s.UnmarshalText([]byte("fatal")))
}
