package widget

// Operator is a filter comparison.
type Operator string

const (
	OpEq          Operator = "eq"
	OpNeq         Operator = "neq"
	OpGt          Operator = "gt"
	OpGte         Operator = "gte"
	OpLt          Operator = "lt"
	OpLte         Operator = "lte"
	OpContains    Operator = "contains"
	OpNotContains Operator = "notContains"
	OpStartsWith  Operator = "startsWith"
	OpEndsWith    Operator = "endsWith"
	OpIn          Operator = "in"
	OpNotIn       Operator = "notIn"
	OpIsNull      Operator = "isNull"
	OpIsNotNull   Operator = "isNotNull"
	OpIsTrue      Operator = "isTrue"
	OpIsFalse     Operator = "isFalse"
	OpBefore      Operator = "before"
	OpAfter       Operator = "after"
	OpOn          Operator = "on"
	OpBetween     Operator = "between"
)

// ValueType is the shape of a filter's value.
type ValueType string

const (
	ValueNone      ValueType = "none"
	ValueSingle    ValueType = "single"
	ValueArray     ValueType = "array"
	ValueDate      ValueType = "date"
	ValueDateRange ValueType = "dateRange"
)

// FieldCategory groups field types for operator compatibility.
type FieldCategory string

const (
	CategoryAny     FieldCategory = "any"
	CategoryNumeric FieldCategory = "numeric"
	CategoryText    FieldCategory = "text"
	CategoryBoolean FieldCategory = "boolean"
	CategoryDate    FieldCategory = "date"
)

// OperatorInfo describes one operator.
type OperatorInfo struct {
	Operator  Operator      `json:"operator"`
	ValueType ValueType     `json:"valueType"`
	Category  FieldCategory `json:"category"`
}

var operators = map[Operator]OperatorInfo{
	OpEq:          {OpEq, ValueSingle, CategoryAny},
	OpNeq:         {OpNeq, ValueSingle, CategoryAny},
	OpGt:          {OpGt, ValueSingle, CategoryNumeric},
	OpGte:         {OpGte, ValueSingle, CategoryNumeric},
	OpLt:          {OpLt, ValueSingle, CategoryNumeric},
	OpLte:         {OpLte, ValueSingle, CategoryNumeric},
	OpContains:    {OpContains, ValueSingle, CategoryText},
	OpNotContains: {OpNotContains, ValueSingle, CategoryText},
	OpStartsWith:  {OpStartsWith, ValueSingle, CategoryText},
	OpEndsWith:    {OpEndsWith, ValueSingle, CategoryText},
	OpIn:          {OpIn, ValueArray, CategoryAny},
	OpNotIn:       {OpNotIn, ValueArray, CategoryAny},
	OpIsNull:      {OpIsNull, ValueNone, CategoryAny},
	OpIsNotNull:   {OpIsNotNull, ValueNone, CategoryAny},
	OpIsTrue:      {OpIsTrue, ValueNone, CategoryBoolean},
	OpIsFalse:     {OpIsFalse, ValueNone, CategoryBoolean},
	OpBefore:      {OpBefore, ValueDate, CategoryDate},
	OpAfter:       {OpAfter, ValueDate, CategoryDate},
	OpOn:          {OpOn, ValueDate, CategoryDate},
	OpBetween:     {OpBetween, ValueDateRange, CategoryDate},
}

// OperatorFor looks up an operator.
func OperatorFor(op Operator) (OperatorInfo, bool) {
	info, ok := operators[op]
	return info, ok
}

// Accepts reports whether the operator may be applied to a field of type t.
func (o OperatorInfo) Accepts(t FieldType) bool {
	switch o.Category {
	case CategoryAny:
		return true
	case CategoryNumeric:
		return t.IsNumeric()
	case CategoryText:
		return t.IsTextual()
	case CategoryBoolean:
		return t == FieldBoolean
	case CategoryDate:
		return t.IsTemporal()
	}
	return false
}

// CheckValue returns a message when v does not have the operator's value
// shape, or "".
func (o OperatorInfo) CheckValue(v any) string {
	switch o.ValueType {
	case ValueNone:
		return ""
	case ValueSingle:
		if isBlank(v) {
			return "value is required"
		}
		if _, ok := v.([]any); ok {
			return "value must be a single value"
		}
	case ValueArray:
		arr, ok := asList(v)
		if !ok || len(arr) == 0 {
			return "value must be a non-empty list"
		}
	case ValueDate:
		s, ok := v.(string)
		if !ok || !IsDateValue(s) {
			return "value must be a date"
		}
	case ValueDateRange:
		arr, ok := asList(v)
		if !ok || len(arr) != 2 {
			return "value must be a [from, to] date pair"
		}
		for _, x := range arr {
			s, ok := x.(string)
			if !ok || !IsDateValue(s) {
				return "value must be a [from, to] date pair"
			}
		}
	}
	return ""
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

func asList(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}
