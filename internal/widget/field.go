package widget

import "slices"

// FieldType is the declared type of a form field.
type FieldType string

const (
	FieldNumber      FieldType = "number"
	FieldCurrency    FieldType = "currency"
	FieldDecimal     FieldType = "decimal"
	FieldInteger     FieldType = "integer"
	FieldText        FieldType = "text"
	FieldTextarea    FieldType = "textarea"
	FieldEmail       FieldType = "email"
	FieldSelect      FieldType = "select"
	FieldMultiselect FieldType = "multiselect"
	FieldBoolean     FieldType = "boolean"
	FieldDate        FieldType = "date"
	FieldDatetime    FieldType = "datetime"
	FieldCountry     FieldType = "country"
	FieldID          FieldType = "id"
)

// IsNumeric reports whether values of t can be summed.
func (t FieldType) IsNumeric() bool {
	switch t {
	case FieldNumber, FieldCurrency, FieldDecimal, FieldInteger:
		return true
	}
	return false
}

// IsTemporal reports whether t holds dates.
func (t FieldType) IsTemporal() bool {
	return t == FieldDate || t == FieldDatetime
}

// IsTextual reports whether string matching applies to t.
func (t FieldType) IsTextual() bool {
	switch t {
	case FieldText, FieldTextarea, FieldEmail, FieldSelect, FieldMultiselect, FieldCountry, FieldID:
		return true
	}
	return false
}

// System field ids. They exist on every form.
const (
	SystemResponseID     = "$responseId$"
	SystemSubmissionDate = "$submissionDate$"
)

// FieldDescriptor is a form field as reported by the metadata service.
// System descriptors carry their own aggregation list.
type FieldDescriptor struct {
	ID           string          `firestore:"id" json:"id"`
	Label        string          `firestore:"label" json:"label"`
	Type         FieldType       `firestore:"type" json:"type"`
	System       bool            `firestore:"-" json:"system,omitempty"`
	Aggregations []AggregationFn `firestore:"-" json:"aggregations,omitempty"`
}

var systemFields = []FieldDescriptor{
	{
		ID:           SystemResponseID,
		Label:        "Response ID",
		Type:         FieldID,
		System:       true,
		Aggregations: []AggregationFn{AggCount},
	},
	{
		ID:           SystemSubmissionDate,
		Label:        "Submission date",
		Type:         FieldDatetime,
		System:       true,
		Aggregations: []AggregationFn{AggCount, AggMin, AggMax},
	},
}

// SystemFields returns the fixed pseudo-fields.
func SystemFields() []FieldDescriptor {
	out := make([]FieldDescriptor, len(systemFields))
	for i, f := range systemFields {
		f.Aggregations = slices.Clone(f.Aggregations)
		out[i] = f
	}
	return out
}

// SystemFieldByID looks up a system field.
func SystemFieldByID(id string) (FieldDescriptor, bool) {
	for _, f := range SystemFields() {
		if f.ID == id {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

// FieldSource tells a form field from a system field.
type FieldSource string

const (
	SourceForm   FieldSource = "form"
	SourceSystem FieldSource = "system"
)

// FieldRef points at exactly one form field or system field. The zero value
// is "no field selected".
type FieldRef struct {
	Source FieldSource `firestore:"source,omitempty" json:"source,omitempty"`
	ID     string      `firestore:"id,omitempty" json:"id,omitempty"`
}

// FormField references a field of the metric's form.
func FormField(id string) FieldRef { return FieldRef{Source: SourceForm, ID: id} }

// SystemField references a pseudo-field.
func SystemField(id string) FieldRef { return FieldRef{Source: SourceSystem, ID: id} }

// IsSet reports whether a field is selected.
func (r FieldRef) IsSet() bool {
	return r.ID != "" && (r.Source == SourceForm || r.Source == SourceSystem)
}

func (r FieldRef) IsSystem() bool { return r.Source == SourceSystem && r.ID != "" }

// FieldID returns the form field id, or "" for system fields.
func (r FieldRef) FieldID() string {
	if r.Source == SourceForm {
		return r.ID
	}
	return ""
}

// SystemFieldID returns the system field id, or "" for form fields.
func (r FieldRef) SystemFieldID() string {
	if r.Source == SourceSystem {
		return r.ID
	}
	return ""
}

// LegalAggregations returns the aggregations a metric on the given field may
// use under descriptor d. fieldType is ignored for system fields.
func LegalAggregations(d Descriptor, ref FieldRef, fieldType FieldType) []AggregationFn {
	if ref.IsSystem() {
		sf, ok := SystemFieldByID(ref.ID)
		if !ok {
			return nil
		}
		out := make([]AggregationFn, 0, len(sf.Aggregations))
		for _, a := range sf.Aggregations {
			if d.SupportsAggregation(a) {
				out = append(out, a)
			}
		}
		return out
	}
	if fieldType.IsNumeric() {
		return slices.Clone(d.SupportedAggregations)
	}
	if d.SupportsAggregation(AggCount) {
		return []AggregationFn{AggCount}
	}
	return nil
}

// DefaultAggregation is what a metric falls back to when its aggregation
// stops being legal: sum for numeric fields, count otherwise.
func DefaultAggregation(d Descriptor, ref FieldRef, fieldType FieldType) AggregationFn {
	legal := LegalAggregations(d, ref, fieldType)
	want := AggCount
	if !ref.IsSystem() && fieldType.IsNumeric() {
		want = AggSum
	}
	if slices.Contains(legal, want) || len(legal) == 0 {
		return want
	}
	return legal[0]
}
