package widget

// AvailableFields is the set of fields usable for grouping and filtering.
type AvailableFields struct {
	Fields           []FieldDescriptor `json:"fields"`
	AllowCategorical bool              `json:"allowCategorical"`
	AllowTime        bool              `json:"allowTime"`
}

type fieldKey struct {
	id    string
	typ   FieldType
	label string
}

// ResolveFields computes the usable fields for the given forms.
//
// A single form contributes all of its fields. With several forms only the
// fields that appear with the same id, type and label in every form survive,
// and categorical grouping is disabled when nothing survives. System fields
// are always present once at least one form is referenced, so time grouping
// stays available.
func ResolveFields(formIDs []string, fieldsByForm map[string][]FieldDescriptor) AvailableFields {
	ids := distinct(formIDs)
	if len(ids) == 0 {
		return AvailableFields{Fields: []FieldDescriptor{}}
	}

	if len(ids) == 1 {
		own := fieldsByForm[ids[0]]
		fields := make([]FieldDescriptor, 0, len(own)+len(systemFields))
		fields = append(fields, own...)
		fields = append(fields, SystemFields()...)
		return AvailableFields{Fields: fields, AllowCategorical: true, AllowTime: true}
	}

	counts := make(map[fieldKey]int)
	for _, id := range ids {
		seen := make(map[fieldKey]bool)
		for _, f := range fieldsByForm[id] {
			k := fieldKey{id: f.ID, typ: f.Type, label: f.Label}
			if seen[k] {
				continue
			}
			seen[k] = true
			counts[k]++
		}
	}

	// keep the first form's order
	shared := make([]FieldDescriptor, 0)
	emitted := make(map[fieldKey]bool)
	for _, f := range fieldsByForm[ids[0]] {
		k := fieldKey{id: f.ID, typ: f.Type, label: f.Label}
		if counts[k] == len(ids) && !emitted[k] {
			emitted[k] = true
			shared = append(shared, f)
		}
	}

	fields := append(shared, SystemFields()...)
	return AvailableFields{
		Fields:           fields,
		AllowCategorical: len(shared) > 0,
		AllowTime:        true,
	}
}

// Find returns the descriptor with the given reference, if available.
func (a AvailableFields) Find(ref FieldRef) (FieldDescriptor, bool) {
	if !ref.IsSet() {
		return FieldDescriptor{}, false
	}
	for _, f := range a.Fields {
		if f.ID == ref.ID && f.System == ref.IsSystem() {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

// FormIDs returns the distinct non-empty form ids referenced by metrics, in
// first-seen order.
func FormIDs(metrics []Metric) []string {
	ids := make([]string, 0, len(metrics))
	for _, m := range metrics {
		ids = append(ids, m.FormID)
	}
	return distinct(ids)
}

// MapFormIDs is FormIDs for the map sub-configuration.
func MapFormIDs(opts *MapOptions) []string {
	if opts == nil {
		return nil
	}
	ids := make([]string, 0, len(opts.Metrics))
	for _, m := range opts.Metrics {
		ids = append(ids, m.FormID)
	}
	return distinct(ids)
}

func distinct(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
