package domain

import "strings"

const (
	FilterAll       = "all"
	DefaultPageSize = 10
)

// ListQuery is the client-side view state of a list. It is never persisted.
type ListQuery struct {
	SearchTerm string `json:"search"`
	FilterKey  string `json:"filter"`
	SortKey    string `json:"sort"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
}

func DefaultListQuery(pageSize int) ListQuery {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return ListQuery{FilterKey: FilterAll, Page: 1, PageSize: pageSize}
}

// FormState is the field/error record owned by a single form session.
type FormState struct {
	Fields map[string]string `json:"fields"`
	Errors map[string]string `json:"errors,omitempty"`
}

func NewFormState(fields map[string]string) FormState {
	f := FormState{Fields: make(map[string]string, len(fields)), Errors: map[string]string{}}
	for k, v := range fields {
		f.Fields[k] = v
	}
	return f
}

// Get returns the trimmed value of a field, or "" when absent.
func (f FormState) Get(name string) string {
	return strings.TrimSpace(f.Fields[name])
}

// Raw returns the untrimmed value of a field.
func (f FormState) Raw(name string) string {
	return f.Fields[name]
}

func (f *FormState) Set(name, value string) {
	if f.Fields == nil {
		f.Fields = map[string]string{}
	}
	f.Fields[name] = value
	delete(f.Errors, name)
}

func (f FormState) Valid() bool {
	return len(f.Errors) == 0
}
