// Package content provides read-only access to the content service.
// Queries are composed from typed descriptors instead of ad hoc strings so
// the mapping from content type to its minimal field set stays explicit
// and testable apart from the fetch mechanism.
package content

import (
	"fmt"
	"sort"
	"strings"
)

// Query describes a structured read against the content service: a
// document type, equality predicates, and a projection of the minimal
// fields the caller needs.
type Query struct {
	docType    string
	predicates []predicate
	fields     []string
	params     map[string]string
	first      bool
}

type predicate struct {
	field string
	param string // named parameter reference
	value string // literal, used when param is empty
}

// NewQuery starts a query for the given document type.
func NewQuery(docType string) *Query {
	return &Query{docType: docType, params: map[string]string{}}
}

// WhereParam adds an equality predicate against a named parameter.
func (q *Query) WhereParam(field, name, value string) *Query {
	q.predicates = append(q.predicates, predicate{field: field, param: name})
	q.params[name] = value
	return q
}

// WhereTrue adds an equality predicate against the literal true.
func (q *Query) WhereTrue(field string) *Query {
	q.predicates = append(q.predicates, predicate{field: field, value: "true"})
	return q
}

// Select sets the projected fields.
func (q *Query) Select(fields ...string) *Query {
	q.fields = fields
	return q
}

// First limits the query to a single document.
func (q *Query) First() *Query {
	q.first = true
	return q
}

// DocType returns the document type the query targets.
func (q *Query) DocType() string {
	return q.docType
}

// Params returns the named parameter values.
func (q *Query) Params() map[string]string {
	return q.params
}

// String renders the query in the content service's filter syntax.
func (q *Query) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, `*[_type == %q`, q.docType)
	for _, p := range q.predicates {
		if p.param != "" {
			fmt.Fprintf(&b, " && %s == $%s", p.field, p.param)
		} else {
			fmt.Fprintf(&b, " && %s == %s", p.field, p.value)
		}
	}
	b.WriteString("]")
	if q.first {
		b.WriteString("[0]")
	}
	if len(q.fields) > 0 {
		b.WriteString("{ ")
		b.WriteString(strings.Join(q.fields, ", "))
		b.WriteString(" }")
	}
	return b.String()
}

// sortedParamNames returns parameter names in lexical order for stable
// request encoding.
func (q *Query) sortedParamNames() []string {
	names := make([]string, 0, len(q.params))
	for name := range q.params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
