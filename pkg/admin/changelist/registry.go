// Package changelist renders the admin listing of a registered model: the
// declared columns, free text search over the declared fields and date
// filters, one page at a time.
package changelist

import "errors"

// Registerable is implemented by every type exposed in the admin console.
// Field names are column names; "relation__field" reaches through a to-one
// relation, and a bare relation name as a list column renders its label.
type Registerable interface {
	ListColumns() []string
	SearchableFields() []string
	FilterableFields() []string
}

// Orderable overrides the default primary key ordering. A leading "-" sorts
// descending.
type Orderable interface {
	Ordering() []string
}

var (
	// ErrInvalidFilter is returned for a filter the listing does not offer.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrInvalidDescriptor is returned by New when a descriptor names a field
	// the model does not have.
	ErrInvalidDescriptor = errors.New("invalid admin descriptor")
)
