// Package columns converts domain identifiers to and from the column types
// used by the GORM DTOs.
package columns

import (
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// NullableUUID maps an optional domain id to a nullable uuid column.
func NullableUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

// UUID maps a uuid column back to a domain id.
func UUID(raw uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(raw[:])
}

// OptionalUUID maps a nullable uuid column back to an optional domain id.
func OptionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// UUIDs maps domain ids to uuid column values, e.g. for IN clauses.
func UUIDs(ids []kernel.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Bytes())
	}
	return out
}

// NullableString maps "" to NULL.
func NullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// String maps NULL to "".
func String(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
