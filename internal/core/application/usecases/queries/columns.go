package queries

import (
	"database/sql"

	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

func idFromColumn(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func optionalIDFromColumn(id uuid.NullUUID) (*kernel.UUID, error) {
	if !id.Valid {
		return nil, nil
	}
	value, err := idFromColumn(id.UUID)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

// optionalFromColumn parses a nullable enum column.
func optionalFromColumn[T any](s sql.NullString, parse func(string) (T, error)) (*T, error) {
	if !s.Valid {
		return nil, nil
	}
	value, err := parse(s.String)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
