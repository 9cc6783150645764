package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned when a queried row does not exist. Services
// translate it into resource-specific errors.
var ErrNotFound = errors.New("not found")

// wrapNoRows converts pgx's no-rows sentinel into ErrNotFound.
func wrapNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
