package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func mapPgError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return newServiceError(http.StatusNotFound, "DQ_TARGET_NOT_FOUND", "not found", err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case "23505": // unique_violation, concurrent create of the same value
		return newServiceError(http.StatusConflict, "DQ_CONFLICT", "catalog entry already exists", err)
	case "23503": // foreign_key_violation
		return newServiceError(http.StatusUnprocessableEntity, "DQ_TARGET_NOT_FOUND", "referenced record not found", err)
	default:
		return newServiceError(http.StatusInternalServerError, "DQ_INTERNAL", fmt.Sprintf("database error (%s)", pgErr.Code), err)
	}
}
