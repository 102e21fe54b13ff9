package errors

import (
	stdErrors "errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	MsgTokenExpired = "Token expired"
	MsgTokenFailed  = "Not authorized, token failed"
	MsgNoToken      = "Not authorized, no token"
)

// Postgres SQLSTATE codes surfaced to clients as 4xx.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
	pgInvalidText         = "22P02"
	pgStringTooLong       = "22001"
)

var tokenFailures = []error{
	jwt.ErrTokenMalformed,
	jwt.ErrTokenUnverifiable,
	jwt.ErrTokenSignatureInvalid,
	jwt.ErrTokenInvalidClaims,
	jwt.ErrTokenNotValidYet,
	jwt.ErrTokenUsedBeforeIssued,
	jwt.ErrTokenInvalidIssuer,
	jwt.ErrTokenRequiredClaimMissing,
}

// Classify maps any error reaching the HTTP edge onto a typed *Error.
// Typed errors pass through; ORM and token errors get their 4xx mapping;
// everything else becomes an internal error.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	if typed := As(err); typed != nil {
		return typed
	}

	if stdErrors.Is(err, jwt.ErrTokenExpired) {
		return Wrap(CodeUnauthorized, err, MsgTokenExpired)
	}
	for _, target := range tokenFailures {
		if stdErrors.Is(err, target) {
			return Wrap(CodeUnauthorized, err, MsgTokenFailed)
		}
	}

	switch {
	case stdErrors.Is(err, gorm.ErrRecordNotFound):
		return Wrap(CodeNotFound, err, "resource not found")
	case stdErrors.Is(err, gorm.ErrDuplicatedKey):
		return Wrap(CodeConflict, err, "resource already exists")
	case stdErrors.Is(err, gorm.ErrForeignKeyViolated):
		return Wrap(CodeValidation, err, "referenced record does not exist")
	case stdErrors.Is(err, gorm.ErrCheckConstraintViolated), stdErrors.Is(err, gorm.ErrInvalidData):
		return Wrap(CodeValidation, err, "invalid data")
	}

	var pgErr *pgconn.PgError
	if stdErrors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return Wrap(CodeConflict, err, "resource already exists").
				WithDetails(map[string]any{"constraint": pgErr.ConstraintName})
		case pgForeignKeyViolation:
			return Wrap(CodeValidation, err, "referenced record does not exist").
				WithDetails(map[string]any{"constraint": pgErr.ConstraintName})
		case pgNotNullViolation, pgCheckViolation, pgInvalidText, pgStringTooLong:
			return Wrap(CodeValidation, err, "invalid data").
				WithDetails(map[string]any{"column": pgErr.ColumnName, "constraint": pgErr.ConstraintName})
		}
	}

	return Wrap(CodeInternal, err, "unexpected error")
}
