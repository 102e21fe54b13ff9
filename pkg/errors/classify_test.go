package errors

import (
	"fmt"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    Code
		message string
	}{
		{name: "typed passthrough", err: New(CodeForbidden, "nope"), code: CodeForbidden, message: "nope"},
		{name: "record not found", err: fmt.Errorf("load vehicle: %w", gorm.ErrRecordNotFound), code: CodeNotFound},
		{name: "duplicated key", err: gorm.ErrDuplicatedKey, code: CodeConflict},
		{name: "foreign key", err: gorm.ErrForeignKeyViolated, code: CodeValidation},
		{name: "pg unique", err: &pgconn.PgError{Code: "23505", ConstraintName: "vehicles_number_plate_key"}, code: CodeConflict},
		{name: "pg check", err: &pgconn.PgError{Code: "23514"}, code: CodeValidation},
		{name: "token expired", err: fmt.Errorf("%w: %w", jwt.ErrTokenInvalidClaims, jwt.ErrTokenExpired), code: CodeUnauthorized, message: MsgTokenExpired},
		{name: "token malformed", err: jwt.ErrTokenMalformed, code: CodeUnauthorized, message: MsgTokenFailed},
		{name: "signature", err: jwt.ErrTokenSignatureInvalid, code: CodeUnauthorized, message: MsgTokenFailed},
		{name: "unknown", err: fmt.Errorf("disk on fire"), code: CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if got.Code() != tt.code {
				t.Fatalf("expected code %s got %s", tt.code, got.Code())
			}
			if tt.message != "" && got.Message() != tt.message {
				t.Fatalf("expected message %q got %q", tt.message, got.Message())
			}
		})
	}

	if Classify(nil) != nil {
		t.Fatal("Classify(nil) should be nil")
	}
}
