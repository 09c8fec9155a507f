package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}
	other := &pgconn.PgError{Code: "23502"}

	assert.True(t, isUniqueViolation(unique))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", unique)))
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.False(t, isUniqueViolation(other))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}

func TestOrderBy(t *testing.T) {
	assert.Equal(t, "created_at asc", orderBy("oldest"))
	assert.Equal(t, "created_at desc", orderBy("newest"))
	assert.Equal(t, "created_at desc", orderBy(""))
}
