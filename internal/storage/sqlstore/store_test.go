package sqlstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRebind(t *testing.T) {
	query := "INSERT INTO t (a, b, c) VALUES (?, ?, ?)"

	assert.Equal(t, query, Question.Rebind(query))
	assert.Equal(t, "INSERT INTO t (a, b, c) VALUES ($1, $2, $3)", Dollar.Rebind(query))
	assert.Equal(t, "SELECT 1", Dollar.Rebind("SELECT 1"))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))
}
