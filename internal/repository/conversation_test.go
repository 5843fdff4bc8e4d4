package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDirectPairKey_OrderIndependent(t *testing.T) {
	userA := uuid.New()
	userB := uuid.New()

	assert.Equal(t, directPairKey(userA, userB), directPairKey(userB, userA),
		"both call orders must hit the same unique key")

	userC := uuid.New()
	assert.NotEqual(t, directPairKey(userA, userB), directPairKey(userA, userC),
		"distinct pairs get distinct keys")
}
