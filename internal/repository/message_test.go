package repository

import (
	"testing"
	"time"

	"github.com/venturenest/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestReverseMessages(t *testing.T) {
	base := time.Now()
	newest := domain.Message{ID: uuid.New(), CreatedAt: base}
	middle := domain.Message{ID: uuid.New(), CreatedAt: base.Add(-time.Minute)}
	oldest := domain.Message{ID: uuid.New(), CreatedAt: base.Add(-2 * time.Minute)}

	// Descending fetch order, as the paging query returns it.
	messages := []domain.Message{newest, middle, oldest}
	reverseMessages(messages)
	assert.Equal(t, []domain.Message{oldest, middle, newest}, messages)

	pair := []domain.Message{newest, oldest}
	reverseMessages(pair)
	assert.Equal(t, []domain.Message{oldest, newest}, pair)

	single := []domain.Message{newest}
	reverseMessages(single)
	assert.Equal(t, []domain.Message{newest}, single)

	reverseMessages(nil)
}
