package repositories_test

import (
	"testing"

	"fashionstore/internal/models"
	"fashionstore/internal/repositories"

	"github.com/stretchr/testify/assert"
)

func TestMockOrderRepository(t *testing.T) {
	repo := repositories.NewMockOrderRepository()

	first := &models.Order{UserName: "A", Items: "shoes1 x1", Total: 1999}
	second := &models.Order{UserName: "B", Items: "shirt2 x2", Total: 1998}

	assert.NoError(t, repo.Create(first))
	assert.NoError(t, repo.Create(second))

	// IDs are sequential in insertion order.
	assert.Equal(t, uint(1), first.ID)
	assert.Equal(t, uint(2), second.ID)

	orders, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, orders, 2)

	// Listing is newest first.
	assert.Equal(t, uint(2), orders[0].ID)
	assert.Equal(t, uint(1), orders[1].ID)
}
