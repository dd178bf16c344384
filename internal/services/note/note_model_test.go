package note

import (
	"testing"

	json "github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, ValidCategory(string(c)), string(c))
	}

	assert.False(t, ValidCategory(""))
	assert.False(t, ValidCategory("to_be_reviewed"))
	assert.False(t, ValidCategory("TO_BE_DONE"))
}

func TestGroupByCategory(t *testing.T) {
	n1 := &Note{ID: uuid.New(), Category: CategoryToBeDone, Content: "first"}
	n2 := &Note{ID: uuid.New(), Category: CategoryToBeDone, Content: "second"}
	n3 := &Note{ID: uuid.New(), Category: CategoryToBeSearched, Content: "lookup"}

	grouped := GroupByCategory([]*Note{n1, n2, n3})

	require.Len(t, grouped.ToBeDone, 2)
	assert.Equal(t, "first", grouped.ToBeDone[0].Content)
	assert.Equal(t, "second", grouped.ToBeDone[1].Content)
	require.Len(t, grouped.ToBeSearched, 1)
	assert.Equal(t, n3.ID, grouped.ToBeSearched[0].ID)

	// Untouched buckets stay allocated
	assert.NotNil(t, grouped.ToBePracticed)
	assert.NotNil(t, grouped.ToBeUsedAsReference)
	assert.Empty(t, grouped.ToBePracticed)
}

func TestByCategorySerializesAllBuckets(t *testing.T) {
	body, err := json.Marshal(NewByCategory())
	require.NoError(t, err)

	for _, c := range Categories {
		assert.Contains(t, string(body), `"`+string(c)+`":[]`)
	}
}
