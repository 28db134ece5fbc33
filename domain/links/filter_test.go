package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterVariants(t *testing.T) {
	assert.True(t, NoFilter().IsAll())
	assert.True(t, ByCategory("").IsAll())
	assert.True(t, ByCategory(SentinelCategoryID).IsAll(), "sentinel maps to no filter")

	f := ByCategory("cat-1")
	assert.False(t, f.IsAll())
	id, ok := f.CategoryID()
	assert.True(t, ok)
	assert.Equal(t, "cat-1", id)
}

func TestFilterMatches(t *testing.T) {
	link := Link{ID: "lnk-1", CategoryIDs: []string{"cat-1", "cat-2"}}

	assert.True(t, NoFilter().Matches(link))
	assert.True(t, ByCategory("cat-2").Matches(link))
	assert.False(t, ByCategory("cat-3").Matches(link))
}
