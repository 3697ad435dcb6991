package tokens

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault_ReturnsASingletonCounter(t *testing.T) {
	a := Default()
	b := Default()
	assert.Same(t, a, b)
}

func TestCounter_Count_NilCounterFallsBackToRuneCount(t *testing.T) {
	var c *Counter
	assert.Equal(t, 5, c.Count("hello"))
}

func TestCounter_Truncate_NilCounterFallsBackToRuneTruncation(t *testing.T) {
	var c *Counter
	assert.Equal(t, "hello", c.Truncate("hello", 10))
	assert.Equal(t, "he...", c.Truncate("hello", 2))
}

func TestCounter_Truncate_ZeroOrNegativeBudgetYieldsEmptyString(t *testing.T) {
	c := Default()
	assert.Equal(t, "", c.Truncate("anything at all", 0))
	assert.Equal(t, "", c.Truncate("anything at all", -1))
}

func TestCounter_Truncate_ShortTextPassesThroughUnchanged(t *testing.T) {
	c := Default()
	assert.Equal(t, "short text", c.Truncate("short text", 1000))
}

func TestCounter_Truncate_LongTextIsShortenedAndMarked(t *testing.T) {
	c := Default()
	long := strings.Repeat("word ", 2000)

	got := c.Truncate(long, 50)

	assert.Less(t, len(got), len(long))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestCounter_Count_GrowsWithLongerText(t *testing.T) {
	c := Default()
	short := c.Count("hello")
	long := c.Count(strings.Repeat("hello world, this is a longer sentence. ", 20))
	assert.Greater(t, long, short)
}
