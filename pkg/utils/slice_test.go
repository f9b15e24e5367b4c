package utils

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3"}, Map([]int{1, 2, 3}, strconv.Itoa))
	assert.Equal(t, []string{}, Map([]int{}, strconv.Itoa))
}

func TestFlatMap(t *testing.T) {
	pages := [][]string{{"a", "b"}, {}, {"c"}}
	assert.Equal(t, []string{"a", "b", "c"}, FlatMap(pages, func(page []string) []string { return page }))
	assert.Nil(t, FlatMap([][]string{}, func(page []string) []string { return page }))
}

func TestReduce(t *testing.T) {
	sum := Reduce([]int{1, 2, 3}, func(acc int, v int) int { return acc + v }, 10)
	assert.Equal(t, 16, sum)

	text := Reduce([]string{"H", "i"}, func(acc string, v string) string { return acc + v }, "")
	assert.Equal(t, "Hi", text)
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"example.com", "overlingo.dev"}, "overlingo.dev"))
	assert.False(t, Contains([]string{"example.com"}, "evil.com"))
	assert.False(t, Contains(nil, "example.com"))
}
