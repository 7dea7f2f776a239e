package vocab

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildSortedUnique(t *testing.T) {
	v := Build("banana")
	require.Equal(t, 3, v.Size())

	ids, err := v.Encode("abn")
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, ids)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	text := "Where was ⁇ born?"
	v := Build(text)

	ids, err := v.Encode(text)
	require.NoError(t, err)

	decoded, err := v.Decode(ids)
	require.NoError(t, err)
	require.Equal(t, text, decoded)
}

func TestEncodeUnknownRune(t *testing.T) {
	v := Build("abc")

	_, err := v.Encode("abz")
	require.Error(t, err)
	require.Contains(t, err.Error(), "'z'")
	require.Contains(t, err.Error(), "not in vocabulary")
}

func TestDecodeOutOfRange(t *testing.T) {
	v := Build("abc")

	_, err := v.Decode([]int{0, 3})
	require.Error(t, err)

	_, err = v.Decode([]int{-1})
	require.Error(t, err)
}

func TestNewKeepsFirstIndex(t *testing.T) {
	v := New([]rune{'a', 'b', 'a'})
	require.Equal(t, 2, v.Size())
	require.True(t, v.Contains('a'))
	require.False(t, v.Contains('c'))
}
