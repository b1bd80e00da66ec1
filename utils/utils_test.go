package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	require.NoError(t, CheckPassword(hash, "s3cret-pass"))
	require.Error(t, CheckPassword(hash, "wrong-pass"))
}

func TestFoldName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "beyonce", FoldName("Beyoncé"))
	require.Equal(t, "motorhead", FoldName("Motörhead"))
	require.Equal(t, "sigur ros", FoldName("Sigur Rós"))
	require.Equal(t, "ac/dc", FoldName("AC/DC"))
}

func TestSearchRegex(t *testing.T) {
	t.Parallel()

	require.Equal(t, "beyonce", SearchRegex("  Beyoncé "))
	require.Equal(t, "ac.*dc", SearchRegex("AC/DC"))
	require.Equal(t, "daft.*punk", SearchRegex("Daft Punk"))
	require.Equal(t, "", SearchRegex("***"))
}

func TestParseLimitOffset(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		limit, offset, err := ParseLimitOffset("", "")
		require.NoError(t, err)
		require.EqualValues(t, 5, limit)
		require.EqualValues(t, 0, offset)
	})

	t.Run("explicit values", func(t *testing.T) {
		limit, offset, err := ParseLimitOffset("20", "40")
		require.NoError(t, err)
		require.EqualValues(t, 20, limit)
		require.EqualValues(t, 40, offset)
	})

	t.Run("non-numeric is rejected", func(t *testing.T) {
		_, _, err := ParseLimitOffset("abc", "")
		require.Error(t, err)

		_, _, err = ParseLimitOffset("", "xyz")
		require.Error(t, err)
	})

	t.Run("negative is rejected", func(t *testing.T) {
		_, _, err := ParseLimitOffset("-1", "0")
		require.Error(t, err)
	})

	t.Run("limit is clamped to the configured maximum", func(t *testing.T) {
		limit, _, err := ParseLimitOffset("100000", "")
		require.NoError(t, err)
		require.EqualValues(t, 100, limit)
	})
}

func TestParseBoolQuery(t *testing.T) {
	t.Parallel()

	b, err := ParseBoolQuery("")
	require.NoError(t, err)
	require.Nil(t, b)

	b, err = ParseBoolQuery("true")
	require.NoError(t, err)
	require.NotNil(t, b)
	require.True(t, *b)

	_, err = ParseBoolQuery("maybe")
	require.Error(t, err)
}

func TestObjectNameFromGCSPublicURL(t *testing.T) {
	t.Parallel()

	name, err := ObjectNameFromGCSPublicURL("covers-bucket",
		"https://storage.googleapis.com/covers-bucket/covers/a1/1-x.png")
	require.NoError(t, err)
	require.Equal(t, "covers/a1/1-x.png", name)

	name, err = ObjectNameFromGCSPublicURL("covers-bucket",
		"https://covers-bucket.storage.googleapis.com/covers/a1/1-x.png")
	require.NoError(t, err)
	require.Equal(t, "covers/a1/1-x.png", name)

	_, err = ObjectNameFromGCSPublicURL("covers-bucket",
		"https://storage.googleapis.com/other-bucket/covers/a1/1-x.png")
	require.Error(t, err)

	_, err = ObjectNameFromGCSPublicURL("covers-bucket", "https://example.com/x.png")
	require.Error(t, err)
}
