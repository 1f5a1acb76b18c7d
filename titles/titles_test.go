package titles_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/listingkit/dictionary"
	"github.com/sevigo/listingkit/testutil"
	"github.com/sevigo/listingkit/textsplitter"
	"github.com/sevigo/listingkit/titles"
)

func newFormatter(t *testing.T, opts ...titles.Option) *titles.Formatter {
	t.Helper()

	logger, _ := testutil.NewTestLogger(t)
	splitter, err := textsplitter.NewChineseTitle(dictionary.Default(), logger)
	require.NoError(t, err)
	f, err := titles.NewFormatter(splitter, logger, opts...)
	require.NoError(t, err)
	return f
}

func TestNewFormatter(t *testing.T) {
	_, err := titles.NewFormatter(nil, nil)
	require.ErrorIs(t, err, titles.ErrNilSplitter)
}

func TestFormatter_Format(t *testing.T) {
	f := newFormatter(t)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Brand glued to a short Chinese run",
			input:    "DHDH速描優美眼線液筆",
			expected: "DHDH速描優美眼線液筆",
		},
		{
			name:     "Brand is upper-cased without spaces",
			input:    "  cappu vini 卡泡維妮 10色眼影盤 ",
			expected: "CAPPUVINI卡泡維妮 10色眼影盤",
		},
		{
			name:     "Long run is chunked and count joins its measure word",
			input:    "水潤顯色持久防水眼線液筆 2支",
			expected: "水潤顯色持久防水 眼線液筆 2支",
		},
		{
			name:     "Count without measure word stays apart",
			input:    "口紅 365",
			expected: "口紅 365",
		},
		{
			name:     "Full-width brand is folded",
			input:    "ＤＨＤＨ速描",
			expected: "DHDH速描",
		},
		{
			name:     "Blank title",
			input:    "   ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, f.Format(tt.input))
		})
	}
}

func TestFormatter_Options(t *testing.T) {
	t.Run("traditional conversion runs before spacing", func(t *testing.T) {
		f := newFormatter(t, titles.WithTraditional(nil))
		assert.Equal(t, "眼線筆口紅", f.Format("眼线笔口红"))
	})

	t.Run("width folding can be disabled", func(t *testing.T) {
		f := newFormatter(t, titles.WithoutWidthFolding())
		assert.Equal(t, "ＤＨＤＨ 速描", f.Format("ＤＨＤＨ速描"))
	})
}

func TestIsHan(t *testing.T) {
	assert.True(t, titles.IsHan('紅'))
	assert.False(t, titles.IsHan('A'))
	assert.False(t, titles.IsHan('【'))
}
