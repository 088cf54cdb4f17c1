package tokenizer

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func counts(vocab []TokenCount) map[string]int {
	m := make(map[string]int, len(vocab))
	for _, tc := range vocab {
		m[tc.Token] = tc.Count
	}
	return m
}

func TestTokenizer_Add(t *testing.T) {
	tok := NewTokenizer(true, true)
	require.NoError(t, tok.Add("Hello, World!\nhello world"))

	got := counts(tok.Vocabulary(SortAlpha))
	require.Equal(t, 2, got["hello"])
	require.Equal(t, 2, got["world"])
	require.NotContains(t, got, ",")
	require.NotContains(t, got, "!")
	require.NotContains(t, got, "Hello")
}

func TestTokenizer_SingleWordLines(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		lowercase   bool
		filterPunct bool
		want        map[string]int
	}{
		{name: "one word", text: "word", want: map[string]int{"word": 1}},
		{name: "trailing space", text: "word  ", want: map[string]int{"word": 1}},
		{name: "lowercase", text: "Word", lowercase: true, want: map[string]int{"word": 1}},
		{name: "punctuation only", text: "!!!", filterPunct: true, want: map[string]int{}},
		{name: "blank line", text: "   ", want: map[string]int{}},
		{
			name:        "mixed lines",
			text:        "alpha beta\nalpha\n\nBeta",
			lowercase:   true,
			filterPunct: true,
			want:        map[string]int{"alpha": 2, "beta": 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := NewTokenizer(tt.lowercase, tt.filterPunct)
			require.NoError(t, tok.Add(tt.text))
			require.Equal(t, tt.want, counts(tok.Vocabulary(SortAlpha)))
		})
	}
}

func TestTokenizer_KeepsCase(t *testing.T) {
	tok := NewTokenizer(false, false)
	require.NoError(t, tok.Add("Hello hello"))

	got := counts(tok.Vocabulary(""))
	require.Equal(t, 1, got["Hello"])
	require.Equal(t, 1, got["hello"])
}

func TestTokenizer_Sort(t *testing.T) {
	tok := NewTokenizer(false, true)
	require.NoError(t, tok.Add("b a b c b a"))

	require.Equal(t, []TokenCount{
		{Token: "b", Count: 3},
		{Token: "a", Count: 2},
		{Token: "c", Count: 1},
	}, tok.Vocabulary(SortFreq))

	require.Equal(t, []TokenCount{
		{Token: "a", Count: 2},
		{Token: "b", Count: 3},
		{Token: "c", Count: 1},
	}, tok.Vocabulary(SortAlpha))

	var buf bytes.Buffer
	require.NoError(t, tok.WriteTo(&buf, SortFreq))
	require.Equal(t, "b 3\na 2\nc 1\n", buf.String())
}

func TestTokenizer_Concurrent(t *testing.T) {
	tok := NewTokenizer(true, true)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = tok.Add("слово word")
		}()
	}
	wg.Wait()

	got := counts(tok.Vocabulary(SortFreq))
	require.Equal(t, 20, got["слово"])
	require.Equal(t, 20, got["word"])
}

func TestValidSort(t *testing.T) {
	require.True(t, ValidSort(""))
	require.True(t, ValidSort(SortFreq))
	require.True(t, ValidSort(SortAlpha))
	require.False(t, ValidSort("random"))
}

func TestTokenizer_Empty(t *testing.T) {
	tok := NewTokenizer(false, false)
	require.NoError(t, tok.Add(""))
	require.Empty(t, tok.Vocabulary(SortFreq))
}
