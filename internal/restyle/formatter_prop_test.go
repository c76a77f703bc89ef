package restyle

import (
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var propTokenTypes = []chroma.TokenType{
	chroma.Keyword, chroma.Name, chroma.Text, chroma.LiteralString, chroma.Comment,
}

// drawSpans generates a stream of non-empty spans whose values concatenate to
// the returned text.
func drawSpans(rt *rapid.T) ([]chroma.Token, string) {
	n := rapid.IntRange(1, 24).Draw(rt, "spans")
	toks := make([]chroma.Token, 0, n)
	var b strings.Builder
	for i := 0; i < n; i++ {
		value := rapid.StringMatching(`[a-z ]{1,8}`).Draw(rt, "value")
		ttype := rapid.SampledFrom(propTokenTypes).Draw(rt, "type")
		toks = append(toks, chroma.Token{Type: ttype, Value: value})
		b.WriteString(value)
	}
	return toks, b.String()
}

func TestFormat_PropertyFirstCallCoversEverySpan(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		toks, text := drawSpans(rt)
		f, err := New(testStyle(t))
		require.NoError(t, err)
		w := newFakeWidget(text)

		require.NoError(t, f.Format(chroma.Literator(toks...), w))
		require.Len(t, w.applies, len(toks))

		// The applied ranges tile the text exactly.
		offset := 0
		for i, call := range w.applies {
			require.Equal(t, offset, call.rng.Start)
			require.Equal(t, len(toks[i].Value), call.rng.Len())
			offset = call.rng.End
		}
		require.Equal(t, len(text), offset)
	})
}

func TestFormat_PropertyRepeatCallAppliesNothing(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		toks, text := drawSpans(rt)
		f, err := New(testStyle(t))
		require.NoError(t, err)
		w := newFakeWidget(text)

		require.NoError(t, f.Format(chroma.Literator(toks...), w))
		before := len(w.applies)
		require.NoError(t, f.Format(chroma.Literator(toks...), w))
		require.Equal(t, before, len(w.applies))
	})
}

func TestFormat_PropertySameLengthEditRestylesOnlyTouchedSpan(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		toks, text := drawSpans(rt)
		f, err := New(testStyle(t))
		require.NoError(t, err)
		w := newFakeWidget(text)
		require.NoError(t, f.Format(chroma.Literator(toks...), w))
		before := len(w.applies)

		// Replace one byte with a character outside the generator
		// alphabet; token boundaries stay put.
		pos := rapid.IntRange(0, len(text)-1).Draw(rt, "pos")
		edited := text[:pos] + "Z" + text[pos+1:]
		w.text = edited
		editedToks := make([]chroma.Token, len(toks))
		offset := 0
		for i, tok := range toks {
			editedToks[i] = chroma.Token{Type: tok.Type, Value: edited[offset : offset+len(tok.Value)]}
			offset += len(tok.Value)
		}

		require.NoError(t, f.Format(chroma.Literator(editedToks...), w))
		require.Equal(t, before+1, len(w.applies))

		touched := w.applies[len(w.applies)-1].rng
		require.LessOrEqual(t, touched.Start, pos)
		require.Greater(t, touched.End, pos)
	})
}

func TestFormat_PropertyTruncatedStreamAlwaysErrors(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		toks, text := drawSpans(rt)
		f, err := New(testStyle(t))
		require.NoError(t, err)
		w := newFakeWidget(text)

		drop := rapid.IntRange(1, len(toks)).Draw(rt, "drop")
		err = f.Format(chroma.Literator(toks[:len(toks)-drop]...), w)
		require.ErrorIs(t, err, ErrStreamMismatch)
	})
}
