package fieldref

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpolate(t *testing.T) {
	t.Run("multilingual reference", func(t *testing.T) {
		got := Interpolate("texts:titles")
		assert.Equal(t, []string{
			"texts.nl.titles.text",
			"texts.en.titles.text",
			"texts.unk.titles.text",
		}, got)
	})

	t.Run("plain fields pass through in order", func(t *testing.T) {
		got := Interpolate("title", "texts:descriptions", "keywords")
		assert.Equal(t, []string{
			"title",
			"texts.nl.descriptions.text",
			"texts.en.descriptions.text",
			"texts.unk.descriptions.text",
			"keywords",
		}, got)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, Interpolate())
	})
}

func TestExtrapolate(t *testing.T) {
	t.Run("collapses languages", func(t *testing.T) {
		got := Extrapolate("texts.nl.titles.text", "texts.en.titles.text", "texts.unk.titles.text")
		assert.Equal(t, []string{"texts:titles"}, got)
	})

	t.Run("collapses sub fields and sorts", func(t *testing.T) {
		got := Extrapolate(
			"texts.nl.titles.text.analyzed",
			"description",
			"texts.en.contents.text.folded",
			"description",
		)
		assert.Equal(t, []string{"description", "texts:contents", "texts:titles"}, got)
	})

	t.Run("unknown language is not multilingual", func(t *testing.T) {
		got := Extrapolate("texts.de.titles.text")
		assert.Equal(t, []string{"texts.de.titles.text"}, got)
	})
}

func TestRoundTrip(t *testing.T) {
	for _, ref := range []string{"texts:titles", "texts:descriptions", "texts:contents", "keywords.folded"} {
		assert.Equal(t, []string{ref}, Extrapolate(Interpolate(ref)...), ref)
	}
}
