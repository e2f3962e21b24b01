package textfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwebster45206/campaign-engine/pkg/game"
)

func TestShouldFilter(t *testing.T) {
	assert.True(t, ShouldFilter(game.ToneLighthearted))
	assert.True(t, ShouldFilter(game.ToneHumorous))
	assert.True(t, ShouldFilter(" Lighthearted "))
	assert.False(t, ShouldFilter(game.ToneSerious))
	assert.False(t, ShouldFilter(game.ToneDark))
	assert.False(t, ShouldFilter(""))
}

func TestFilter_ReplacesWords(t *testing.T) {
	tf := NewToneFilter()

	assert.Equal(t, "Well, dang.", tf.Filter("Well, damn."))
	assert.Equal(t, "What the heck happened here?", tf.Filter("What the hell happened here?"))
	assert.Equal(t, "That was baloney and you know it.", tf.Filter("That was bullshit and you know it."))
	assert.Equal(t, "This is clean narration.", tf.Filter("This is clean narration."))
}

func TestFilter_WordBoundaries(t *testing.T) {
	tf := NewToneFilter()

	// "hello" and "class" contain filtered words as substrings and must
	// pass through untouched.
	assert.Equal(t, "hello there, shellfish for the class", tf.Filter("hello there, shellfish for the class"))
	assert.Equal(t, "The assassin waits.", tf.Filter("The assassin waits."))
}

func TestFilter_PreservesCase(t *testing.T) {
	tf := NewToneFilter()

	assert.Equal(t, "DANG it all!", tf.Filter("DAMN it all!"))
	assert.Equal(t, "Dang it all!", tf.Filter("Damn it all!"))
	assert.Equal(t, "dang it all!", tf.Filter("damn it all!"))
}
