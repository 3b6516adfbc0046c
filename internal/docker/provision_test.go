package docker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripExtendedLengthPrefix(t *testing.T) {
	t.Run("strips windows extended-length prefix", func(t *testing.T) {
		got := stripExtendedLengthPrefix(`\\?\C:\data\volumes\waitress-abc`)
		assert.Equal(t, `C:\data\volumes\waitress-abc`, got)
	})

	t.Run("leaves ordinary paths untouched", func(t *testing.T) {
		got := stripExtendedLengthPrefix("/data/volumes/waitress-abc")
		assert.Equal(t, "/data/volumes/waitress-abc", got)
	})
}

func TestNormalizeNewlines(t *testing.T) {
	got := normalizeNewlines("line1\r\nline2\r\nline3")
	assert.Equal(t, "line1\nline2\nline3", got)
}
