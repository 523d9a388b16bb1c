package app

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeypadKey(t *testing.T) {
	seen := map[uint8]bool{}
	for rawcode := range keyMap {
		key, ok := keypadKey(rawcode)
		assert.True(t, ok)
		assert.False(t, seen[key])
		seen[key] = true
	}
	assert.Len(t, seen, 16)

	key, ok := keypadKey('4')
	assert.True(t, ok)
	assert.Equal(t, uint8(0xC), key)

	key, ok = keypadKey(88)
	assert.True(t, ok)
	assert.Equal(t, uint8(0x0), key)

	_, ok = keypadKey(escapeRawcode)
	assert.False(t, ok)
}
