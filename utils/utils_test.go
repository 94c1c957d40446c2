package utils

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestInitials(t *testing.T) {
	assert.Equal(t, "JT", Initials("Jean", "Tremblay"))
	assert.Equal(t, "ÉT", Initials("Éric", "Tremblay"))
	assert.Equal(t, "ÈC", Initials("ève", "côté"))
	assert.True(t, utf8.ValidString(Initials("Éric", "Øyvind")))
	assert.Equal(t, "M", Initials("", "Morin"))
	assert.Equal(t, "A", Initials("alice", ""))
	assert.Equal(t, "", Initials("", ""))
	assert.Equal(t, "JT", Initials(" Jean ", " Tremblay "))
}
