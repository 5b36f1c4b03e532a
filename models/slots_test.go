package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotKey_String(t *testing.T) {
	assert.Equal(t, "d0-9", SlotKey{Day: 0, Hour: 9}.String())
	assert.Equal(t, "d4-16-h2", SlotKey{Day: 4, Hour: 16, Half: HalfLast}.String())
	assert.Equal(t, "d2-11", SlotKey{Day: 2, Hour: 11, Half: HalfFirst}.Parent().String())
}
