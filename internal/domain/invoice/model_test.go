package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitle(t *testing.T) {
	inv := &Invoice{Serie: "PS-", Number: 42}
	assert.Equal(t, "Payment for invoice PS-00042", inv.Title())

	inv = &Invoice{Serie: "INV", Number: 123456}
	assert.Equal(t, "Payment for invoice INV123456", inv.Title())
}
