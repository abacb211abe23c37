package phone_test

import (
	"testing"

	"courtside/services/phone"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	inputs := []string{
		"09123456789",
		"+989123456789",
		"00989123456789",
		"989123456789",
	}
	for _, in := range inputs {
		assert.Equal(t, "09123456789", phone.Normalize(in), "input %q", in)
	}
}

func TestNormalizeStripsSeparators(t *testing.T) {
	assert.Equal(t, "09123456789", phone.Normalize(" 0912 345-6789 "))
	assert.Equal(t, "09351234567", phone.Normalize("+98 935 123 4567"))
}

func TestNormalizePassthrough(t *testing.T) {
	// Unknown shapes are passed through; Validate is the gatekeeper.
	assert.Equal(t, "12345", phone.Normalize("12345"))
	assert.Equal(t, "981234", phone.Normalize("981234"))
}

func TestValidate(t *testing.T) {
	valid := []string{
		"09123456789",
		"+989123456789",
		"00989123456789",
		"989123456789",
		"9123456789",
	}
	for _, p := range valid {
		assert.NoError(t, phone.Validate(p), "phone %q", p)
	}

	invalid := []string{
		"",
		"0912345678",    // too short
		"091234567890",  // too long
		"08123456789",   // not a mobile prefix
		"+449123456789", // wrong country
		"abc",
	}
	for _, p := range invalid {
		assert.Error(t, phone.Validate(p), "phone %q", p)
	}
}
