package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid", "Ann Lee", nil},
		{"minimum length", "Al", nil},
		{"too short", "A", ErrNameLength},
		{"whitespace only", "   ", ErrNameLength},
		{"maximum length", strings.Repeat("a", 100), nil},
		{"too long", strings.Repeat("a", 101), ErrNameLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Name(tt.input), tt.wantErr)
		})
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid", "ann@example.com", nil},
		{"valid subdomain", "ann.lee@mail.example.co.uk", nil},
		{"missing at", "annexample.com", ErrEmailFormat},
		{"missing domain", "ann@", ErrEmailFormat},
		{"missing tld", "ann@example", ErrEmailFormat},
		{"empty", "", ErrEmailFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Email(tt.input), tt.wantErr)
		})
	}
}

func TestPassword(t *testing.T) {
	assert.NoError(t, Password("secret1"))
	assert.NoError(t, Password("123456"))
	assert.ErrorIs(t, Password("12345"), ErrPasswordLength)
	assert.ErrorIs(t, Password(""), ErrPasswordLength)
}

func TestPhone(t *testing.T) {
	assert.NoError(t, Phone(""), "phone is optional")
	assert.NoError(t, Phone("+12345678901"))
	assert.ErrorIs(t, Phone("12345"), ErrPhoneFormat)
}

func TestAge(t *testing.T) {
	assert.NoError(t, Age(0), "zero means not supplied")
	assert.NoError(t, Age(13))
	assert.NoError(t, Age(120))
	assert.ErrorIs(t, Age(12), ErrAgeRange)
	assert.ErrorIs(t, Age(121), ErrAgeRange)
	assert.ErrorIs(t, Age(-1), ErrAgeRange)
}

func TestBio(t *testing.T) {
	assert.NoError(t, Bio(""))
	assert.NoError(t, Bio(strings.Repeat("b", 500)))
	assert.ErrorIs(t, Bio(strings.Repeat("b", 501)), ErrBioLength)
}
