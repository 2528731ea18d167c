package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Jane Doe", "jane-doe"},
		{"Jane-Doe", "jane-doe"},
		{"  Jane   Q  Doe ", "jane-q-doe"},
		{"Jane O'Brien", "jane-obrien"},
		{"Ana-María", "ana-mara"},
		{"ACME, Inc.", "acme-inc"},
		{"snake_case name", "snake_case-name"},
		{"Jane\u00a0Doe", "jane-doe"},
		{"Jane\vDoe", "jane-doe"},
		{"Jane\u2003Doe", "jane-doe"},
		{"Jane \u3000\t Doe", "jane-doe"},
		{"\ufeffJane Doe\u00a0", "jane-doe"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}
}

func TestSlugify_Deterministic(t *testing.T) {
	for i := 0; i < 5; i++ {
		assert.Equal(t, Slugify("Grace Hopper"), Slugify("Grace Hopper"))
	}
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "jane-doe-1", WithSuffix("jane-doe", 1))
	assert.Equal(t, "jane-doe-12", WithSuffix("jane-doe", 12))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("jane-doe"))
	assert.True(t, Valid("jd_2"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("Jane"))
	assert.False(t, Valid("jane doe"))
	assert.False(t, Valid("jane/doe"))
	assert.False(t, Valid(string(make([]byte, MaxLength+1))))
}
