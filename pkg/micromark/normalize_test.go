package micromark_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdmark/pkg/micromark"
)

func TestNormalizeIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"Foo", "foo"},
		{"  Foo \t Bar  ", "foo bar"},
		{"foo\nbar", "foo bar"},
		{"foo\r\n  bar", "foo bar"},
		{"ÄÖÜ", "äöü"},
		{"", ""},
		{" \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, micromark.NormalizeIdentifier(tt.input))
		})
	}
}

func TestNormalizeIdentifier_CaseFolding(t *testing.T) {
	t.Parallel()

	assert.Equal(t, micromark.NormalizeIdentifier("STRASSE"), micromark.NormalizeIdentifier("Straße"))
	assert.Equal(t, micromark.NormalizeIdentifier("ΑΓΩ"), micromark.NormalizeIdentifier("αγω"))
}
