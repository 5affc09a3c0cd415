package pretty_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdmark/internal/ui/pretty"
	"github.com/yaklabco/gomdmark/pkg/markdown"
)

func TestFormatEvents(t *testing.T) {
	events, err := markdown.NewParser().Events(context.Background(), []byte("***\n"))
	require.NoError(t, err)

	out := pretty.NewStyles(false).FormatEvents(events, true)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, len(events))

	assert.Equal(t, "enter thematicBreak (1:1-1:4)", lines[0])
	assert.Equal(t, "enter   thematicBreakSequence (1:1-1:4)", lines[1])
	assert.Equal(t, "exit    thematicBreakSequence (1:1-1:4)", lines[2])
	assert.Equal(t, "exit  thematicBreak (1:1-1:4)", lines[3])
}
