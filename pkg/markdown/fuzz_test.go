package markdown_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yaklabco/gomdmark/pkg/markdown"
	"github.com/yaklabco/gomdmark/pkg/mdast"
)

var fuzzSeeds = []string{
	"# Heading\n\nParagraph with *emphasis*.\n",
	"- item\n  - nested\n\n1. one\n",
	"> quote\n>\n> more\n",
	"```\ncode\n```\n",
	"[link](url) ![img](src) <http://auto>\n",
	"[ref]\n\n[ref]: /url \"title\"\n",
	"__u__ ~~s~~ ||p||\n",
	"a  \nb\\\nc\r\nd\re",
	"<div>\n\n*x*\n",
	"\ufeff# hi\n",
}

// checkPositions verifies that every node lies inside the content and,
// below the root, inside its parent.
func checkPositions(t *testing.T, snap *mdast.FileSnapshot) {
	t.Helper()

	mdast.Inspect(snap.Root, func(n *mdast.Node) bool {
		pos := n.Position
		if pos.Start.Offset < 0 || pos.End.Offset > len(snap.Content) || pos.Start.Offset > pos.End.Offset {
			t.Fatalf("%s has invalid position %+v for %d bytes", n.Kind, pos, len(snap.Content))
		}
		if p := n.Parent; p != nil && p.Kind != mdast.NodeRoot && (pos.Start.Offset < p.Position.Start.Offset || pos.End.Offset > p.Position.End.Offset) {
			t.Fatalf("%s %+v escapes parent %s %+v", n.Kind, pos, p.Kind, p.Position)
		}
		return true
	})
}

func FuzzParse(f *testing.F) {
	for _, seed := range fuzzSeeds {
		f.Add(seed)
	}

	p := markdown.NewParser()
	f.Fuzz(func(t *testing.T, input string) {
		snap, err := p.Parse(context.Background(), "fuzz.md", []byte(input))
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		checkPositions(t, snap)
	})
}

func FuzzStream(f *testing.F) {
	for _, seed := range fuzzSeeds {
		f.Add(seed, len(seed)/2)
	}

	p := markdown.NewParser()
	f.Fuzz(func(t *testing.T, input string, split int) {
		if split < 0 || split > len(input) {
			split = len(input) / 2
		}

		want, err := p.Parse(context.Background(), "", []byte(input))
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}

		s := p.Stream("")
		if _, err := s.Write([]byte(input[:split])); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		if _, err := s.Write([]byte(input[split:])); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		got, err := s.Close()
		if err != nil {
			t.Fatalf("close failed: %v", err)
		}

		if diff := cmp.Diff(mdast.Encode(want.Root, true), mdast.Encode(got.Root, true)); diff != "" {
			t.Errorf("stream differs from parse (-parse +stream):\n%s", diff)
		}
	})
}
