package mdast_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/yaklabco/gomdmark/pkg/mdast"
)

func TestEncode_Shape(t *testing.T) {
	t.Parallel()

	list := mdast.NewNode(mdast.NodeList)
	list.Position = mdast.Position{
		Start: mdast.Point{Line: 1, Column: 1, Offset: 0},
		End:   mdast.Point{Line: 1, Column: 4, Offset: 3},
	}
	item := mdast.NewNode(mdast.NodeListItem)
	mdast.AppendChild(item, mdast.NewText("a"))
	mdast.AppendChild(list, item)

	data, err := json.Marshal(mdast.Encode(list, false))
	if err != nil {
		t.Fatal(err)
	}

	got := string(data)
	want := `{"type":"list","ordered":false,"spread":false,"children":[{"type":"listItem","spread":false,"children":[{"type":"text","value":"a"}]}]}`
	if got != want {
		t.Errorf("expected\n%s\ngot\n%s", want, got)
	}

	withPositions, err := json.Marshal(mdast.Encode(list, true))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(withPositions), `"position":{"start":{"line":1,"column":1,"offset":0}`) {
		t.Errorf("expected position in %s", withPositions)
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	root := readme()
	link := mdast.NewNode(mdast.NodeLinkReference)
	link.Identifier = "x"
	link.Label = "X"
	link.ReferenceType = mdast.ReferenceFull
	mdast.AppendChild(root, link)

	decoded, err := mdast.Decode(mdast.Encode(root, true))
	if err != nil {
		t.Fatal(err)
	}

	if mdast.CountNodes(decoded) != mdast.CountNodes(root) {
		t.Fatalf("expected %d nodes, got %d", mdast.CountNodes(root), mdast.CountNodes(decoded))
	}
	if decoded.LastChild.ReferenceType != mdast.ReferenceFull || decoded.LastChild.Label != "X" {
		t.Errorf("reference attributes lost: %+v", decoded.LastChild)
	}
	if decoded.FirstChild.Depth != 1 || decoded.FirstChild.TextContent() != "Title" {
		t.Errorf("heading lost: %+v", decoded.FirstChild)
	}
}

func TestDecode_UnknownType(t *testing.T) {
	t.Parallel()

	if _, err := mdast.Decode(&mdast.Encoded{Type: "table"}); err == nil {
		t.Error("expected error for unknown type")
	}
}
