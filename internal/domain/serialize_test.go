package domain

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func drawEntries(t *rapid.T, depth int, name string) []Entry {
	n := rapid.IntRange(0, 4).Draw(t, name+".len")
	entries := make([]Entry, 0, n)
	for i := range n {
		prefix := fmt.Sprintf("%s[%d]", name, i)
		label := rapid.StringMatching(`[A-Za-z0-9 <>&"\\/é_-]{1,12}`).Draw(t, prefix+".label")
		folder := depth > 0 && rapid.Bool().Draw(t, prefix+".folder")
		if folder {
			entries = append(entries, Entry{
				Label:    label,
				Folder:   true,
				Children: drawEntries(t, depth-1, prefix),
			})
			continue
		}
		content := rapid.String().Draw(t, prefix+".content")
		entries = append(entries, Entry{Label: label, Content: Encode(content)})
	}
	return entries
}

func testTree_Roundtrip_Properties(t *rapid.T) {
	var buf bytes.Buffer
	if err := writeEntries(&buf, drawEntries(t, 3, "root")); err != nil {
		t.Fatalf("writeEntries failed: %v", err)
	}
	input := buf.Bytes()

	tree, err := Build(input)
	if err != nil {
		t.Fatalf("Build failed on %s: %v", input, err)
	}
	output, err := Serialize(tree)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !bytes.Equal(input, output) {
		t.Fatalf("roundtrip mismatch:\n in: %s\nout: %s", input, output)
	}
}

func TestTree_Roundtrip_Properties(t *testing.T) {
	rapid.Check(t, testTree_Roundtrip_Properties)
}

func FuzzTree_Roundtrip_Properties(f *testing.F) {
	f.Fuzz(rapid.MakeFuzz(testTree_Roundtrip_Properties))
}

func TestBuild_FolderAndLeaf(t *testing.T) {
	input := `[{"A": [{"x":"encoded1"}]}, {"B":"encoded2"}]`

	tree, err := Build([]byte(input))
	require.NoError(t, err)

	roots := tree.Roots()
	require.Len(t, roots, 2)

	a, b := roots[0], roots[1]
	assert.Equal(t, "A", a.Label())
	assert.True(t, a.IsFolder())
	assert.True(t, b.IsNote())
	assert.Equal(t, "encoded2", b.EncodedContent())

	children := tree.Children(a.ID(), AllChildren)
	require.Len(t, children, 1)
	assert.Equal(t, "x", children[0].Label())
	assert.Equal(t, "encoded1", children[0].EncodedContent())
	assert.Equal(t, a.ID(), children[0].Parent())

	out, err := Serialize(tree)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))
	assert.Equal(t, `[{"A":[{"x":"encoded1"}]},{"B":"encoded2"}]`, string(out))
}

func TestBuild_Empty(t *testing.T) {
	for _, input := range []string{"", "  ", "null", "[]", "[ ]"} {
		t.Run(fmt.Sprintf("%q", input), func(t *testing.T) {
			tree, err := Build([]byte(input))
			require.NoError(t, err)
			assert.Empty(t, tree.Roots())

			out, err := Serialize(tree)
			require.NoError(t, err)
			assert.Equal(t, "[]", string(out))
		})
	}
}

func TestBuild_EmptyFolder(t *testing.T) {
	tree, err := Build([]byte(`[{"Inbox":[]}]`))
	require.NoError(t, err)

	roots := tree.Roots()
	require.Len(t, roots, 1)
	assert.True(t, roots[0].IsEmptyFolder())

	out, err := Serialize(tree)
	require.NoError(t, err)
	assert.Equal(t, `[{"Inbox":[]}]`, string(out))
}

func TestBuild_MultiKeyObjectExpandsToSiblings(t *testing.T) {
	tree, err := Build([]byte(`[{"z":"1","a":"2","m":[]}]`))
	require.NoError(t, err)

	assert.Equal(t, []string{"z", "a", "m"}, labels(tree.Roots()))

	out, err := Serialize(tree)
	require.NoError(t, err)
	assert.Equal(t, `[{"z":"1"},{"a":"2"},{"m":[]}]`, string(out))
}

func TestBuild_PreservesDocumentOrder(t *testing.T) {
	input := `[{"zeta":"1"},{"alpha":[{"b":"2"},{"a":"3"}]},{"mid":"4"}]`

	tree, err := Build([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, labels(tree.Roots()))

	out, err := Serialize(tree)
	require.NoError(t, err)
	assert.Equal(t, input, string(out))
}

func TestBuild_EscapedLabels(t *testing.T) {
	input := `[{"quote \"q\" é <b>":"x"}]`

	tree, err := Build([]byte(input))
	require.NoError(t, err)
	require.Len(t, tree.Roots(), 1)
	assert.Equal(t, `quote "q" é <b>`, tree.Roots()[0].Label())

	out, err := Serialize(tree)
	require.NoError(t, err)
	assert.Equal(t, `[{"quote \"q\" é <b>":"x"}]`, string(out))
}

func TestBuild_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantPath string
	}{
		{"root object", `{"A":"x"}`, ""},
		{"root string", `"notes"`, ""},
		{"element not object", `["x"]`, "$[0]"},
		{"object value", `[{"A":{"x":"y"}}]`, "$[0].A"},
		{"number value", `[{"A":[{"n":1}]}]`, "$[0].A[0].n"},
		{"nested element not object", `[{"A":[true]}]`, "$[0].A[0]"},
		{"empty mapping", `[{}]`, "$[0]"},
		{"nested empty mapping", `[{"A":[{"n":"x"},{}]}]`, "$[0].A[1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build([]byte(tt.input))
			var malformed *MalformedTreeError
			require.True(t, errors.As(err, &malformed), "got %v", err)
			assert.Equal(t, tt.wantPath, malformed.Path)
		})
	}
}

func TestBuild_WithVisit(t *testing.T) {
	var visited []string
	_, err := Build([]byte(`[{"A":[{"x":"1"}]},{"B":"2"}]`), WithVisit(func(path string, kind Kind) {
		visited = append(visited, path+":"+kind.String())
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"$[0].A:folder", "$[0].A[0].x:note", "$[1].B:note"}, visited)
}

func TestSerialize_AfterMutations(t *testing.T) {
	tree, err := Build([]byte(`[]`))
	require.NoError(t, err)

	c, err := tree.NewFolder("C")
	require.NoError(t, err)
	require.NoError(t, tree.AddRoot(c))

	y, err := tree.NewNote("y", "hello")
	require.NoError(t, err)
	require.NoError(t, tree.AddChild(c, y))
	require.NoError(t, tree.MoveToRoot(y))

	folder, _ := tree.Node(c)
	assert.True(t, folder.IsEmptyFolder())
	note, _ := tree.Node(y)
	assert.True(t, note.IsInRoot())

	out, err := Serialize(tree)
	require.NoError(t, err)
	assert.Equal(t, `[{"C":[]},{"y":"`+Encode("hello")+`"}]`, string(out))
}

func TestSerialize_RenameKeepsChildren(t *testing.T) {
	tree, ids := sampleTree(t)
	work, _ := tree.Node(ids["Work"])
	before := work.ChildIDs()

	require.NoError(t, tree.Rename(ids["Work"], "Job"))

	assert.Equal(t, "Job", work.Label())
	assert.Equal(t, before, work.ChildIDs())
	for _, c := range tree.Children(ids["Work"], AllChildren) {
		assert.Equal(t, ids["Work"], c.Parent())
	}
	content, err := tree.Content(ids["standup"])
	require.NoError(t, err)
	assert.Equal(t, "daily at 9", content)
}

func TestSerialize_ReparentDoesNotDuplicate(t *testing.T) {
	tree, ids := sampleTree(t)
	require.NoError(t, tree.Reparent(ids["Meetings"], ids["Empty"]))

	count := 0
	tree.Walk(func(n *Node, _ int) bool {
		if n.ID() == ids["Meetings"] {
			count++
		}
		return true
	})
	assert.Equal(t, 1, count)

	out, err := Serialize(tree)
	require.NoError(t, err)
	rebuilt, err := Build(out)
	require.NoError(t, err)
	assert.Equal(t,
		labels(tree.ChildrenRecursive(RootLevel, AllChildren)),
		labels(rebuilt.ChildrenRecursive(RootLevel, AllChildren)))
}

func TestEntry_MarshalJSON(t *testing.T) {
	e := Entry{Label: "a&b", Folder: true, Children: []Entry{{Label: "n", Content: "abc="}}}
	data, err := e.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"a&b":[{"n":"abc="}]}`, string(data))
}
