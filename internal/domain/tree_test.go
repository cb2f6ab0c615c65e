package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleTree builds:
//
//	Work/
//	  Meetings/
//	    standup
//	  todo
//	Empty/
//	readme
func sampleTree(t *testing.T) (*Tree, map[string]NodeID) {
	t.Helper()
	tree := NewTree()
	ids := map[string]NodeID{}

	mustFolder := func(label string) NodeID {
		id, err := tree.NewFolder(label)
		require.NoError(t, err)
		ids[label] = id
		return id
	}
	mustNote := func(label, content string) NodeID {
		id, err := tree.NewNote(label, content)
		require.NoError(t, err)
		ids[label] = id
		return id
	}

	work := mustFolder("Work")
	meetings := mustFolder("Meetings")
	standup := mustNote("standup", "daily at 9")
	todo := mustNote("todo", "- ship it")
	empty := mustFolder("Empty")
	readme := mustNote("readme", "hello")

	require.NoError(t, tree.AddRoot(work))
	require.NoError(t, tree.AddRoot(empty))
	require.NoError(t, tree.AddRoot(readme))
	require.NoError(t, tree.AddChild(work, meetings))
	require.NoError(t, tree.AddChild(meetings, standup))
	require.NoError(t, tree.AddChild(work, todo))

	return tree, ids
}

func labels(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Label())
	}
	return out
}

func TestTree_NewNodes(t *testing.T) {
	tree := NewTree()

	folder, err := tree.NewFolder("Projects")
	require.NoError(t, err)
	n, ok := tree.Node(folder)
	require.True(t, ok)
	assert.True(t, n.IsFolder())
	assert.True(t, n.IsEmptyFolder())
	assert.True(t, tree.IsDetached(folder))

	note, err := tree.NewNote("idea", "some text")
	require.NoError(t, err)
	content, err := tree.Content(note)
	require.NoError(t, err)
	assert.Equal(t, "some text", content)

	_, err = tree.NewFolder("   ")
	assert.ErrorIs(t, err, ErrEmptyLabel)
	_, err = tree.NewNote("", "x")
	assert.ErrorIs(t, err, ErrEmptyLabel)
	_, err = tree.NewFolder("a/b")
	assert.ErrorIs(t, err, ErrSlashInLabel)
	_, err = tree.NewNote("2024/01", "x")
	assert.ErrorIs(t, err, ErrSlashInLabel)
}

func TestTree_Children(t *testing.T) {
	tree, ids := sampleTree(t)

	assert.Equal(t, []string{"Work", "Empty", "readme"}, labels(tree.Children(RootLevel, AllChildren)))
	assert.Equal(t, []string{"Work", "readme"}, labels(tree.Children(RootLevel, NonEmptyTree)))
	assert.Equal(t, []string{"Work", "Empty"}, labels(tree.Children(RootLevel, OnlyFolders)))
	assert.Equal(t, []string{"readme"}, labels(tree.Children(RootLevel, OnlyNotes)))
	assert.Equal(t, []string{"Meetings", "todo"}, labels(tree.Children(ids["Work"], AllChildren)))
	assert.Empty(t, tree.Children(ids["readme"], AllChildren))

	assert.Equal(t,
		[]string{"Work", "Meetings", "standup", "todo", "Empty", "readme"},
		labels(tree.ChildrenRecursive(RootLevel, AllChildren)))
	assert.Equal(t,
		[]string{"Work", "Meetings", "Empty"},
		labels(tree.ChildrenRecursive(RootLevel, OnlyFolders)))
}

func TestTree_Queries(t *testing.T) {
	tree, ids := sampleTree(t)

	assert.True(t, tree.HasSubfolders(ids["Work"]))
	assert.False(t, tree.HasSubfolders(ids["Meetings"]))
	assert.True(t, tree.ContainsNoteRecursive(ids["Work"]))
	assert.False(t, tree.ContainsNoteRecursive(ids["Empty"]))
	assert.True(t, tree.IsAncestor(ids["Work"], ids["standup"]))
	assert.False(t, tree.IsAncestor(ids["standup"], ids["Work"]))
	assert.False(t, tree.IsAncestor(ids["Work"], ids["Work"]))
	assert.Equal(t, []string{"Work", "Meetings", "standup"}, tree.Path(ids["standup"]))
	assert.Equal(t, 2, tree.Depth(ids["standup"]))
	assert.Equal(t, 0, tree.Depth(ids["readme"]))
}

func TestTree_AddChild_Errors(t *testing.T) {
	tree, ids := sampleTree(t)

	err := tree.AddChild(ids["readme"], ids["todo"])
	assert.ErrorIs(t, err, ErrNotFolder)

	err = tree.AddChild(ids["Empty"], ids["todo"])
	assert.ErrorIs(t, err, ErrAttached)

	err = tree.AddChild(ids["Empty"], NodeID("missing"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTree_RemoveChild(t *testing.T) {
	tree, ids := sampleTree(t)

	require.NoError(t, tree.RemoveChild(ids["Work"], ids["todo"]))
	assert.Equal(t, []string{"Meetings"}, labels(tree.Children(ids["Work"], AllChildren)))
	assert.True(t, tree.IsDetached(ids["todo"]))

	err := tree.RemoveChild(ids["Work"], ids["todo"])
	assert.ErrorIs(t, err, ErrNotChild)

	// a detached node can be attached again
	require.NoError(t, tree.AddChild(ids["Empty"], ids["todo"]))
	n, _ := tree.Node(ids["todo"])
	assert.Equal(t, ids["Empty"], n.Parent())
}

func TestTree_Reparent(t *testing.T) {
	tree, ids := sampleTree(t)

	require.NoError(t, tree.Reparent(ids["readme"], ids["Meetings"]))
	assert.Equal(t, []string{"Work", "Empty"}, labels(tree.Roots()))
	assert.Equal(t, []string{"standup", "readme"}, labels(tree.Children(ids["Meetings"], AllChildren)))

	n, _ := tree.Node(ids["readme"])
	assert.Equal(t, ids["Meetings"], n.Parent())
	assert.False(t, n.IsInRoot())
}

func TestTree_Reparent_RejectsCycles(t *testing.T) {
	tree, ids := sampleTree(t)
	before, err := Serialize(tree)
	require.NoError(t, err)

	tests := []struct {
		name   string
		node   NodeID
		target NodeID
	}{
		{"into itself", ids["Work"], ids["Work"]},
		{"into child", ids["Work"], ids["Meetings"]},
		{"into a note", ids["todo"], ids["readme"]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tree.Reparent(tt.node, tt.target)
			var moveErr *InvalidMoveError
			require.True(t, errors.As(err, &moveErr), "got %v", err)

			after, err := Serialize(tree)
			require.NoError(t, err)
			assert.Equal(t, string(before), string(after))
		})
	}
}

func TestTree_MoveToRoot(t *testing.T) {
	tree, ids := sampleTree(t)

	require.NoError(t, tree.MoveToRoot(ids["standup"]))
	assert.Equal(t, []string{"Work", "Empty", "readme", "standup"}, labels(tree.Roots()))
	assert.Empty(t, tree.Children(ids["Meetings"], AllChildren))

	// already in root: no change
	require.NoError(t, tree.MoveToRoot(ids["Work"]))
	assert.Equal(t, []string{"Work", "Empty", "readme", "standup"}, labels(tree.Roots()))
}

func TestTree_RootListIsCopyOnWrite(t *testing.T) {
	tree, ids := sampleTree(t)

	snapshot := tree.RootIDs()
	require.NoError(t, tree.MoveToRoot(ids["todo"]))
	require.NoError(t, tree.Delete(ids["Empty"], false))

	assert.Len(t, snapshot, 3)
	assert.Equal(t, ids["Empty"], snapshot[1])
	assert.Len(t, tree.RootIDs(), 3)
}

func TestTree_Rename(t *testing.T) {
	tree, ids := sampleTree(t)

	require.NoError(t, tree.Rename(ids["todo"], "readme"))
	n, _ := tree.Node(ids["todo"])
	assert.Equal(t, "readme", n.Label())

	assert.ErrorIs(t, tree.Rename(ids["todo"], ""), ErrEmptyLabel)
	assert.ErrorIs(t, tree.Rename(ids["todo"], "Work/todo"), ErrSlashInLabel)
	assert.Equal(t, "readme", n.Label())
}

func TestTree_Delete(t *testing.T) {
	t.Run("note", func(t *testing.T) {
		tree, ids := sampleTree(t)
		require.NoError(t, tree.Delete(ids["todo"], false))
		assert.Equal(t, []string{"Meetings"}, labels(tree.Children(ids["Work"], AllChildren)))
		_, ok := tree.Node(ids["todo"])
		assert.False(t, ok)
	})

	t.Run("empty folder needs no confirmation", func(t *testing.T) {
		tree, ids := sampleTree(t)
		require.NoError(t, tree.Delete(ids["Empty"], false))
		assert.Equal(t, []string{"Work", "readme"}, labels(tree.Roots()))
	})

	t.Run("non-empty folder without confirmation", func(t *testing.T) {
		tree, ids := sampleTree(t)
		err := tree.Delete(ids["Work"], false)
		assert.ErrorIs(t, err, ErrConfirmationRequired)
		assert.Equal(t, []string{"Work", "Empty", "readme"}, labels(tree.Roots()))
		assert.Equal(t, 6, tree.Len())
	})

	t.Run("non-empty folder confirmed", func(t *testing.T) {
		tree, ids := sampleTree(t)
		require.NoError(t, tree.Delete(ids["Work"], true))
		assert.Equal(t, []string{"Empty", "readme"}, labels(tree.Roots()))
		assert.Equal(t, 2, tree.Len())
		_, ok := tree.Node(ids["standup"])
		assert.False(t, ok)
	})
}

func TestTree_SetContent(t *testing.T) {
	tree, ids := sampleTree(t)

	require.NoError(t, tree.SetContent(ids["todo"], "- done"))
	got, err := tree.Content(ids["todo"])
	require.NoError(t, err)
	assert.Equal(t, "- done", got)

	assert.ErrorIs(t, tree.SetContent(ids["Work"], "x"), ErrNotNote)
	_, err = tree.Content(ids["Work"])
	assert.ErrorIs(t, err, ErrNotNote)
}

func TestTree_Walk(t *testing.T) {
	tree, _ := sampleTree(t)

	var visited []string
	tree.Walk(func(n *Node, depth int) bool {
		visited = append(visited, n.Label())
		return n.Label() != "Meetings"
	})
	assert.Equal(t, []string{"Work", "Meetings", "todo", "Empty", "readme"}, visited)
}

func TestTree_Clone(t *testing.T) {
	tree, ids := sampleTree(t)
	clone := tree.Clone()

	require.NoError(t, clone.Rename(ids["Work"], "Job"))
	require.NoError(t, clone.MoveToRoot(ids["standup"]))
	require.NoError(t, clone.Delete(ids["todo"], false))

	n, _ := tree.Node(ids["Work"])
	assert.Equal(t, "Work", n.Label())
	assert.Equal(t, []string{"Work", "Empty", "readme"}, labels(tree.Roots()))
	assert.Equal(t, []string{"Meetings", "todo"}, labels(tree.Children(ids["Work"], AllChildren)))
	assert.Equal(t, []string{"standup"}, labels(tree.Children(ids["Meetings"], AllChildren)))
}

func TestNode_ViewState(t *testing.T) {
	tree, ids := sampleTree(t)

	work, _ := tree.Node(ids["Work"])
	assert.Equal(t, ViewState{Icon: "folder", ContextValue: "folder", Collapsible: true}, work.ViewState())

	todo, _ := tree.Node(ids["todo"])
	assert.Equal(t, ViewState{Icon: "file", ContextValue: "note", Command: "show-note"}, todo.ViewState())
}

func TestTempFileName(t *testing.T) {
	tree := NewTree()
	a, _ := tree.NewNote("My Note / draft", "")
	b, _ := tree.NewNote("My Note / draft", "")
	na, _ := tree.Node(a)
	nb, _ := tree.Node(b)

	assert.Equal(t, "My-Note-draft-"+a.Short()+".md", TempFileName(na))
	assert.NotEqual(t, TempFileName(na), TempFileName(nb))

	assert.Equal(t, "note", SanitizeLabel("///"))
	assert.Equal(t, "日記", SanitizeLabel("日記"))
}
