package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"syncednotes/internal/application"
	"syncednotes/internal/application/commands"
	"syncednotes/internal/domain"
)

// TreeURI is the resource holding the rendered note tree
const TreeURI = "syncednotes://tree"

// RegisterReadTools adds all read-only note tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, store *application.NoteStore) {
	s.AddTool(treeTool(), treeHandler(store))
	s.AddTool(showTool(), showHandler(store))
	s.AddTool(searchTool(), searchHandler(store))
	s.AddTool(refreshTool(), refreshHandler(store))
	s.AddResource(
		mcp.NewResource(TreeURI, "Note tree",
			mcp.WithResourceDescription("All folders and notes in settings order."),
			mcp.WithMIMEType("text/plain"),
		),
		treeResource(store),
	)
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Display the notes as a tree. Folders end with a slash."),
		mcp.WithString("path",
			mcp.Description("Folder path to list (e.g. Work/Meetings). Omit to list everything."),
		),
		mcp.WithNumber("depth",
			mcp.Description("Maximum depth to list. Omit or 0 for no limit."),
			mcp.Min(0),
		),
	)
}

func treeHandler(store *application.NoteStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewTreeCommand(store)
		cmd.MaxDepth = req.GetInt("depth", 0)
		if path := req.GetString("path", ""); path != "" {
			n, err := application.Resolve(store.Snapshot(), path)
			if err != nil {
				return toolError(err)
			}
			cmd.Root = commands.At(n.ID())
		}

		lines, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(lines) == 0 {
			return mcp.NewToolResultText("No notes."), nil
		}
		return mcp.NewToolResultText(renderTree(lines)), nil
	}
}

func treeResource(store *application.NoteStore) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		lines, err := commands.NewTreeCommand(store).Execute(ctx)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: TreeURI, MIMEType: "text/plain", Text: renderTree(lines)},
		}, nil
	}
}

func renderTree(lines []commands.TreeLine) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(strings.Repeat("  ", l.Depth))
		sb.WriteString(l.Label)
		if l.Kind == domain.KindFolder {
			sb.WriteByte('/')
		}
		if l.Unreadable {
			sb.WriteString("  (unreadable)")
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- show ---

func showTool() mcp.Tool {
	return mcp.NewTool("show",
		mcp.WithDescription("Read the decoded text of a note."),
		mcp.WithString("path",
			mcp.Description("Note path (e.g. Work/Meetings/standup)"),
			mcp.Required(),
		),
	)
}

func showHandler(store *application.NoteStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		n, err := lookup(store, req.GetString("path", ""))
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewShowNoteCommand(store, commands.Interaction{}, nil)
		cmd.Note = commands.At(n.ID())
		res, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(res.Text), nil
	}
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Fuzzy search note and folder names, paths and note text."),
		mcp.WithString("query",
			mcp.Description("Search query, at least two characters"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results"),
			mcp.DefaultNumber(20),
			mcp.Min(1),
		),
	)
}

func searchHandler(store *application.NoteStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		cmd := commands.NewSearchCommand(store, query)
		cmd.Limit = req.GetInt("limit", 20)
		results, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			fmt.Fprintf(&sb, "%s  [%s]", r.Path, r.Kind)
			if r.Snippet != "" {
				fmt.Fprintf(&sb, "  %s", r.Snippet)
			}
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- refresh ---

func refreshTool() mcp.Tool {
	return mcp.NewTool("refresh",
		mcp.WithDescription("Reload the notes from the settings file."),
	)
}

func refreshHandler(store *application.NoteStore) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := commands.NewRefreshCommand(store).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(res.Message), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

// lookup finds a node by label path
func lookup(store *application.NoteStore, path string) (*domain.Node, error) {
	if len(application.SplitPath(path)) == 0 {
		return nil, fmt.Errorf("path is required")
	}
	return application.Resolve(store.Snapshot(), path)
}

// resolveFolder looks up a destination folder. An empty path or "/" is the
// root level.
func resolveFolder(store *application.NoteStore, path string) (*domain.NodeID, error) {
	if len(application.SplitPath(path)) == 0 {
		return commands.At(domain.RootLevel), nil
	}
	n, err := application.Resolve(store.Snapshot(), path)
	if err != nil {
		return nil, err
	}
	if !n.IsFolder() {
		return nil, fmt.Errorf("%w: %s is a note", application.ErrInvalidPath, path)
	}
	return commands.At(n.ID()), nil
}
