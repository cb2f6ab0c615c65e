package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"syncednotes/internal/application"
	"syncednotes/internal/application/commands"
	"syncednotes/internal/domain"
)

// RegisterWriteTools adds all tools that change the notes to the MCP server.
func RegisterWriteTools(s *server.MCPServer, store *application.NoteStore) {
	s.AddTool(addNoteTool(), addNoteHandler(store))
	s.AddTool(addFolderTool(), addFolderHandler(store))
	s.AddTool(renameTool(), renameHandler(store))
	s.AddTool(moveTool(), moveHandler(store))
	s.AddTool(deleteTool(), deleteHandler(store))
}

// noInteraction runs commands without prompting; every input comes from the
// tool arguments.
var noInteraction = commands.Interaction{}

// --- add_note ---

func addNoteTool() mcp.Tool {
	return mcp.NewTool("add_note",
		mcp.WithDescription("Create a note. The note is appended to the end of its folder."),
		mcp.WithString("parent",
			mcp.Description("Folder path to create the note in. Omit for the root level."),
		),
		mcp.WithString("label",
			mcp.Description("Name of the new note"),
			mcp.Required(),
		),
		mcp.WithString("content",
			mcp.Description("Note text"),
		),
	)
}

func addNoteHandler(store *application.NoteStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		parent, err := resolveFolder(store, req.GetString("parent", ""))
		if err != nil {
			return toolError(err)
		}
		content := req.GetString("content", "")

		cmd := commands.NewAddNoteCommand(store, noInteraction)
		cmd.Parent = parent
		cmd.Label = req.GetString("label", "")
		cmd.Content = &content
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- add_folder ---

func addFolderTool() mcp.Tool {
	return mcp.NewTool("add_folder",
		mcp.WithDescription("Create an empty folder."),
		mcp.WithString("parent",
			mcp.Description("Folder path to create the folder in. Omit for the root level."),
		),
		mcp.WithString("label",
			mcp.Description("Name of the new folder"),
			mcp.Required(),
		),
	)
}

func addFolderHandler(store *application.NoteStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		parent, err := resolveFolder(store, req.GetString("parent", ""))
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewAddFolderCommand(store, noInteraction)
		cmd.Parent = parent
		cmd.Label = req.GetString("label", "")
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- rename ---

func renameTool() mcp.Tool {
	return mcp.NewTool("rename",
		mcp.WithDescription("Rename a note or a folder."),
		mcp.WithString("path",
			mcp.Description("Path of the note or folder to rename"),
			mcp.Required(),
		),
		mcp.WithString("new_label",
			mcp.Description("New name"),
			mcp.Required(),
		),
	)
}

func renameHandler(store *application.NoteStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		n, err := lookup(store, req.GetString("path", ""))
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewRenameNoteCommand(store, noInteraction)
		if n.IsFolder() {
			cmd = commands.NewRenameFolderCommand(store, noInteraction)
		}
		cmd.Target = commands.At(n.ID())
		cmd.Label = req.GetString("new_label", "")
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- move ---

func moveTool() mcp.Tool {
	return mcp.NewTool("move",
		mcp.WithDescription("Move a note or a folder to the end of another folder, or to the root level."),
		mcp.WithString("path",
			mcp.Description("Path of the note or folder to move"),
			mcp.Required(),
		),
		mcp.WithString("destination",
			mcp.Description("Destination folder path. Omit or use / for the root level."),
		),
	)
}

func moveHandler(store *application.NoteStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		n, err := lookup(store, req.GetString("path", ""))
		if err != nil {
			return toolError(err)
		}
		dest, err := resolveFolder(store, req.GetString("destination", ""))
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewMoveNoteCommand(store, noInteraction)
		if n.IsFolder() {
			cmd = commands.NewMoveFolderCommand(store, noInteraction)
		}
		cmd.Source = commands.At(n.ID())
		cmd.Target = dest
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete",
		mcp.WithDescription("Delete a note, or a folder with everything in it. Non-empty folders need confirm=true."),
		mcp.WithString("path",
			mcp.Description("Path of the note or folder to delete"),
			mcp.Required(),
		),
		mcp.WithBoolean("confirm",
			mcp.Description("Confirm deleting a folder that is not empty"),
			mcp.DefaultBool(false),
		),
	)
}

func deleteHandler(store *application.NoteStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		n, err := lookup(store, req.GetString("path", ""))
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewDeleteNoteCommand(store, noInteraction)
		if n.IsFolder() {
			cmd = commands.NewDeleteFolderCommand(store, noInteraction)
		}
		cmd.Target = commands.At(n.ID())
		cmd.Confirmed = req.GetBool("confirm", false)
		result, err := cmd.Execute(ctx)
		if errors.Is(err, domain.ErrConfirmationRequired) {
			return toolError(fmt.Errorf("%w: pass confirm=true to delete %s", err, n.Label()))
		}
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

// NotifyTreeChanged tells connected clients the tree resource changed. It is
// meant for application.WithOnChange.
func NotifyTreeChanged(s *server.MCPServer) func(*domain.Tree) {
	return func(*domain.Tree) {
		s.SendNotificationToAllClients(mcp.MethodNotificationResourceUpdated, map[string]any{"uri": TreeURI})
	}
}
