package blogserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterTools registers blog_generate, blog_save and blog_history.
func RegisterTools(server *mcp.Server, svc *Service) {
	registerGenerate(server, svc)
	registerSave(server, svc)
	registerHistory(server, svc)
}

func registerGenerate(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "blog_generate",
		Description: "Generate a technical blog post from a YouTube video transcript and the code files at the root of a GitHub repository. Runs transcript, code, summary and format stages; a failed stage is reported in stages[] and the run continues. Returns a run_id for blog_save, the styled Markdown content, and optionally an HTML preview.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input GenerateInput) (*mcp.CallToolResult, *GenerateOutput, error) {
		out, err := svc.Generate(ctx, input)
		if err != nil {
			return nil, nil, err
		}
		return nil, out, nil
	})
}

func registerSave(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "blog_save",
		Description: "Save the article of a blog_generate run as blog_<YYYYMMDD_HHMMSS>.md in the output directory and record it in the archive when one is configured. Returns the file path.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input SaveInput) (*mcp.CallToolResult, *SaveOutput, error) {
		out, err := svc.Save(ctx, input)
		if err != nil {
			return nil, nil, err
		}
		return nil, out, nil
	})
}

func registerHistory(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "blog_history",
		Description: "List saved articles from the archive, newest first. Requires ARCHIVE_DSN.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input HistoryInput) (*mcp.CallToolResult, *HistoryOutput, error) {
		out, err := svc.History(ctx, input)
		if err != nil {
			return nil, nil, err
		}
		return nil, out, nil
	})
}
