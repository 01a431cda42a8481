package mcpServer

import (
	"context"
	"errors"
	"net/http"

	"github.com/akolanti/DocSummaryAPI/internal/domain/commonModels"
	"github.com/akolanti/DocSummaryAPI/internal/domain/summaryModel"
	"github.com/akolanti/DocSummaryAPI/internal/summary"
	"github.com/akolanti/DocSummaryAPI/pkg/logger_i"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName = "doc-summary"
	ToolName   = "summarize_document"
)

type SummarizeInput struct {
	Text        string `json:"text" jsonschema:"the full plain text of the document to summarize"`
	SummaryType string `json:"summary_type,omitempty" jsonschema:"short (default) for a citizen or detailed for a lawyer"`
	Language    string `json:"language,omitempty" jsonschema:"language of the summary, English when empty"`
}

type SummarizeOutput struct {
	Label   string `json:"label" jsonschema:"LegalDocument or GeneralDocument"`
	Summary string `json:"summary" jsonschema:"markdown summary"`
	Cached  bool   `json:"cached" jsonschema:"true when served from the summary cache"`
}

// NewServer exposes the summary service as an MCP tool.
func NewServer(svc summary.Service, version string) *mcp.Server {
	logger := logger_i.NewLogger("mcp_server")
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolName,
		Description: "Classify a document as legal or general and summarize it in the requested depth and language.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in SummarizeInput) (*mcp.CallToolResult, SummarizeOutput, error) {
		result, err := svc.Summarize(ctx, summaryModel.SummaryRequest{
			Document: commonModels.Document{Name: ToolName, Source: commonModels.SourceMCP, Text: in.Text},
			Depth:    summaryModel.ParseDepth(in.SummaryType),
			Language: summaryModel.NormalizeLanguage(in.Language),
		})
		if err != nil {
			logger.FromContext(ctx).Warn("tool call failed", "kind", summaryModel.Kind(err), "error", err)
			return nil, SummarizeOutput{}, errors.New(summaryModel.UserMessage(err))
		}
		return nil, SummarizeOutput{
			Label:   string(result.Label),
			Summary: result.Summary,
			Cached:  result.Cached,
		}, nil
	})
	return server
}

// NewHTTPHandler serves server over the streamable HTTP transport.
func NewHTTPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
}
