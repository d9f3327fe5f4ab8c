// Package capability exposes document operations as named, schema-described
// tools. One table drives both the listing and the dispatch so the two
// surfaces cannot drift apart.
package capability

import (
	"context"
	"encoding/json"
	"fmt"

	"archreview/internal/models"
	"archreview/internal/service/document"
)

// Handler executes a tool against decoded JSON input.
type Handler func(ctx context.Context, input json.RawMessage) (any, error)

// Tool is one invocable capability.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
	Handler     Handler         `json:"-"`
}

// Descriptor is the client-facing view of a tool, without the handler.
type Descriptor struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// ErrUnknownTool is returned by Call for names not in the table.
type ErrUnknownTool struct {
	Name string
}

func (e *ErrUnknownTool) Error() string { return fmt.Sprintf("unknown tool: %s", e.Name) }

// Registry holds the tool table.
type Registry struct {
	tools  []Tool
	byName map[string]*Tool
}

func NewRegistry(docs *document.Service) *Registry {
	r := &Registry{byName: make(map[string]*Tool)}
	r.tools = documentTools(docs)
	for i := range r.tools {
		r.byName[r.tools[i].Name] = &r.tools[i]
	}
	return r
}

// List returns the descriptors in table order.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, len(r.tools))
	for i, t := range r.tools {
		out[i] = Descriptor{Name: t.Name, Description: t.Description, InputSchema: t.InputSchema}
	}
	return out
}

// Call dispatches input to the named tool.
func (r *Registry) Call(ctx context.Context, name string, input json.RawMessage) (any, error) {
	tool, ok := r.byName[name]
	if !ok {
		return nil, &ErrUnknownTool{Name: name}
	}
	if len(input) == 0 {
		input = json.RawMessage(`{}`)
	}
	return tool.Handler(ctx, input)
}

func documentTools(docs *document.Service) []Tool {
	return []Tool{
		{
			Name:        "get_document",
			Description: "Fetch one document's metadata and a presigned download URL by documentId.",
			InputSchema: json.RawMessage(`{"type":"object","properties":{"documentId":{"type":"string"}},"required":["documentId"]}`),
			Handler: func(ctx context.Context, input json.RawMessage) (any, error) {
				var args struct {
					DocumentID string `json:"documentId"`
				}
				if err := json.Unmarshal(input, &args); err != nil {
					return nil, fmt.Errorf("decode input: %w", err)
				}
				return docs.Get(ctx, args.DocumentID)
			},
		},
		{
			Name:        "list_documents",
			Description: "List uploaded documents, newest first, with page and limit.",
			InputSchema: json.RawMessage(`{"type":"object","properties":{"page":{"type":"integer","default":1},"limit":{"type":"integer","default":20}}}`),
			Handler: func(ctx context.Context, input json.RawMessage) (any, error) {
				args := struct {
					Page  int `json:"page"`
					Limit int `json:"limit"`
				}{Page: 1, Limit: models.DefaultPageSize}
				if err := json.Unmarshal(input, &args); err != nil {
					return nil, fmt.Errorf("decode input: %w", err)
				}
				return docs.List(ctx, args.Page, args.Limit)
			},
		},
		{
			Name:        "update_review",
			Description: "Patch review fields (reviewer, architectureOverview, dates, completion) on a document.",
			InputSchema: json.RawMessage(`{"type":"object","properties":{"documentId":{"type":"string"},"reviewer":{"type":"string"},"architectureOverview":{"type":"string"},"reviewDate":{"type":"string"},"completeDate":{"type":"string"},"reviewCompleted":{"type":"boolean"},"reviewResultLocation":{"type":"string"}},"required":["documentId"]}`),
			Handler: func(ctx context.Context, input json.RawMessage) (any, error) {
				var args struct {
					DocumentID string `json:"documentId"`
					models.ReviewPatch
				}
				if err := json.Unmarshal(input, &args); err != nil {
					return nil, fmt.Errorf("decode input: %w", err)
				}
				return docs.UpdateReview(ctx, args.DocumentID, args.ReviewPatch)
			},
		},
		{
			Name:        "save_review_to_s3",
			Description: "Store review text for a document and record its location on the metadata record.",
			InputSchema: json.RawMessage(`{"type":"object","properties":{"documentId":{"type":"string"},"reviewContent":{"type":"string"},"filename":{"type":"string","default":"review.txt"}},"required":["documentId","reviewContent"]}`),
			Handler: func(ctx context.Context, input json.RawMessage) (any, error) {
				var args struct {
					DocumentID    string `json:"documentId"`
					ReviewContent string `json:"reviewContent"`
					Filename      string `json:"filename"`
				}
				if err := json.Unmarshal(input, &args); err != nil {
					return nil, fmt.Errorf("decode input: %w", err)
				}
				return docs.SaveReview(ctx, args.DocumentID, args.ReviewContent, args.Filename)
			},
		},
	}
}
