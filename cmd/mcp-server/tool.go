package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"shopifyproduct.com/pkg/shopify"
)

const toolName = "create_shopify_product"

type productCreator interface {
	CreateProduct(ctx context.Context, in shopify.ProductInput) (*shopify.CreationResult, error)
}

func newServer(c productCreator, log *zap.Logger) *server.MCPServer {
	s := server.NewMCPServer("shopify", version, server.WithToolCapabilities(false))
	s.AddTool(productTool(), createProductHandler(c, log))
	return s
} // ./newServer

func productTool() mcp.Tool {
	str := map[string]any{"type": "string"}
	return mcp.NewTool(toolName,
		mcp.WithDescription("Create a product in the Shopify store, with optional variants, media, collections and metafields."),
		mcp.WithString("title", mcp.Required(), mcp.Description("product title")),
		mcp.WithString("descriptionHtml", mcp.Description("description as HTML")),
		mcp.WithString("productType"),
		mcp.WithString("vendor"),
		mcp.WithString("handle", mcp.Description("URL handle, derived from the title when empty")),
		mcp.WithArray("tags", mcp.Items(str)),
		mcp.WithString("status", mcp.Enum(string(shopify.StatusActive), string(shopify.StatusDraft)), mcp.Description("defaults to ACTIVE")),
		mcp.WithObject("seo", mcp.Properties(map[string]any{
			"title":       str,
			"description": str,
		})),
		mcp.WithBoolean("giftCard"),
		mcp.WithBoolean("requiresSellingPlan"),
		mcp.WithArray("productOptions", mcp.Description("options as {name, values}"), mcp.Items(map[string]any{"type": "object"})),
		mcp.WithArray("variants", mcp.Description("variants as ProductVariantsBulkInput fields"), mcp.Items(map[string]any{"type": "object"})),
		mcp.WithArray("media", mcp.Description("media as {type, src, alt}"), mcp.Items(map[string]any{"type": "object"})),
		mcp.WithArray("collectionsToJoin", mcp.Description("collection ids"), mcp.Items(str)),
		mcp.WithArray("metafields", mcp.Description("metafields as {namespace, key, value, type}"), mcp.Items(map[string]any{"type": "object"})),
	)
} // ./productTool

// createProductHandler answers with text in both outcomes. Failures are tool
// errors, not protocol errors, so the model can read and correct them.
func createProductHandler(c productCreator, log *zap.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in, err := decodeProductInput(req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError("Error creating product: " + err.Error()), nil
		}

		rs, err := c.CreateProduct(ctx, in)
		if err != nil {
			log.Warn("tool call failed", zap.String("tool", toolName), zap.Error(err))
			msg := "Error creating product: " + err.Error()
			if id := rs.ProductID(); id != "" {
				msg += fmt.Sprintf("\nProduct %s was created but not completed", id)
			}
			return mcp.NewToolResultError(msg), nil
		}

		out, err := json.MarshalIndent(rs, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "encode result")
		}
		var b strings.Builder
		b.WriteString("Product creation successful\n")
		b.WriteString("Response: ")
		b.Write(out)
		return mcp.NewToolResultText(b.String()), nil
	}
} // ./createProductHandler

// decodeProductInput maps the tool arguments onto ProductInput, whose JSON
// names are the tool's argument names.
func decodeProductInput(args map[string]any) (shopify.ProductInput, error) {
	var in shopify.ProductInput
	data, err := json.Marshal(args)
	if err != nil {
		return in, errors.Wrap(err, "arguments")
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return in, errors.Wrap(err, "arguments")
	}
	return in, nil
} // ./decodeProductInput
