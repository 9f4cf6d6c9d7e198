// Package mcptools exposes the authentication layer as MCP tools built
// on the official modelcontextprotocol go-sdk. The handlers show the
// calling pattern every authenticated tool follows: validate the
// credential's shape first (no I/O), then authenticate, then act.
//
// Error translation happens here: the closed taxonomy from the auth
// package is mapped to generic protocol-level rejections so store
// hostnames and internal detail never reach the end client.
package mcptools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/davrow/mcp-auth-go/auth"
	"github.com/davrow/mcp-auth-go/auth/sessionauth"
	"github.com/davrow/mcp-auth-go/internal/logctx"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tools bundles the tool handlers fronting an auth.Provider.
type Tools struct {
	provider auth.Provider
	sessions *sessionauth.Service
	log      *slog.Logger
}

// Option configures Tools.
type Option func(*Tools)

// WithSessionService enables the token-level tools. The service may be
// the same value as the provider when session auth is configured.
func WithSessionService(svc *sessionauth.Service) Option {
	return func(t *Tools) { t.sessions = svc }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(t *Tools) { t.log = log }
}

// New creates the tool set around provider.
func New(provider auth.Provider, opts ...Option) *Tools {
	t := &Tools{provider: provider, log: slog.Default()}
	for _, opt := range opts {
		opt(t)
	}
	// Session providers get the token tools without extra wiring.
	if t.sessions == nil {
		if svc, ok := provider.(*sessionauth.Service); ok {
			t.sessions = svc
		}
	}
	return t
}

// Register adds the tools to server. The token-scope tool is only
// registered when a session service is available.
func (t *Tools) Register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "authenticated_action",
		Description: "Perform an action on behalf of an authenticated user.",
	}, t.AuthenticatedAction)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "whoami",
		Description: "Resolve a credential to the identity it belongs to.",
	}, t.WhoAmI)
	if t.sessions != nil {
		mcp.AddTool(server, &mcp.Tool{
			Name:        "linked_token_scopes",
			Description: "Inspect the linked OAuth token for a session's user and check a scope.",
		}, t.LinkedTokenScopes)
	}
}

// AuthenticatedActionArgs is the input to the authenticated_action tool.
type AuthenticatedActionArgs struct {
	Credential string `json:"credential" jsonschema:"authentication credential (API key or session ID)"`
	Action     string `json:"action" jsonschema:"the action to perform"`
}

// AuthenticatedAction validates and authenticates the credential, then
// reports the action as performed for the resolved user.
func (t *Tools) AuthenticatedAction(ctx context.Context, req *mcp.CallToolRequest, args AuthenticatedActionArgs) (*mcp.CallToolResult, any, error) {
	ctx = logctx.WithToolCallData(ctx, &logctx.ToolCallData{ToolName: "authenticated_action"})

	id, res := t.resolve(ctx, args.Credential)
	if res != nil {
		return res, nil, nil
	}

	text := fmt.Sprintf(
		"Authenticated Action:\n• User ID: %s\n• Action: %s\n• Auth Type: %s\n• Status: Success",
		id.UserID, args.Action, id.Metadata[auth.MetaAuthType],
	)
	return textResult(text), nil, nil
}

// WhoAmIArgs is the input to the whoami tool.
type WhoAmIArgs struct {
	Credential string `json:"credential" jsonschema:"authentication credential (API key or session ID)"`
}

// WhoAmI resolves a credential to its identity.
func (t *Tools) WhoAmI(ctx context.Context, req *mcp.CallToolRequest, args WhoAmIArgs) (*mcp.CallToolResult, any, error) {
	ctx = logctx.WithToolCallData(ctx, &logctx.ToolCallData{ToolName: "whoami"})

	id, res := t.resolve(ctx, args.Credential)
	if res != nil {
		return res, nil, nil
	}
	return textResult(fmt.Sprintf("User ID: %s\nAuth Type: %s", id.UserID, id.Metadata[auth.MetaAuthType])), nil, nil
}

// LinkedTokenScopesArgs is the input to the linked_token_scopes tool.
type LinkedTokenScopesArgs struct {
	Credential    string `json:"credential" jsonschema:"session ID credential"`
	Provider      string `json:"provider" jsonschema:"linked account provider name (e.g. google)"`
	RequiredScope string `json:"required_scope,omitempty" jsonschema:"scope substring to check for"`
}

// LinkedTokenScopes runs the composite session-to-token flow and reports
// the token's metadata. Secret material is scrubbed before returning and
// never included in the response.
func (t *Tools) LinkedTokenScopes(ctx context.Context, req *mcp.CallToolRequest, args LinkedTokenScopesArgs) (*mcp.CallToolResult, any, error) {
	ctx = logctx.WithToolCallData(ctx, &logctx.ToolCallData{ToolName: "linked_token_scopes"})

	if err := sessionauth.ValidateSessionFormat(args.Credential); err != nil {
		return errorResult("Invalid credential format."), nil, nil
	}

	rec, err := t.sessions.AuthenticateToken(ctx, args.Credential, args.Provider)
	if err != nil {
		t.log.WarnContext(ctx, "token authentication failed", slog.String("provider", args.Provider), slog.String("error", err.Error()))
		return errorResult(rejectionText(err)), nil, nil
	}
	defer rec.Scrub()

	ctx = logctx.WithAuthData(ctx, &logctx.AuthData{AuthType: auth.AuthTypeRedisSession, UserID: rec.UserID})
	t.log.InfoContext(ctx, "linked token inspected", slog.String("provider", rec.Provider))

	var b strings.Builder
	fmt.Fprintf(&b, "Linked Token:\n• User ID: %s\n• Provider: %s\n• Email: %s\n• Display Name: %s\n• Scopes: %d",
		rec.UserID, rec.Provider, rec.Email, rec.DisplayName, len(rec.Scopes))
	if args.RequiredScope != "" {
		fmt.Fprintf(&b, "\n• Has Scope %q: %t", args.RequiredScope, rec.HasScope(args.RequiredScope))
	}
	return textResult(b.String()), nil, nil
}

// resolve runs the validate-then-authenticate sequence. On failure it
// returns a protocol rejection result; on success it logs and returns the
// identity.
func (t *Tools) resolve(ctx context.Context, credential string) (*auth.Identity, *mcp.CallToolResult) {
	if err := t.provider.ValidateCredentialFormat(credential); err != nil {
		t.log.WarnContext(ctx, "credential format rejected", slog.String("error", err.Error()))
		return nil, errorResult("Invalid credential format.")
	}

	id, err := t.provider.Authenticate(ctx, credential)
	if err != nil {
		t.log.WarnContext(ctx, "authentication failed", slog.String("error", err.Error()))
		return nil, errorResult(rejectionText(err))
	}

	ctx = logctx.WithAuthData(ctx, &logctx.AuthData{AuthType: id.Metadata[auth.MetaAuthType], UserID: id.UserID})
	t.log.InfoContext(ctx, "authentication succeeded")
	return id, nil
}

// rejectionText maps the error taxonomy to client-safe text. The
// InvalidCredential case stays deliberately vague.
func rejectionText(err error) string {
	switch {
	case errors.Is(err, auth.ErrDisabled):
		return "Authentication is disabled."
	case errors.Is(err, auth.ErrStoreUnavailable):
		return "Authentication is temporarily unavailable. Please retry."
	default:
		return "Authentication failed."
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
