package mcpserver

import (
	"context"
	"time"

	"star-casino/internal/store"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerLedgerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(
			"list_ledger_entries",
			mcp.WithDescription("List balance mutations, newest first"),
			mcp.WithNumber("account_id", mcp.Description("Optional platform user id")),
			mcp.WithString("type", mcp.Description("Optional entry type, e.g. wager_debit|deposit_credit|admin_adjust")),
			mcp.WithString("from", mcp.Description("Optional RFC3339 lower bound")),
			mcp.WithString("to", mcp.Description("Optional RFC3339 upper bound")),
			mcp.WithNumber("limit", mcp.Description("Page size, default 50, max 500")),
			mcp.WithNumber("offset", mcp.Description("Page offset, default 0")),
		),
		s.handleListLedgerEntries,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"audit_account",
			mcp.WithDescription("Compare an account balance with the sum of its ledger entries"),
			mcp.WithNumber("account_id", mcp.Required(), mcp.Description("Platform user id")),
		),
		s.handleAuditAccount,
	)
}

func (s *Server) handleListLedgerEntries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f := store.LedgerFilter{
		AccountID: int64(request.GetInt("account_id", 0)),
		Type:      request.GetString("type", ""),
	}
	if !isAllowedEntryType(f.Type) {
		return toolError("invalid_request", "unknown entry type "+f.Type), nil
	}
	for _, bound := range []struct {
		key string
		dst **time.Time
	}{{"from", &f.From}, {"to", &f.To}} {
		v := request.GetString(bound.key, "")
		if v == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return toolError("invalid_request", bound.key+" must be RFC3339"), nil
		}
		*bound.dst = &t
	}
	limit, offset := clampPagination(request.GetInt("limit", defaultPageLimit), request.GetInt("offset", 0), maxPageLimit)

	items, err := s.ledger.ListLedgerEntries(ctx, f, limit, offset)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(map[string]any{"items": items, "limit": limit, "offset": offset}), nil
}

func (s *Server) handleAuditAccount(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResp := accountID(request)
	if errResp != nil {
		return errResp, nil
	}
	p, err := s.accounts.Profile(ctx, id)
	if err != nil {
		return mapDomainError(err), nil
	}
	sum, err := s.ledger.LedgerSum(ctx, id)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(map[string]any{
		"account_id": id,
		"balance":    p.Balance,
		"ledger_sum": sum,
		"consistent": sum == p.Balance,
	}), nil
}
