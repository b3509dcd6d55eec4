package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerAccountTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_account",
			mcp.WithDescription("Get an account profile with balance and lifetime statistics"),
			mcp.WithNumber("account_id", mcp.Required(), mcp.Description("Platform user id")),
		),
		s.handleGetAccount,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_global_stats",
			mcp.WithDescription("Get casino-wide totals and averages"),
		),
		s.handleGetGlobalStats,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_leaderboard",
			mcp.WithDescription("Get the richest accounts"),
			mcp.WithNumber("limit", mcp.Description("Rows, default 10, max 100")),
		),
		s.handleGetLeaderboard,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_referrals",
			mcp.WithDescription("Get referral code, totals and referred accounts"),
			mcp.WithNumber("account_id", mcp.Required(), mcp.Description("Platform user id")),
		),
		s.handleGetReferrals,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"adjust_balance",
			mcp.WithDescription("Add or remove coins; the balance cannot go below zero"),
			mcp.WithNumber("account_id", mcp.Required(), mcp.Description("Platform user id")),
			mcp.WithNumber("delta", mcp.Required(), mcp.Description("Signed amount, non-zero")),
		),
		s.handleAdjustBalance,
	)
}

func (s *Server) handleGetAccount(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResp := accountID(request)
	if errResp != nil {
		return errResp, nil
	}
	p, err := s.accounts.Profile(ctx, id)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(p), nil
}

func (s *Server) handleGetGlobalStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := s.accounts.GlobalStats(ctx)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(st), nil
}

func (s *Server) handleGetLeaderboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 0)
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}
	items, err := s.accounts.Top(ctx, limit)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(map[string]any{"items": items}), nil
}

func (s *Server) handleGetReferrals(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResp := accountID(request)
	if errResp != nil {
		return errResp, nil
	}
	st, err := s.referrals.Stats(ctx, id)
	if err != nil {
		return mapDomainError(err), nil
	}
	items, err := s.referrals.List(ctx, id)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(map[string]any{"stats": st, "items": items}), nil
}

func (s *Server) handleAdjustBalance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResp := accountID(request)
	if errResp != nil {
		return errResp, nil
	}
	delta := int64(request.GetInt("delta", 0))
	if delta == 0 {
		return toolError("invalid_request", "delta must be non-zero"), nil
	}
	bal, err := s.accounts.AdminAdjust(ctx, id, delta, mcpOperator)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(map[string]any{"account_id": id, "balance": bal}), nil
}
