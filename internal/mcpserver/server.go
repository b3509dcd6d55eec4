package mcpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	appaccount "star-casino/internal/app/account"
	appreferral "star-casino/internal/app/referral"
	"star-casino/internal/store"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Accounts is the operator view of the account service.
type Accounts interface {
	Profile(ctx context.Context, id int64) (*appaccount.Profile, error)
	Top(ctx context.Context, limit int) ([]appaccount.LeaderEntry, error)
	GlobalStats(ctx context.Context) (*appaccount.GlobalStats, error)
	AdminAdjust(ctx context.Context, id, delta int64, operator string) (int64, error)
}

type Referrals interface {
	Stats(ctx context.Context, id int64) (*appreferral.Stats, error)
	List(ctx context.Context, id int64) ([]appreferral.Summary, error)
}

type LedgerReader interface {
	ListLedgerEntries(ctx context.Context, f store.LedgerFilter, limit, offset int) ([]store.LedgerEntry, error)
	LedgerSum(ctx context.Context, id int64) (int64, error)
}

type Server struct {
	accounts  Accounts
	referrals Referrals
	ledger    LedgerReader

	mcpServer  *server.MCPServer
	httpServer *server.StreamableHTTPServer
}

func New(accounts Accounts, referrals Referrals, ledger LedgerReader) *Server {
	mcpSrv := server.NewMCPServer(
		"star-casino",
		"0.1.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
		server.WithResourceRecovery(),
	)
	s := &Server{
		accounts:   accounts,
		referrals:  referrals,
		ledger:     ledger,
		mcpServer:  mcpSrv,
		httpServer: server.NewStreamableHTTPServer(mcpSrv, server.WithStateLess(true), server.WithDisableStreaming(true)),
	}
	s.registerAccountTools()
	s.registerLedgerTools()
	s.registerResources()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.httpServer
}

func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"account://{account_id}/profile",
			"account_profile",
			mcp.WithTemplateDescription("Account profile and lifetime statistics"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			raw := string(request.Params.URI)
			if !strings.HasPrefix(raw, "account://") || !strings.HasSuffix(raw, "/profile") {
				return nil, nil
			}
			idText := strings.TrimSuffix(strings.TrimPrefix(raw, "account://"), "/profile")
			id, err := strconv.ParseInt(idText, 10, 64)
			if err != nil || id == 0 {
				return nil, nil
			}
			p, err := s.accounts.Profile(ctx, id)
			if err != nil {
				return nil, err
			}
			payload, err := json.Marshal(p)
			if err != nil {
				return nil, err
			}
			return []mcp.ResourceContents{
				mcp.TextResourceContents{
					URI:      raw,
					MIMEType: "application/json",
					Text:     string(payload),
				},
			}, nil
		},
	)
}

// accountID reads the required account_id argument.
func accountID(request mcp.CallToolRequest) (int64, *mcp.CallToolResult) {
	id := int64(request.GetInt("account_id", 0))
	if id == 0 {
		return 0, toolError("invalid_request", "account_id is required")
	}
	return id, nil
}
