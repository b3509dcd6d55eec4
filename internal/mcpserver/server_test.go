package mcpserver

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"testing"

	appaccount "star-casino/internal/app/account"
	appreferral "star-casino/internal/app/referral"
	"star-casino/internal/config"
	"star-casino/internal/ledger"
	"star-casino/internal/store"
	"star-casino/internal/testutil"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
)

type fakeAccounts struct {
	profiles map[int64]*appaccount.Profile
	adjusted []int64
}

func (f *fakeAccounts) Profile(_ context.Context, id int64) (*appaccount.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, appaccount.ErrAccountNotFound
	}
	return p, nil
}

func (f *fakeAccounts) Top(_ context.Context, limit int) ([]appaccount.LeaderEntry, error) {
	out := []appaccount.LeaderEntry{}
	for id, p := range f.profiles {
		out = append(out, appaccount.LeaderEntry{AccountID: id, Name: p.DisplayName, Balance: p.Balance})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Balance > out[j].Balance })
	for i := range out {
		out[i].Rank = i + 1
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeAccounts) GlobalStats(context.Context) (*appaccount.GlobalStats, error) {
	var total int64
	for _, p := range f.profiles {
		total += p.Balance
	}
	return &appaccount.GlobalStats{Accounts: int64(len(f.profiles)), TotalBalance: total}, nil
}

func (f *fakeAccounts) AdminAdjust(_ context.Context, id, delta int64, operator string) (int64, error) {
	p, ok := f.profiles[id]
	if !ok {
		return 0, appaccount.ErrAccountNotFound
	}
	if p.Balance+delta < 0 {
		return 0, appaccount.ErrNegativeBalance
	}
	if operator != mcpOperator {
		return 0, appaccount.ErrInvalidRequest
	}
	p.Balance += delta
	f.adjusted = append(f.adjusted, delta)
	return p.Balance, nil
}

type fakeReferrals struct{}

func (fakeReferrals) Stats(_ context.Context, id int64) (*appreferral.Stats, error) {
	return &appreferral.Stats{Code: "ABCD2345", ReferralsCount: 1, ReferralEarnings: 25}, nil
}

func (fakeReferrals) List(context.Context, int64) ([]appreferral.Summary, error) {
	return []appreferral.Summary{{ReferredID: 2, DisplayName: "Bob", BonusPaid: true}}, nil
}

type fakeLedger struct {
	lastFilter store.LedgerFilter
	lastLimit  int
	sum        int64
}

func (f *fakeLedger) ListLedgerEntries(_ context.Context, flt store.LedgerFilter, limit, _ int) ([]store.LedgerEntry, error) {
	f.lastFilter = flt
	f.lastLimit = limit
	return []store.LedgerEntry{{ID: "01J", AccountID: flt.AccountID, Type: ledger.DepositCredit, Amount: 100, BalanceAfter: 100}}, nil
}

func (f *fakeLedger) LedgerSum(context.Context, int64) (int64, error) {
	return f.sum, nil
}

func newFakeServer(t *testing.T) (*client.Client, *fakeAccounts, *fakeLedger, func()) {
	t.Helper()
	accounts := &fakeAccounts{profiles: map[int64]*appaccount.Profile{
		1: {ID: 1, DisplayName: "Alice", Balance: 100},
		2: {ID: 2, DisplayName: "Bob", Balance: 40},
	}}
	lg := &fakeLedger{sum: 100}
	httpSrv := httptest.NewServer(New(accounts, fakeReferrals{}, lg).Handler())
	c, closeClient := newMCPClient(t, httpSrv.URL+"/mcp")
	return c, accounts, lg, func() {
		closeClient()
		httpSrv.Close()
	}
}

func TestMCPServerTools(t *testing.T) {
	c, accounts, lg, done := newFakeServer(t)
	defer done()

	assertToolNames(t, mustListTools(t, c),
		"get_account",
		"get_global_stats",
		"get_leaderboard",
		"get_referrals",
		"adjust_balance",
		"list_ledger_entries",
		"audit_account",
	)

	acc := mapFromStructured(t, mustCallTool(t, c, "get_account", map[string]any{"account_id": 1}))
	if asString(acc["display_name"]) != "Alice" || asFloat64(acc["balance"]) != 100 {
		t.Fatalf("unexpected account: %v", acc)
	}

	top := mapFromStructured(t, mustCallTool(t, c, "get_leaderboard", map[string]any{"limit": 1}))
	items, _ := top["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected one leaderboard row, got %v", top)
	}

	stats := mapFromStructured(t, mustCallTool(t, c, "get_global_stats", map[string]any{}))
	if asFloat64(stats["accounts"]) != 2 || asFloat64(stats["total_balance"]) != 140 {
		t.Fatalf("unexpected stats: %v", stats)
	}

	refs := mapFromStructured(t, mustCallTool(t, c, "get_referrals", map[string]any{"account_id": 1}))
	if st, _ := refs["stats"].(map[string]any); asString(st["code"]) != "ABCD2345" {
		t.Fatalf("unexpected referrals: %v", refs)
	}

	adj := mustCallTool(t, c, "adjust_balance", map[string]any{"account_id": 2, "delta": -15})
	if adj.IsError {
		t.Fatalf("adjust_balance expected success, got: %v", adj.StructuredContent)
	}
	if got := asFloat64(mapFromStructured(t, adj)["balance"]); got != 25 || len(accounts.adjusted) != 1 {
		t.Fatalf("unexpected adjust: balance=%v adjusted=%v", got, accounts.adjusted)
	}

	list := mustCallTool(t, c, "list_ledger_entries", map[string]any{
		"account_id": 1,
		"type":       ledger.DepositCredit,
		"from":       "2026-01-01T00:00:00Z",
		"limit":      9999,
	})
	if list.IsError {
		t.Fatalf("list_ledger_entries expected success, got: %v", list.StructuredContent)
	}
	if lg.lastFilter.AccountID != 1 || lg.lastFilter.Type != ledger.DepositCredit || lg.lastFilter.From == nil || lg.lastLimit != maxPageLimit {
		t.Fatalf("unexpected filter: %+v limit=%d", lg.lastFilter, lg.lastLimit)
	}

	audit := mapFromStructured(t, mustCallTool(t, c, "audit_account", map[string]any{"account_id": 1}))
	if consistent, _ := audit["consistent"].(bool); !consistent {
		t.Fatalf("expected consistent audit, got %v", audit)
	}
}

func TestMCPServerToolErrors(t *testing.T) {
	c, _, _, done := newFakeServer(t)
	defer done()

	assertToolErrorCode(t, mustCallTool(t, c, "get_account", map[string]any{}), "invalid_request")
	assertToolErrorCode(t, mustCallTool(t, c, "get_account", map[string]any{"account_id": 99}), "not_found")
	assertToolErrorCode(t, mustCallTool(t, c, "adjust_balance", map[string]any{"account_id": 2, "delta": 0}), "invalid_request")
	assertToolErrorCode(t, mustCallTool(t, c, "adjust_balance", map[string]any{"account_id": 2, "delta": -41}), "negative_balance")
	assertToolErrorCode(t, mustCallTool(t, c, "list_ledger_entries", map[string]any{"type": "jackpot"}), "invalid_request")
	assertToolErrorCode(t, mustCallTool(t, c, "list_ledger_entries", map[string]any{"to": "yesterday"}), "invalid_request")
}

func TestMCPServerAgainstStore(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	cfg := config.ServerConfig{RefereeBonus: 50, ReferrerBonus: 25}
	l := ledger.New(st)
	refs := appreferral.NewService(st, cfg, "star_casino_bot")
	accounts := appaccount.NewService(st, l, refs, nil, cfg)
	if _, err := accounts.Start(ctx, 10, "Carol", ""); err != nil {
		t.Fatalf("start: %v", err)
	}

	httpSrv := httptest.NewServer(New(accounts, refs, st).Handler())
	defer httpSrv.Close()
	c, closeClient := newMCPClient(t, httpSrv.URL+"/mcp")
	defer closeClient()

	if res := mustCallTool(t, c, "adjust_balance", map[string]any{"account_id": 10, "delta": 70}); res.IsError {
		t.Fatalf("adjust_balance expected success, got: %v", res.StructuredContent)
	}
	assertToolErrorCode(t, mustCallTool(t, c, "adjust_balance", map[string]any{"account_id": 10, "delta": -71}), "negative_balance")

	list := mapFromStructured(t, mustCallTool(t, c, "list_ledger_entries", map[string]any{"account_id": 10}))
	items, _ := list["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected one ledger entry, got %v", list)
	}
	entry, _ := items[0].(map[string]any)
	if asString(entry["type"]) != ledger.AdminAdjust || asString(entry["ref_id"]) != mcpOperator {
		t.Fatalf("unexpected entry: %v", entry)
	}

	audit := mapFromStructured(t, mustCallTool(t, c, "audit_account", map[string]any{"account_id": 10}))
	if asFloat64(audit["balance"]) != 70 || asFloat64(audit["ledger_sum"]) != 70 {
		t.Fatalf("unexpected audit: %v", audit)
	}
}

func newMCPClient(t *testing.T, endpoint string) (*client.Client, func()) {
	t.Helper()
	ctx := context.Background()
	trans, err := transport.NewStreamableHTTP(endpoint)
	if err != nil {
		t.Fatalf("new transport: %v", err)
	}
	if err := trans.Start(ctx); err != nil {
		t.Fatalf("transport start: %v", err)
	}
	c := client.NewClient(trans)
	_, err = c.Initialize(ctx, mcp.InitializeRequest{Params: mcp.InitializeParams{ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION}})
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return c, func() { _ = trans.Close() }
}

func mustListTools(t *testing.T, c *client.Client) []mcp.Tool {
	t.Helper()
	res, err := c.ListTools(context.Background(), mcp.ListToolsRequest{})
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	return res.Tools
}

func assertToolNames(t *testing.T, tools []mcp.Tool, expected ...string) {
	t.Helper()
	got := make([]string, 0, len(tools))
	for _, tool := range tools {
		got = append(got, tool.Name)
	}
	sort.Strings(got)
	sort.Strings(expected)
	if len(got) != len(expected) {
		t.Fatalf("tool count mismatch got=%v expected=%v", got, expected)
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Fatalf("tool list mismatch got=%v expected=%v", got, expected)
		}
	}
}

func mustCallTool(t *testing.T, c *client.Client, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	res, err := c.CallTool(context.Background(), mcp.CallToolRequest{Params: mcp.CallToolParams{Name: name, Arguments: args}})
	if err != nil {
		t.Fatalf("call tool %s: %v", name, err)
	}
	return res
}

func assertToolErrorCode(t *testing.T, res *mcp.CallToolResult, want string) {
	t.Helper()
	if !res.IsError {
		t.Fatalf("expected tool error %q, got success: %v", want, res.StructuredContent)
	}
	payload := mapFromStructured(t, res)
	errObj, ok := payload["error"].(map[string]any)
	if !ok {
		t.Fatalf("error payload missing 'error': %v", payload)
	}
	if got := asString(errObj["code"]); got != want {
		t.Fatalf("error code=%q want=%q payload=%v", got, want, payload)
	}
}

func mapFromStructured(t *testing.T, res *mcp.CallToolResult) map[string]any {
	t.Helper()
	b, err := json.Marshal(res.StructuredContent)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal structured content: %v", err)
	}
	return out
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat64(v any) float64 {
	f, _ := v.(float64)
	return f
}
