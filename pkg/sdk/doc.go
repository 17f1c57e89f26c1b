// Package sdk provides a Go client for the playersearch HTTP API.
//
// The client covers the unified player search and the index management
// endpoints. Tenant scope is fixed at construction time: a fund-scoped
// client sends X-Fund-ID with every request, an admin client sends
// X-Role: admin.
//
//	client, _ := sdk.New("http://localhost:8080",
//	    sdk.WithAPIKey(os.Getenv("API_KEY")),
//	    sdk.WithFundScope(fundID),
//	)
//	page, _ := client.Search(ctx, "Вася", sdk.WithRoom("PokerStars"))
//	for _, p := range page.Players {
//	    fmt.Println(p.FullName, p.Score)
//	}
//
// API errors are mapped to sentinel errors; check with errors.Is:
//
//	if errors.Is(err, sdk.ErrPlayerNotFound) { ... }
package sdk
