// Package site provides an HTTP client for the marketing site's public API.
//
// # Overview
//
// The backend wraps every payload in a common envelope:
//
//	{"code": "SUCCESS", "message": "", "data": {...}}
//
// Any code other than SUCCESS is surfaced as an *APIError, non-2xx statuses as
// a *StatusError, and a success envelope missing its data field wraps
// ErrMalformedPayload. Callers convert these into local view state; nothing
// here retries.
//
// # Endpoints
//
//   - GET {api}/games/public?page=&pageSize=   paginated games (data.newsList, data.totalPages)
//   - GET {api}/news/public?page=&pageSize=    paginated news
//   - GET {api}/games/public/{id}              game detail (data.news)
//   - GET {api}/news/public/{id}               news detail (data.news)
//   - GET {api}/heroes/active                  hero banners (data.heroes)
//   - GET {api}/promotions/active              promotion banners (data.banners)
//   - GET {api}/company                        company profile (data.company)
//
// The games endpoints reuse the newsList/news field names; that is the
// server's wire format, not a typo.
//
// # Usage Example
//
//	client, err := site.NewClient("https://example.com/api")
//	if err != nil {
//		return err
//	}
//	page, err := client.FetchPage(ctx, site.ResourceGames, 1, 12)
package site
