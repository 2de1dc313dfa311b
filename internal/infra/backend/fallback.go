package backend

import "encoding/json"

// DemoStatsPayload is the canned platform-stats response served when demo
// mode decides to mask a backend failure. Shape mirrors the live endpoint.
var DemoStatsPayload = json.RawMessage(`{
  "active_listings": 128,
  "members": 2450,
  "escrow_volume_cents": 18250000,
  "listings_this_week": 14,
  "posts_today": 37
}`)
