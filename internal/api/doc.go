// Package api provides the CoinGecko REST client and the market data source
// built on top of it.
//
// REST endpoints:
//   - Public: https://api.coingecko.com/api/v3
//   - Pro:    https://pro-api.coingecko.com/api/v3
//
// Endpoints used: /ping (connectivity check), /coins/markets (ranked snapshot).
//
// The client never retries; retry and backoff belong to the update loop.
package api
