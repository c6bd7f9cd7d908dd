// Package loop drives the fetch → analyze → render cycle.
//
// A Loop performs a startup health check, then runs one cycle at a time:
//
//	Idle → Checking → Fetching → Analyzing → Rendering → Sleeping → Fetching …
//
// Any cycle failure moves the loop to Backoff, where it waits
// min(base*2^attempt, cap) before the next fetch. A fully successful cycle
// resets the attempt counter; reaching the retry budget ends Run with
// ErrRetryBudgetExhausted. Cancellation is observed before each fetch and
// during every wait, and ends Run cleanly.
package loop
