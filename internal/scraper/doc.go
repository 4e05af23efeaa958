// Package scraper fetches week index pages and per-game box scores.
//
// A week fetch issues one index-page request followed by one request per
// game, strictly sequential, with an optional fixed delay after every
// request to respect the source's pacing. Results are always sorted by
// kickoff time before being returned, since the index page does not
// guarantee chronological link order.
package scraper
