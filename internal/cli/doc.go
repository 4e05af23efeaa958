// Package cli implements the command-line interface for nfl-game-dates.
//
// The root command fetches one week's schedule and prints it as text or
// HTML, optionally copying the result to the clipboard. The archive
// subcommand bulk-pulls whole seasons to disk, and serve exposes archived
// and live weeks over HTTP.
package cli
