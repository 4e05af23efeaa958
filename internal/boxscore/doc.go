// Package boxscore parses a single box-score page into a game record.
//
// The source markup varies by era: playoff pages prefix the title with the
// round name, 2021+ pages append the stadium, overtime games add one or two
// linescore columns, and a handful of historical pages list the score
// summary in the opposite order from the linescore. Parse tolerates all of
// these and fails with a ParseError naming the offending element for
// anything else.
package boxscore
