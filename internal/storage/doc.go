// Package storage persists season archives as JSON files on disk.
//
// An archive holds every fetched week of a season, including each game's
// box-score HTML, so historical pulls can be re-parsed or re-rendered
// without touching the source site again.
package storage
