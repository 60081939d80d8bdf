// Package history projects stored summaries into the filtered list shown to
// users.
//
// Filter, MatchesQuery, HasTag and AvailableTags are pure functions over a
// newest-first slice. View holds the search query, the selected tag and the
// latest store contents, recomputes the projection whenever one of them
// changes and publishes snapshots to subscribers.
package history
