// Package watch reports changes to the summary database made by other
// processes.
//
// A fsnotify watcher observes the data directory. Events on the database file
// and its WAL/SHM companions are coalesced over a debounce window and
// delivered as a single refresh signal.
package watch
