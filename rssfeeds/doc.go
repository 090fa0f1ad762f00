// Package rssfeeds collects the entries published on the run's day from the
// configured RSS and Atom feeds.
package rssfeeds
