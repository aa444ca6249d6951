// Package api talks to the Song File Hub NoNG search endpoint. Responses are
// decoded strictly: a record is returned only when all of its fields are
// present and are strings, and a single bad element fails the whole search.
package api
