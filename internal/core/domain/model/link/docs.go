// Package link defines the customer actions that are reachable through
// unauthenticated signed links and how long each link lives.
package link
