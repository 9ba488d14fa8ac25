// Package http serves the session API over HTTP (chi router) and streams
// turn updates to browsers with Server-Sent Events.
package http
