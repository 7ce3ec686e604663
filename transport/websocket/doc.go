// Package websocket provides a hub broadcasting rover state updates to
// connected clients.
//
// Clients subscribe to a session ID over a websocket connection; after
// every executed command the API broadcasts the session's rover snapshot
// and the command's output lines to all subscribers of that session.
package websocket
