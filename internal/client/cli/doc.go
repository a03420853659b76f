// Package cli implements the interactive CaffeTrack terminal client.
//
// The client is a thin REPL over the session manager: it prompts for
// credentials, shows the cached user profile, edits it, and exposes manual
// control over token refresh. All lifecycle rules (proactive refresh, the
// 401 retry cycle, cross-session reconciliation) live in the session
// package; this package only does terminal I/O.
package cli
