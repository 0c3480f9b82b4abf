// Package cli provides the interactive school admin console.
//
// It wires configuration, the local session store, the REST client and a
// line-oriented REPL. On start the stored session decides the first screen:
// the dashboard for a signed-in user, the login prompt otherwise. A
// background watcher pings the API and switches between online and offline
// mode.
//
// Key features:
//   - Login with a mobile number and a 4-digit one-time code
//   - Browse, search and page through school records
//   - Create, edit and delete records through validated forms
//   - Logout, whoami and connection status
//
// The console is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
