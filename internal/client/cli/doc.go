// Package cli is the interactive signkeeper terminal client.
//
// It wires configuration, the local session database, the API client and the
// page loaders into a REPL. On start it resumes the saved session if the
// backend still accepts it.
//
// Commands:
//   - register, login, logout, delete-account
//   - whoami, users, profile, jwt
//   - sign <url> all|<id>...
//   - signature add|list|delete
//   - edsquare status|login|login-saved|cookies|validate|validate-multi|
//     eligible|planning|planning-multi
//   - admin delete-user <id>
//   - help, exit | quit
//
// The REPL is started with App.Run, which blocks until the user exits or the
// context is cancelled.
package cli
