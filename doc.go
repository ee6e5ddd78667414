// Package auth is the credential and session core for the QFQA scheduling
// application. It turns a plaintext password into a stored bcrypt hash,
// issues and verifies self-contained HS256 session tokens, and reconciles
// each account's subscription lifecycle (trial -> active/inactive -> expired)
// against wall-clock time.
//
// Key pieces:
//
//   - HashPassword / ComparePasswordAndHash: bcrypt credential handling.
//   - TokenService: compact signed token issuance and verification. Tokens
//     are valid for seven days and are never revocable server side; a
//     session ends when the client discards the token.
//   - ReconcileSubscription: pure computation of the effective subscription
//     status for a given instant. Stored status is a cache; callers write
//     the recomputed value back when it changes.
//   - SessionIssuer: composes the above over an AccountStore to implement
//     Register and Authenticate.
//   - AccountStore: the persistence boundary. Backed by Bun (SQLite) or by
//     the in-process MemoryStore fallback, both with the same uniqueness
//     guarantees.
//
// Token verification reports a single InvalidToken failure for malformed,
// forged and expired tokens alike; callers cannot distinguish the cases.
// Likewise Authenticate reports the same InvalidCredentials error for an
// unknown username and a wrong password.
package auth
