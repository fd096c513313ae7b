// Package auth implements credential verification, access-token issuance,
// and account provisioning for the matricula services.
//
// Three components share one account store and one hashing scheme:
//   - CredentialVerifier checks a username/password pair against stored
//     bcrypt hashes and resolves the account's role-name set.
//   - TokenIssuer builds the claim set (issuer, subject, upn, groups,
//     userId, iat, exp) and delegates signing to a TokenSigner. The
//     provided HMACTokenSigner signs with HS256, so identical claims
//     always produce an identical token string.
//   - AccountProvisioner registers new accounts with a salted hash and
//     the default "user" role. Username uniqueness is ultimately
//     enforced by the store's unique constraint; the provisioner's
//     pre-check only provides an early conflict answer.
//
// Persistence rides Bun repositories behind the AccountStore interface,
// so the core stays unit-testable with an in-memory fake. HTTP delivery
// is a thin go-router controller that maps error categories onto status
// codes and collapses every verification failure into one uniform
// unauthorized response.
package auth
