/*
Package auth holds the credential primitives for RideWitUS.

# Passwords

A Hasher digests plaintext passwords with bcrypt and verifies candidates against stored digests.
Verification fails closed: a malformed digest is indistinguishable from a wrong password.

# Tokens

A TokenService issues and verifies the HS256 JWTs carried in the session cookie.
A token names an account (sub), its role, when it was issued (iat), when it expires (exp)
and a unique identifier (jti).

Tokens are stateless: until exp, a token verifies even after sign-out.
Configure a Revoker with WithRevoker to close that window;
Revoke then records the jti on a deny-list consulted by every Verify.
*/
package auth
