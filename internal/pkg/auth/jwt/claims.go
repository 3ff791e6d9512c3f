package jwt

import "github.com/golang-jwt/jwt"

// Claims defines the JWT payload for inkroom credentials.
// Every signed credential carries the user id; the live gateway and the HTTP
// middleware both trust the signature and read the identity from here.
type Claims struct {
	// StandardClaims embeds Exp, Iat and Iss, used for validity checks.
	jwt.StandardClaims

	// UserID is the account identifier the token was issued for.
	UserID string `json:"userId"`
}
