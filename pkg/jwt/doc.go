// Package jwt signs and validates the bearer tokens used for sessions.
//
// Tokens are HS256 JWTs built on github.com/golang-jwt/jwt/v5. They carry
// the account id and an absolute expiry; nothing is stored server-side.
//
// # Token Generation
//
//	svc, err := jwt.NewService(jwt.Config{
//	    Secret:     os.Getenv("JWT_SECRET"),
//	    Issuer:     "community-api",
//	    Expiration: 30 * 24 * time.Hour,
//	})
//
//	token, err := svc.Sign(jwt.Claims{UserID: userID})
//
// # Token Validation
//
//	claims, err := svc.Validate(tokenString)
//	if errors.Is(err, jwt.ErrTokenExpired) {
//	    // ask the client to sign in again
//	}
//	userID := claims.UserID
//
// The clock is injectable through Config.Now so expiry can be tested
// without sleeping.
package jwt
