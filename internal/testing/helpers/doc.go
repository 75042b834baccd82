// Package helpers provides test utility functions for the community API.
//
// # JWT Helpers
//
// Mint HS256 tokens signed with TestSecret:
//
//	jwtHelper := helpers.NewJWTHelper(t, clock.Now)
//	token := jwtHelper.GenerateToken(t, user)
//
// # Request Helpers
//
//	rec := helpers.NewRequest(t, http.MethodPost, "/api/reports").
//	    WithToken(token).
//	    WithBody(body).
//	    Do(handler)
//
// # Assertion Helpers
//
//	helpers.AssertAPIError(t, rec, http.StatusNotFound, "User not found")
//	helpers.AssertRecordNotExists(t, db, "user", userID)
package helpers
