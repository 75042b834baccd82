// Package config loads the API configuration from the environment.
//
// A .env file in the working directory is read first (github.com/joho/godotenv);
// real environment variables take precedence. Validate reports every problem
// at once via errors.Join.
package config
