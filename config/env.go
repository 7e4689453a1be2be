package config

import (
	"github.com/joho/godotenv"
)

// LoadEnv copies a .env file from the working directory into the process
// environment so Load sees it. Variables already set in the shell win;
// godotenv never overrides them.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		Logger.Debug("No .env file loaded, using the process environment:", err)
	}
}
