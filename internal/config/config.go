package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time parses the token lifetime duration
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, a duration for the
// token lifetime, an int for the bcrypt cost.
type Config struct {
	Env        string        // application environment (e.g. "dev", "prod")
	Port       string        // HTTP port to listen on
	DBUser     string        // database username
	DBPass     string        // database password (optional)
	DBHost     string        // database host address
	DBPort     string        // database port number
	DBName     string        // database name
	JWTSecret  string        // secret used to sign JWTs
	TokenTTL   time.Duration // validity window of issued tokens
	BcryptCost int           // bcrypt cost for password hashing
	SeedAdmin  bool          // whether to seed the default admin account at startup
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  The token lifetime
// defaults to 24 hours when JWT_EXPIRES_IN is unset; this single duration
// drives both the signed exp claim and the stored expires_at column so the
// two can never disagree.
func Load() Config {
	return Config{
		Env:        must("APP_ENV"),                    // environment (dev/test/prod)
		Port:       must("APP_PORT"),                   // port to bind the HTTP server
		DBUser:     must("DB_USER"),                    // database user
		DBPass:     os.Getenv("DB_PASS"),               // database password (empty allowed)
		DBHost:     must("DB_HOST"),                    // database host
		DBPort:     must("DB_PORT"),                    // database port
		DBName:     must("DB_NAME"),                    // database name
		JWTSecret:  must("JWT_SECRET"),                 // secret used for signing JWTs
		TokenTTL:   mustDur("JWT_EXPIRES_IN", 24*time.Hour), // token validity window
		BcryptCost: mustInt("BCRYPT_COST"),             // bcrypt cost factor
		SeedAdmin:  envBool("SEED_ADMIN", false),       // seed default admin account
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// mustDur reads an optional duration variable, falling back to def when the
// variable is unset.  An unparsable value is fatal rather than silently
// shortening or extending token lifetimes.
func mustDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("invalid duration for %s: %q", key, v)
	}
	return d
}
