package env

import "os"

// Get reads key from the environment. Unset and empty both fall back, since
// an empty override is never meaningful for the variables this service reads.
func Get(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}
