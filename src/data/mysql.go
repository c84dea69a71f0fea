package data

import (
	"os"
	"strings"
)

// GetMySQLDSN returns the MySQL DSN from the environment. MySQL is optional,
// so an empty string simply means no database is configured.
func GetMySQLDSN() string {
	return strings.TrimSpace(os.Getenv("MYSQL_DSN"))
}
