package postgres

import (
	"fmt"
	"strings"

	"github.com/foliocraft/foliocraft-backend/config"
)

var dsnValueEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// DSN builds a libpq keyword/value string. DB_DSN wins when set.
func DSN(cfg *config.DatabaseConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dsnValue(cfg.Host), cfg.Port, dsnValue(cfg.User), dsnValue(cfg.Password), dsnValue(cfg.Name), sslmode,
	)
}

// dsnValue quotes values that are empty or contain spaces or quotes.
func dsnValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	return "'" + dsnValueEscaper.Replace(v) + "'"
}
