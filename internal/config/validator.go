package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks every field against its validate tag
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%s: %w", ErrMsgInvalidEnv, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s=%v)", fe.Field(), fe.Tag(), fe.Value()))
	}
	sort.Strings(fields)
	return fmt.Errorf("%s: %s", ErrMsgInvalidEnv, strings.Join(fields, ", "))
}

// Warnings returns non-fatal issues, such as example values left in place
func (c *Config) Warnings() []string {
	var warnings []string

	if c.StorageDriver == StoragePostgres && c.DBPassword == InsecureDBPassword {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}
	if c.StorageDriver == StorageMemory {
		warnings = append(warnings, "STORAGE_DRIVER is memory - progress is lost when the game exits")
	}
	if c.ResetStaleEvents {
		warnings = append(warnings, "RESET_STALE_EVENTS is set - boosts saved from the last session are discarded")
	}

	return warnings
}
