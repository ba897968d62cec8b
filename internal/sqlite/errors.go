package sqlite

import (
	"fmt"
	"strings"

	"github.com/rpggio/rentledger/internal/store"
)

func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY")
}

func wrapErr(op string, err error) error {
	if isBusy(err) {
		return fmt.Errorf("%s: %w: %v", op, store.ErrBusy, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
