// Package errors aggregates the failures of best-effort cleanup work.
package errors

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// formatCleanupErrors renders every failure on its own line
func formatCleanupErrors(es []error) string {
	if len(es) == 1 {
		return fmt.Sprintf("cleanup incomplete: %s", es[0])
	}

	lines := make([]string, len(es))
	for i, err := range es {
		lines[i] = "- " + err.Error()
	}
	return fmt.Sprintf("cleanup incomplete, %d failures:\n%s", len(es), strings.Join(lines, "\n"))
}

// FormatErrorOrNil returns nil for an empty set and a cleanup-formatted error otherwise
func FormatErrorOrNil(err *multierror.Error) error {
	if err != nil {
		err.ErrorFormat = formatCleanupErrors
	}
	return err.ErrorOrNil()
}
