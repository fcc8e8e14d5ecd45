package commands

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"pmctl/internal/apiclient"
	"pmctl/internal/exitcode"
)

// reportError prints err and returns the matching exit code.
func reportError(errOut io.Writer, err error) int {
	var apiErr *apiclient.APIError
	switch {
	case errors.Is(err, apiclient.ErrInvalidID):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError

	case apiclient.IsNoDepartment(err):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.NoDepartment

	case errors.Is(err, apiclient.ErrNoTokenProvider), errors.Is(err, apiclient.ErrNoToken):
		fmt.Fprintf(errOut, "error: %v (run: pmctl login)\n", err)
		return exitcode.AuthError

	case errors.As(err, &apiErr) && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden):
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError

	case errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound:
		fmt.Fprintf(errOut, "error: not found: %v\n", err)
		return exitcode.UserError
	}

	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}

// parseID parses a positional id. Range checks are left to the service.
func parseID(resource, arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid %s ID: %s", resource, arg)
	}
	return id, nil
}

// idArg parses the single id argument of commands like `task <id>`.
// It prints the error and returns ok=false on failure.
func idArg(resource string, args []string, errOut io.Writer) (int, bool) {
	if len(args) != 1 {
		fmt.Fprintf(errOut, "error: %s ID required\n", resource)
		return 0, false
	}
	id, err := parseID(resource, args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return 0, false
	}
	return id, true
}
