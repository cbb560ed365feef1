package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/sportsboard/internal/app/seasons"
	"github.com/preston-bernstein/sportsboard/internal/domain/season"
	"github.com/preston-bernstein/sportsboard/internal/scrape"
	"github.com/preston-bernstein/sportsboard/internal/timeutil"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// errUsage marks argument and flag problems detected before any state is touched.
var errUsage = errors.New("usage")

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

// usageErrors are caller mistakes; everything else is a runtime failure.
var usageErrors = []error{
	errUsage,
	season.ErrInvalidWindow,
	timeutil.ErrInvalidDate,
	seasons.ErrInvalidDomain,
	seasons.ErrUnknownDomain,
	seasons.ErrUnknownSeason,
	scrape.ErrInvalidJob,
}

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	for _, target := range usageErrors {
		if errors.Is(err, target) {
			return ExitUsage
		}
	}
	return ExitFailure
}

func exactArgs(n int, names string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageErrorf("%s expects %d argument(s): %s, got %d", cmd.Name(), n, names, len(args))
		}
		return nil
	}
}
