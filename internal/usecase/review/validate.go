package review

import (
	"fmt"
	"strings"

	"github.com/darkin100/i-am-reviewed/internal/config"
)

// Requirements shared by every platform. The Vertex backend addresses a
// regional endpoint, so both are mandatory.
var (
	ProjectRequirement  = config.Requirement{Names: []string{"GOOGLE_CLOUD_PROJECT"}}
	LocationRequirement = config.Requirement{Names: []string{"GOOGLE_CLOUD_LOCATION"}}
)

// ValidationError reports every unmet environment requirement in one pass, so
// a user fixing their CI config sees the complete list instead of one
// variable per failed run.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required environment variables: %s", strings.Join(e.Missing, ", "))
}

// ValidateEnvironment checks the generic requirements plus the host's own
// against the snapshot. It is pure: nothing is executed, nothing is read
// outside the snapshot.
func ValidateEnvironment(env config.Snapshot, host Host) error {
	var missing []string
	for _, req := range []config.Requirement{ProjectRequirement, LocationRequirement} {
		if _, ok := req.Resolve(env); !ok {
			missing = append(missing, req.MissingName())
		}
	}
	missing = append(missing, host.MissingEnv()...)

	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
