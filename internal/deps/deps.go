// Package deps reports the availability of external binaries imgconv can
// delegate to. Only webp encoding needs one today; the check runs up front so
// a missing encoder surfaces as a validation error instead of a string of
// per-file failures.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external binary dependency.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Lookup reports whether a single binary is resolvable on PATH.
func Lookup(command string) error {
	if strings.TrimSpace(command) == "" {
		return fmt.Errorf("command not configured")
	}
	if _, err := exec.LookPath(command); err != nil {
		return fmt.Errorf("binary %q not found on PATH", command)
	}
	return nil
}

// EncoderRequirements lists the external encoder binaries for the given cwebp
// override (empty means the PATH default).
func EncoderRequirements(cwebp string) []Requirement {
	if strings.TrimSpace(cwebp) == "" {
		cwebp = "cwebp"
	}
	return []Requirement{
		{
			Name:        "cwebp",
			Command:     cwebp,
			Description: "Required for webp targets",
			Optional:    true,
		},
	}
}
