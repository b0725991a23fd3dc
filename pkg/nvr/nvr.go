package nvr

import (
	"fmt"
	"strings"
)

// NVR identifies a package build by its name, version and release, the way
// Satellite addresses packages within an architecture.
type NVR struct {
	Name    string
	Version string
	Release string
}

type MalformedNameError struct {
	Filename string
}

func (e *MalformedNameError) Error() string {
	return fmt.Sprintf("malformed package name '%s': expected <name>-<version>-<release>", e.Filename)
}

// Parse splits an RPM filename of the form <name>-<version>-<release>.<arch>.rpm
// into its components. The split happens at the last two hyphens; the version
// and release tokens are cut at their first period, which drops the
// .<arch>.rpm suffix. Anything before the second-to-last hyphen is the name.
func Parse(filename string) (NVR, error) {
	remainder := filename

	var tokens [2]string
	delimiter := byte('.')
	for i := 1; i >= 0; i-- {
		idx := strings.LastIndexByte(remainder, '-')
		if idx < 0 {
			return NVR{}, &MalformedNameError{Filename: filename}
		}
		token := remainder[idx+1:]
		if cut := strings.IndexByte(token, delimiter); cut >= 0 {
			token = token[:cut]
		}
		tokens[i] = token
		remainder = remainder[:idx]
		delimiter = '-'
	}

	if remainder == "" || tokens[0] == "" || tokens[1] == "" {
		return NVR{}, &MalformedNameError{Filename: filename}
	}

	return NVR{Name: remainder, Version: tokens[0], Release: tokens[1]}, nil
}

func (n NVR) String() string {
	return n.Name + "-" + n.Version + "-" + n.Release
}
