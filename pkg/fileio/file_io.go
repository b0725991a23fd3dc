package fileio

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

const (
	// ExecutablePerms are Linux permissions (rwxr--r--) for executable files (scripts, binaries, etc.)
	ExecutablePerms os.FileMode = 0o744
	// NonExecutablePerms are Linux permissions (rw-r--r--) for non-executable files (configs, RPMs, etc.):
	NonExecutablePerms os.FileMode = 0o644
)

// WriteBuildVars writes variables in KEY=VALUE form, one per line, sorted
// by key. CI systems source the file to hand values to follow-up steps.
func WriteBuildVars(filename string, vars map[string]string) error {
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, key := range keys {
		sb.WriteString(key)
		sb.WriteString("=")
		sb.WriteString(vars[key])
		sb.WriteString("\n")
	}

	if err := os.WriteFile(filename, []byte(sb.String()), NonExecutablePerms); err != nil {
		return fmt.Errorf("writing build variables: %w", err)
	}

	return nil
}
