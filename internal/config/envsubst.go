package config

import (
	"os"
	"regexp"
	"strings"
)

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars expands environment references in content.
// Unresolvable references are left untouched and reported in missing.
// Comment lines are copied verbatim.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	seen := make(map[string]bool)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		lines[i] = envVarPattern.ReplaceAllStringFunc(line, func(match string) string {
			return expand(match, &missing, seen)
		})
	}

	return strings.Join(lines, "\n"), missing
}

// expand resolves a single ${...} reference, recording unresolved names.
func expand(match string, missing *[]string, seen map[string]bool) string {
	parts := envVarPattern.FindStringSubmatch(match)
	name, op, arg := parts[1], parts[2], parts[3]
	value, set := os.LookupEnv(name)

	switch op {
	case ":-":
		if set && value != "" {
			return value
		}
		return arg
	case ":?":
		if set && value != "" {
			return value
		}
		entry := name
		if msg := strings.TrimSpace(arg); msg != "" {
			entry = name + " (" + msg + ")"
		}
		if !seen[entry] {
			seen[entry] = true
			*missing = append(*missing, entry)
		}
		return match
	default:
		if set {
			return value
		}
		if !seen[name] {
			seen[name] = true
			*missing = append(*missing, name)
		}
		return match
	}
}
