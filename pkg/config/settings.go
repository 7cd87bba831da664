package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"
)

var intPattern = regexp.MustCompile(`^[+-]?[0-9]+(?:_[0-9]+)*$`)

// ParseValue converts a raw settings value to its natural type: an int when
// s is an integer, true for yes/y/true, false for no/n/false/f, nil for none,
// and the string itself otherwise. Keywords are case-insensitive and
// surrounding whitespace is ignored.
//
// Integers may group digits with single underscores, as in "1_000".
func ParseValue(s string) any {
	t := strings.TrimSpace(s)
	if intPattern.MatchString(t) {
		if i, err := strconv.Atoi(strings.ReplaceAll(t, "_", "")); err == nil {
			return i
		}
	}
	switch strings.ToLower(t) {
	case "yes", "y", "true":
		return true
	case "no", "n", "false", "f":
		return false
	case "none":
		return nil
	}
	return s
}

// Children extracts the settings nested under parent. Given
//
//	{"sanitize.link_protection": "true", "sanitize.absolute_domain": "${DOMAIN}"}
//
// Children(settings, "sanitize") returns
//
//	{"link_protection": true, "absolute_domain": <value of $DOMAIN>}
//
// Environment references in values are expanded before parsing; references to
// unset variables are left as written.
func Children(settings map[string]string, parent string) map[string]any {
	prefix := parent + "."
	children := make(map[string]any)
	for key, value := range settings {
		child, ok := strings.CutPrefix(key, prefix)
		if !ok || child == "" {
			continue
		}
		children[child] = ParseValue(expandEnv(value))
	}
	return children
}

func expandEnv(s string) string {
	return os.Expand(s, func(name string) string {
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return "${" + name + "}"
	})
}
