package validator

import "strings"

const (
	ruleSeparator  = "|"
	paramSeparator = ":"
	paramDelimiter = ","
)

// ParseRule splits a rule token into its name and ordered parameters.
// The token is split on the first ":" and the remainder on ",". Nothing is
// trimmed or unescaped, so "in:a, b" yields the parameters "a" and " b".
func ParseRule(token string) (string, []string) {
	name, rest, found := strings.Cut(token, paramSeparator)
	if !found {
		return token, []string{}
	}
	return name, strings.Split(rest, paramDelimiter)
}

// SplitRules splits a pipe-delimited rule list into tokens, keeping order.
func SplitRules(list string) []string {
	return strings.Split(list, ruleSeparator)
}
