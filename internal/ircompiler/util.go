package ircompiler

import "sort"

// sortedKeys returns a map's keys in sorted order, so repeated compiles of
// an unchanged snapshot produce byte-identical output regardless of Go's
// randomized map iteration.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedSet(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
