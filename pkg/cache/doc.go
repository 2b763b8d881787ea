// Package cache provides a small generic LRU map.
//
// The validator keeps compiled regex rule patterns in one so a rule list
// evaluated on every request compiles each pattern once:
//
//	patterns := cache.NewLRU[string, *regexp.Regexp](256)
//	re, err := patterns.GetOrLoad(raw, func() (*regexp.Regexp, error) {
//		return regexp.Compile(raw)
//	})
package cache
