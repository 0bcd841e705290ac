package drain

import (
	"fmt"
	"strings"
)

// StopPolicy decides, from the joined outcomes of one page, whether to fetch another.
type StopPolicy string

const (
	// PolicyLast continues when the last item of the page (in page order) succeeded.
	PolicyLast StopPolicy = "last"
	// PolicyAny stops as soon as any item of the page failed.
	PolicyAny StopPolicy = "any"
	// PolicyAll stops only when every item of the page failed.
	PolicyAll StopPolicy = "all"
)

// DefaultPolicy is used when none is configured.
const DefaultPolicy = PolicyLast

// Policies lists the accepted policy names.
func Policies() []StopPolicy {
	return []StopPolicy{PolicyLast, PolicyAny, PolicyAll}
}

// ParsePolicy resolves a policy name. An empty name yields DefaultPolicy.
func ParsePolicy(name string) (StopPolicy, error) {
	if name == "" {
		return DefaultPolicy, nil
	}
	p := StopPolicy(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Policies() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown stop policy %q (want last, any or all)", name)
}

// Continue reports whether the drain should fetch another page after a page
// whose item outcomes, in page order, are results.
func (p StopPolicy) Continue(results []bool) bool {
	if len(results) == 0 {
		return false
	}

	switch p {
	case PolicyAny:
		for _, ok := range results {
			if !ok {
				return false
			}
		}
		return true
	case PolicyAll:
		for _, ok := range results {
			if ok {
				return true
			}
		}
		return false
	default:
		return results[len(results)-1]
	}
}
