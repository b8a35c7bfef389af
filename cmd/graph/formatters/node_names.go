package formatters

import "strings"

// BuildNodeNames returns stable, distinct display names for module ids.
// Ids that share the same last segment are disambiguated by increasing
// suffix depth.
func BuildNodeNames(ids []string) map[string]string {
	names := make(map[string]string, len(ids))
	groupedByBase := make(map[string][]string, len(ids))
	for _, id := range ids {
		base := pathSuffix(id, 1)
		groupedByBase[base] = append(groupedByBase[base], id)
	}

	for base, grouped := range groupedByBase {
		if len(grouped) == 1 {
			names[grouped[0]] = base
			continue
		}

		for depth := 2; ; depth++ {
			suffixCounts := make(map[string]int, len(grouped))
			for _, id := range grouped {
				suffixCounts[pathSuffix(id, depth)]++
			}

			allDistinct := true
			for _, id := range grouped {
				if suffixCounts[pathSuffix(id, depth)] > 1 {
					allDistinct = false
					break
				}
			}
			if !allDistinct && depth < maxDepth(grouped) {
				continue
			}

			for _, id := range grouped {
				names[id] = pathSuffix(id, depth)
			}
			break
		}
	}

	return names
}

func maxDepth(ids []string) int {
	depth := 0
	for _, id := range ids {
		if n := len(strings.Split(id, "/")); n > depth {
			depth = n
		}
	}
	return depth
}

func pathSuffix(id string, depth int) string {
	parts := strings.Split(strings.TrimPrefix(id, "/"), "/")
	if depth > len(parts) {
		depth = len(parts)
	}
	return strings.Join(parts[len(parts)-depth:], "/")
}
