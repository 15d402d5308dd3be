package reconcile

import "sort"

// ComputePlan computes the membership difference between the desired
// input set and a collection's current set. Inputs may contain
// duplicates; the plan operates on distinct keys only. Output slices are
// sorted so repeated runs over the same state produce identical plans.
func ComputePlan(input, current, unresolved []string) Plan {
	inputSet := toSet(input)
	currentSet := toSet(current)

	plan := Plan{
		ToAdd:      []string{},
		ToRemove:   []string{},
		InBoth:     []string{},
		Unresolved: sortedKeys(toSet(unresolved)),
	}

	for key := range inputSet {
		if _, ok := currentSet[key]; ok {
			plan.InBoth = append(plan.InBoth, key)
		} else {
			plan.ToAdd = append(plan.ToAdd, key)
		}
	}
	for key := range currentSet {
		if _, ok := inputSet[key]; !ok {
			plan.ToRemove = append(plan.ToRemove, key)
		}
	}

	sort.Strings(plan.ToAdd)
	sort.Strings(plan.ToRemove)
	sort.Strings(plan.InBoth)
	return plan
}

func toSet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if k != "" {
			set[k] = struct{}{}
		}
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
