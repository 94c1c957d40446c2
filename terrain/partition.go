package terrain

// The three board columns. For any pool the partitions are disjoint and
// their union is the pool minus not_applicable items.

// PendingVerification returns items still awaiting the terrain-required
// decision.
func PendingVerification(items []WorkItem) []WorkItem {
	var out []WorkItem
	for _, it := range items {
		if it.Status == StatusPendingVerification {
			out = append(out, it)
		}
	}
	return out
}

// NeedsScheduling returns verified items that have no scheduled date yet.
func NeedsScheduling(items []WorkItem) []WorkItem {
	var out []WorkItem
	for _, it := range items {
		if it.Status == StatusNeedsScheduling && it.Scheduled == nil {
			out = append(out, it)
		}
	}
	return out
}

// Scheduled returns items carrying both a scheduled date and a team name.
func Scheduled(items []WorkItem) []WorkItem {
	var out []WorkItem
	for _, it := range items {
		if it.Status == StatusNeedsScheduling && it.Scheduled != nil {
			out = append(out, it)
		}
	}
	return out
}
