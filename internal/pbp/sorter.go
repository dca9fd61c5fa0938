package pbp

import "sort"

// sortEvents reorders each run of events sharing a period and clock by
// action rank. Runs keep their relative order, and ties keep feed order.
func sortEvents(events []Event) []Event {
	out := make([]Event, len(events))
	copy(out, events)

	for start := 0; start < len(out); {
		end := start + 1
		for end < len(out) && sameInstant(&out[start], &out[end]) {
			end++
		}
		if end-start > 1 {
			run := out[start:end]
			sort.SliceStable(run, func(i, j int) bool {
				return rank(&run[i]) < rank(&run[j])
			})
		}
		start = end
	}
	return out
}
