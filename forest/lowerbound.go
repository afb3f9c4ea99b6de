package forest

// lowerBound binary-searches list for lookfor. On an exact match it returns
// the matching index. On a miss it returns the lesser of the two final
// search-window pointers: -1 when lookfor is smaller than every element of a
// non-empty list, otherwise the index of the nearest element on either side,
// which the caller must validate.
//
// The routing and rounding logic depends on this exact miss arithmetic; do
// not swap in a conventional lower bound.
func lowerBound[K any](lookfor K, list []K, cmp func(a, b K) int) int {
	if len(list) == 0 {
		return -1
	}

	left, right := 0, len(list)-1
	for left <= right {
		mid := left + (right-left)/2
		comp := cmp(lookfor, list[mid])
		switch {
		case comp < 0:
			right = mid - 1
		case comp > 0:
			left = mid + 1
		default:
			return mid
		}
	}

	// lookfor may be bigger than the last divide; min(left, right) can be -1.
	return min(left, right)
}
