package poller

// Range is an inclusive block range.
type Range struct {
	From uint64
	To   uint64
}

// SplitRange cuts [from, to] into pages of pageSize blocks. Consecutive pages
// share their boundary block. A zero pageSize yields the whole range.
func SplitRange(from, to, pageSize uint64) []Range {
	if from > to {
		return nil
	}
	if pageSize == 0 || to-from <= pageSize {
		return []Range{{From: from, To: to}}
	}

	ranges := make([]Range, 0, (to-from)/pageSize+1)
	for start := from; start < to; start += pageSize {
		end := start + pageSize
		if end > to || end < start {
			end = to
		}
		ranges = append(ranges, Range{From: start, To: end})
	}
	return ranges
}
