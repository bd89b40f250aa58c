package lloyd

// span is a half-open range of point indices owned by one worker task.
type span struct {
	start, end int
}

// chunkSpans partitions n points into contiguous, disjoint spans.
// With chunkSize <= 0 the points are split evenly across workers; otherwise
// one span per chunkSize points is produced.
func chunkSpans(n, chunkSize, workers int) []span {
	if n <= 0 {
		return nil
	}
	if chunkSize <= 0 {
		if workers < 1 {
			workers = 1
		}
		chunkSize = (n + workers - 1) / workers
	}

	spans := make([]span, 0, (n+chunkSize-1)/chunkSize)
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		spans = append(spans, span{start: start, end: end})
	}
	return spans
}
