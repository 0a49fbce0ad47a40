package finance

// ApplyTrend sets ChangePercent on every bucket after the first whose
// predecessor has a non-zero total. Other buckets keep a nil ChangePercent.
func ApplyTrend(buckets []Bucket) {
	for i := range buckets {
		buckets[i].ChangePercent = nil
		if i == 0 {
			continue
		}
		if pct, ok := PercentChange(buckets[i].Total, buckets[i-1].Total); ok {
			buckets[i].ChangePercent = &pct
		}
	}
}
