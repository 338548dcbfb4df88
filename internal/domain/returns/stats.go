package returns

import "github.com/shopspring/decimal"

// Stats holds dashboard statistics derived from a return record set.
// PerStatusCount always contains an entry for every one of the seven
// statuses, zero-filled when no record holds that status.
type Stats struct {
	Total          int
	PerStatusCount map[ReturnStatus]int
	TotalAmount    decimal.Decimal
}

// ComputeStats derives statistics from the given record set. It is a pure
// function: the same record set always produces the same result. TotalAmount
// sums ReturnAmount over every record regardless of status, so rejected and
// cancelled records still contribute to the monetary total.
func ComputeStats(records []ReturnRecord) Stats {
	counts := make(map[ReturnStatus]int, len(AllStatuses()))
	for _, status := range AllStatuses() {
		counts[status] = 0
	}

	total := decimal.Zero
	for i := range records {
		counts[records[i].Status]++
		total = total.Add(records[i].ReturnAmount)
	}

	return Stats{
		Total:          len(records),
		PerStatusCount: counts,
		TotalAmount:    total,
	}
}
