package compiler

// Aggregate reduces a set of operations to the total task count for one
// resource kind.
//
// Concurrent operations must reserve resources for every instance at the
// same time, so they contribute the sum of their demands. Sequential
// operations run one at a time and only their peak footprint matters.
//
// parallel overrides the per-operation flags for the whole set when
// non-nil: true forces a sum over every operation, false a maximum. When
// nil, each operation's own Parallel flag decides which bucket it lands in
// and the result is the larger of the concurrent footprint and the biggest
// sequential operation.
//
// An empty set, or a set that never uses the selected resource, aggregates
// to zero.
func Aggregate(ops []Operation, kind ResourceKind, parallel *bool) int {
	if parallel != nil {
		if *parallel {
			return sumDemand(ops, kind)
		}
		return maxDemand(ops, kind)
	}

	var concurrent, peak int
	for _, op := range ops {
		d := kind.demand(op)
		if op.Parallel {
			concurrent += d
		} else if d > peak {
			peak = d
		}
	}
	if concurrent > peak {
		return concurrent
	}
	return peak
}

func sumDemand(ops []Operation, kind ResourceKind) int {
	total := 0
	for _, op := range ops {
		total += kind.demand(op)
	}
	return total
}

func maxDemand(ops []Operation, kind ResourceKind) int {
	peak := 0
	for _, op := range ops {
		if d := kind.demand(op); d > peak {
			peak = d
		}
	}
	return peak
}
