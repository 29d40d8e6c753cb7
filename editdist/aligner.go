package editdist

//sentinel marks a diagonal cell as unreachable at its error level
const sentinel int32 = -2

//PrefixEditDist computes the minimum-cost alignment of a against a prefix
//of t within error budget e, using the Landau-Vishkin banded recurrence.
//It returns the number of errors used, the exclusive end offsets into a
//and t, and whether the alignment reached the end of either string (true)
//or is a branch-point partial alignment (false). The edit script is left
//in wa.Delta().
//
//When matchToEnd is false, errors is the error level at which the band
//collapsed, or one past e when the loop ran out of budget; callers must
//branch on matchToEnd, never compare errors to e, to decide whether a
//completed alignment was found.
func (wa *WorkArea) PrefixEditDist(a, t []byte, e int32) (errors, aEnd, tEnd int32, matchToEnd bool) {
	wa.delta = wa.delta[:0]
	m := int32(len(a))
	n := int32(len(t))
	if m == 0 || n == 0 {
		return 0, 0, 0, true
	}
	if e > wa.eMax {
		panic("editdist: requested error budget exceeds EMax")
	}

	shorter := m
	if n < shorter {
		shorter = n
	}
	r := int32(0)
	for r < shorter && a[r] == t[r] {
		r++
	}
	row0 := wa.rowFor(0)
	row0.set(0, r)
	if r == shorter {
		return 0, r, r, true
	}

	matchValue := wa.tuning.BranchPtMatchValue
	bestD, bestE, longestRow := int32(0), int32(0), r
	maxScore := float64(r) * matchValue

	left, right := int32(0), int32(0)
	collapsedAt := int32(-1)
	reachedE := int32(0)

	for curE := int32(1); curE <= e; curE++ {
		reachedE = curE
		prev := wa.rowFor(curE - 1)
		cur := wa.rowFor(curE)

		left = maxI32(left-1, -curE)
		right = minI32(right+1, curE)

		prev.set(left-1, sentinel)
		prev.set(left, sentinel)
		prev.set(right, sentinel)
		prev.set(right+1, sentinel)

		for d := left; d <= right; d++ {
			subVal := 1 + prev.get(d)
			insVal := prev.get(d - 1)
			delVal := 1 + prev.get(d + 1)
			row := subVal
			if insVal > row {
				row = insVal
			}
			if delVal >= row {
				row = delVal
			}

			for row < m && row+d < n && a[row] == t[row+d] {
				row++
			}
			cur.set(d, row)

			//tie-break fires only when the deletion predecessor reached m
			//on its own, with no match-extension afterward: delVal==row
			//means the extension loop above did not advance row at all.
			if row == m && delVal == row && d < right {
				d++
				cur.set(d, row)
			}

			if row == m || row+d == n {
				wa.emitDelta(curE, d, row)
				return curE, row, row + d, true
			}
		}

		for left <= right && belowLimit(cur, left, wa.tuning.EditMatchLimit[curE]) {
			left++
		}
		for left <= right && belowLimit(cur, right, wa.tuning.EditMatchLimit[curE]) {
			right--
		}
		if left > right {
			collapsedAt = curE
			break
		}

		bd, longest := bestInBand(cur, left, right)
		score := float64(longest)*matchValue - float64(curE)
		if score > maxScore {
			maxScore = score
			bestD = bd
			bestE = curE
			longestRow = longest
		}
	}

	wa.emitDelta(bestE, bestD, longestRow)
	if collapsedAt >= 0 {
		return collapsedAt, longestRow, longestRow + bestD, false
	}
	return reachedE + 1, longestRow, longestRow + bestD, false
}

func belowLimit(r row, d int32, limit int32) bool {
	v := r.get(d)
	if v == sentinel {
		return true
	}
	if d > 0 {
		v += d //column drift only applies on the t-heavy side of the band
	}
	return v < limit
}

func bestInBand(r row, left, right int32) (bestD, longest int32) {
	bestD = left
	longest = r.get(left)
	for d := left + 1; d <= right; d++ {
		if v := r.get(d); v > longest {
			longest = v
			bestD = d
		}
	}
	return bestD, longest
}

func maxI32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func minI32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}
