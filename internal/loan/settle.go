package loan

// Settle absorbs a repayment into the given open loans, oldest first. Boxes
// and sachets are settled independently. Rows whose outstanding balance
// reaches zero are marked settled. It returns the rows it changed.
//
// The whole repayment must fit: if the requested quantities exceed the total
// outstanding balance across the rows, nothing is modified and
// ErrOverRepayment is returned.
func Settle(open []*Loan, boxes, sachets int) ([]*Loan, error) {
	var totalBoxes, totalSachets int

	for _, l := range open {
		totalBoxes += l.OutstandingBoxes
		totalSachets += l.OutstandingSachets
	}

	if boxes > totalBoxes || sachets > totalSachets {
		return nil, ErrOverRepayment
	}

	var changed []*Loan

	for _, l := range open {
		if boxes == 0 && sachets == 0 {
			break
		}

		touched := false

		if boxes > 0 && l.OutstandingBoxes > 0 {
			take := min(boxes, l.OutstandingBoxes)
			l.OutstandingBoxes -= take
			boxes -= take
			touched = true
		}

		if sachets > 0 && l.OutstandingSachets > 0 {
			take := min(sachets, l.OutstandingSachets)
			l.OutstandingSachets -= take
			sachets -= take
			touched = true
		}

		if l.OutstandingBoxes == 0 && l.OutstandingSachets == 0 {
			l.Status = StatusSettled
		}

		if touched {
			changed = append(changed, l)
		}
	}

	return changed, nil
}
