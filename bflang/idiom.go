package bflang

import "github.com/reusee/taibf/bfvm"

// matchIdiom returns the single operation equivalent to a loop with the given body.
// Only exact shapes match; anything else stays a loop.
func matchIdiom(body []bfvm.Op) (bfvm.Op, bool) {
	switch len(body) {

	case 1:
		op := body[0]
		switch op.Code() {
		case bfvm.OpAdjustCell:
			return bfvm.OpSetCellZero, true
		case bfvm.OpMovePointer:
			if op.Arg() != 0 {
				return bfvm.OpScanForZero.With(op.Arg()), true
			}
		}

	case 4:
		// [-  >k  +  <k]
		offset := body[1].Arg()
		if offset != 0 &&
			body[0] == bfvm.OpAdjustCell.With(-1) &&
			body[1].Code() == bfvm.OpMovePointer &&
			body[2] == bfvm.OpAdjustCell.With(1) &&
			body[3] == bfvm.OpMovePointer.With(-offset) {
			return bfvm.OpMoveCellTo.With(offset), true
		}

	}
	return 0, false
}
