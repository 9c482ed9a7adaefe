package bfvm

type Interrupt struct {
	Budget bool
}

var (
	InterruptBudget = &Interrupt{
		Budget: true,
	}
)
