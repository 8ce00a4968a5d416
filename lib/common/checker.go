package common

// Checker carries the state shared by a sequence of `CheckerFunc`; the funcs
// cast it back to the concrete checker type.
type Checker interface {
	GetFuncs() []CheckerFunc
}

type CheckerFunc func(Checker, ...interface{}) error

type DefaultChecker struct {
	Funcs []CheckerFunc
}

func (c *DefaultChecker) GetFuncs() []CheckerFunc {
	return c.Funcs
}

// RunChecker runs the funcs in order and stops at the first error.
func RunChecker(checker Checker, args ...interface{}) error {
	for _, f := range checker.GetFuncs() {
		if err := f(checker, args...); err != nil {
			return err
		}
	}

	return nil
}
