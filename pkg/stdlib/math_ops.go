package stdlib

import (
	"math"

	"github.com/chirplang/chirp/pkg/evaluator"
)

const (
	pi     = math.Pi
	tau    = 2 * math.Pi
	eulerE = math.E
)

func registerMathOps(reg map[string]*evaluator.BuiltinFn) {
	register(reg, "sin", params("x"), func(a []float64) float64 { return math.Sin(a[0]) })
	register(reg, "cos", params("x"), func(a []float64) float64 { return math.Cos(a[0]) })
	register(reg, "tan", params("x"), func(a []float64) float64 { return math.Tan(a[0]) })
	register(reg, "sqrt", params("x"), func(a []float64) float64 { return math.Sqrt(a[0]) })
	register(reg, "abs", params("x"), func(a []float64) float64 { return math.Abs(a[0]) })
	register(reg, "floor", params("x"), func(a []float64) float64 { return math.Floor(a[0]) })
	register(reg, "ceil", params("x"), func(a []float64) float64 { return math.Ceil(a[0]) })
	register(reg, "exp", params("x"), func(a []float64) float64 { return math.Exp(a[0]) })
	register(reg, "log", params("x"), func(a []float64) float64 { return math.Log(a[0]) })
	register(reg, "min", params("a", "b"), func(a []float64) float64 { return math.Min(a[0], a[1]) })
	register(reg, "max", params("a", "b"), func(a []float64) float64 { return math.Max(a[0], a[1]) })
	register(reg, "pow", params("base", "exp"), func(a []float64) float64 { return math.Pow(a[0], a[1]) })
}
