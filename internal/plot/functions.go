package plot

import (
	"fmt"
	"math"
	"sort"
)

var funcs = map[string]Func{
	// Concentric waves, the default.
	"ripple": func(x, y float64) float64 {
		return math.Cos(10*math.Sqrt(x*x+y*y)) / 4
	},
	"saddle": func(x, y float64) float64 {
		return (x*x - y*y) / 2
	},
	"paraboloid": func(x, y float64) float64 {
		return (x*x+y*y)/2 - 0.5
	},
	"gaussian": func(x, y float64) float64 {
		return math.Exp(-4*(x*x+y*y)) / 2
	},
	"sinc": func(x, y float64) float64 {
		r := 8 * math.Sqrt(x*x+y*y)
		if r == 0 {
			return 0.5
		}
		return math.Sin(r) / r / 2
	},
	"flat": func(x, y float64) float64 { return 0 },
}

// LookupFunc returns the named built-in function.
func LookupFunc(name string) (Func, error) {
	f, ok := funcs[name]
	if !ok {
		return nil, fmt.Errorf("plot: unknown function %q (have %v)", name, FuncNames())
	}
	return f, nil
}

// FuncNames lists the built-in function names in sorted order.
func FuncNames() []string {
	names := make([]string, 0, len(funcs))
	for name := range funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
