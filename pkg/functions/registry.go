// Package functions holds the table of built-in functions available to FXYT
// programs.
//
// The parser consults the table to validate function names and arities at
// parse time; the evaluator dispatches through it when a call node is
// evaluated. All built-ins operate on float64 values and must return a finite
// result: a non-finite result is reported as a domain error so that every
// successful evaluation yields a finite scalar.
//
// Custom functions can be added with [Register]; registration must happen
// before any program using the function is compiled.
package functions

import (
	"fmt"
	"math"
	"sync"

	"github.com/fxyt-lang/fxyt/pkg/types"
)

// Func is the signature of a built-in implementation.
// args holds the evaluated arguments, in order, exactly Arity of them.
type Func func(args []float64) (float64, error)

// FunctionDef describes one entry of the built-in table.
type FunctionDef struct {
	// Name is the function name as it appears in program source.
	Name string
	// Arity is the exact number of arguments the function takes.
	Arity int
	// Impl is the implementation.
	Impl Func
}

var (
	mu       sync.RWMutex
	registry = map[string]*FunctionDef{}
)

func init() {
	builtins := []FunctionDef{
		{Name: "sin", Arity: 1, Impl: fn1(math.Sin)},
		{Name: "cos", Arity: 1, Impl: fn1(math.Cos)},
		{Name: "tan", Arity: 1, Impl: fn1(math.Tan)},
		{Name: "abs", Arity: 1, Impl: fn1(math.Abs)},
		{Name: "floor", Arity: 1, Impl: fn1(math.Floor)},
		{Name: "ceil", Arity: 1, Impl: fn1(math.Ceil)},
		{Name: "exp", Arity: 1, Impl: fn1(math.Exp)},
		{Name: "atan", Arity: 1, Impl: fn1(math.Atan)},
		{Name: "sqrt", Arity: 1, Impl: fnSqrt},
		{Name: "log", Arity: 1, Impl: fnLog},
		{Name: "min", Arity: 2, Impl: fn2(math.Min)},
		{Name: "max", Arity: 2, Impl: fn2(math.Max)},
		{Name: "pow", Arity: 2, Impl: fn2(math.Pow)},
		{Name: "atan2", Arity: 2, Impl: fn2(math.Atan2)},
	}
	for i := range builtins {
		registry[builtins[i].Name] = &builtins[i]
	}
}

// Lookup returns the definition of a function by name.
func Lookup(name string) (*FunctionDef, bool) {
	mu.RLock()
	def, ok := registry[name]
	mu.RUnlock()
	return def, ok
}

// Call evaluates the named function with the given arguments.
// A non-finite result is reported as a domain error.
func Call(name string, args []float64) (float64, error) {
	def, ok := Lookup(name)
	if !ok {
		return 0, &types.Error{
			Code:     types.ErrUnknownFunction,
			Message:  fmt.Sprintf("Unknown function %q", name),
			Position: -1,
			Token:    name,
		}
	}
	result, err := def.Impl(args)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, &types.Error{
			Code:     types.ErrDomain,
			Message:  fmt.Sprintf("Function %q: non-finite result for arguments %v", name, args),
			Position: -1,
			Token:    name,
		}
	}
	return result, nil
}

// Register adds a custom function to the table, replacing any existing
// definition with the same name. It is safe for concurrent use, but must be
// called before compiling programs that reference the function.
func Register(name string, arity int, impl Func) {
	mu.Lock()
	registry[name] = &FunctionDef{Name: name, Arity: arity, Impl: impl}
	mu.Unlock()
}

// Names returns the names of all registered functions, in no particular order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// fn1 adapts a one-argument math function.
func fn1(f func(float64) float64) Func {
	return func(args []float64) (float64, error) {
		return f(args[0]), nil
	}
}

// fn2 adapts a two-argument math function.
func fn2(f func(float64, float64) float64) Func {
	return func(args []float64) (float64, error) {
		return f(args[0], args[1]), nil
	}
}

func fnSqrt(args []float64) (float64, error) {
	if args[0] < 0 {
		return 0, domainError("sqrt", args[0])
	}
	return math.Sqrt(args[0]), nil
}

func fnLog(args []float64) (float64, error) {
	if args[0] <= 0 {
		return 0, domainError("log", args[0])
	}
	return math.Log(args[0]), nil
}

func domainError(name string, arg float64) error {
	return &types.Error{
		Code:     types.ErrDomain,
		Message:  fmt.Sprintf("Function %q: argument %v out of domain", name, arg),
		Position: -1,
		Token:    name,
	}
}
