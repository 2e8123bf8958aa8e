// Package expr is a small differentiable expression graph over float64.
//
// Overview:
//
//   - Nodes are immutable: constants (Const), free variables (*Symbol) and
//     operator applications built with Add, Sub, Mul, Div, Neg.
//   - Comparisons (Ge, Gt, Le, Lt) produce 0/1 valued nodes rather than
//     control flow, so interval tests can be multiplied into blended terms and
//     the graph stays branch-free.
//   - Constructors fold constants and drop neutral elements (x+0, x·1, x·0),
//     which keeps graphs built from sparse transform matrices small.
//
// Evaluation:
//
//   - Eval evaluates a node under an Env binding every reachable symbol.
//   - Substitute rewrites symbols into other nodes (partial specialisation).
//   - Diff returns the symbolic derivative with respect to one symbol;
//     comparison masks are treated as locally constant.
//
// Compilation:
//
//	f, err := expr.Compile("shift", [][]*expr.Symbol{cfs, {t}}, outputs)
//	y, err := f.Call(coeffs, []float64{0.3})       // numeric
//	ys, err := f.Apply(symbolicCoeffs, []expr.Node{t2}) // symbolic specialisation
//
// Compile linearises the graph once into an instruction tape; Call and Apply
// replay the tape, so the cost of building the graph is paid a single time.
//
// Errors (sentinel):
//
//   - ErrUnboundSymbol if a reachable symbol has no value / is not a declared input.
//   - ErrArity         if Call/Apply receive the wrong number or length of arguments.
//   - ErrNilNode       if a nil node is passed where a graph is expected.
package expr
