// SPDX-License-Identifier: MIT
// Package operator: the closed variant set of operator nodes.
//
// Purpose:
//   - Define Operator, the narrow boundary contract every node satisfies
//     (declared range and source dimensionality), and the fixed set of
//     concrete variants the rule table dispatches over.
//   - Validate every structural invariant eagerly in the constructors, so
//     a successfully built tree always converts (numeric failures aside).
//
// Invariants:
//   - Nodes are immutable after construction and never mutate children.
//   - Trees are strict DAGs of owned children: no cycles, no
//     back-references, safe to convert concurrently.

package operator

import (
	"gonum.org/v1/gonum/mat"

	"github.com/velmor/velmor/vecarray"
)

// Operator is the boundary contract of a linear-map description:
// a declared range and source dimensionality, nothing more. The variant
// set is closed; external implementations are intentionally impossible.
type Operator interface {
	// RangeDim returns the dimensionality of the operator's range.
	RangeDim() int
	// SourceDim returns the dimensionality of the operator's source.
	SourceDim() int

	isOperator()
}

// ---------- Leaf: concrete matrix ----------

// MatrixOperator wraps an explicit dense or sparse matrix.
type MatrixOperator struct {
	m      mat.Matrix
	sparse bool
}

// NewMatrixOperator wraps m. Sparsity is detected from the concrete
// representation.
//
// Errors: ErrNilMatrix.
func NewMatrixOperator(m mat.Matrix) (*MatrixOperator, error) {
	if m == nil {
		return nil, opErrorf("NewMatrixOperator", ErrNilMatrix)
	}

	return &MatrixOperator{m: m, sparse: isSparse(m)}, nil
}

func (o *MatrixOperator) RangeDim() int  { r, _ := o.m.Dims(); return r }
func (o *MatrixOperator) SourceDim() int { _, c := o.m.Dims(); return c }
func (o *MatrixOperator) isOperator()    {}

// Sparse reports whether the wrapped matrix uses a sparse representation.
func (o *MatrixOperator) Sparse() bool { return o.sparse }

// AsDense returns the wrapped matrix in dense form (pass-through for an
// already-dense matrix).
func (o *MatrixOperator) AsDense() *mat.Dense { return densify(o.m) }

// AsSparse returns the wrapped matrix re-encoded into the given sparse
// scheme.
//
// Errors: ErrInvalidFormat for a non-sparse scheme name.
func (o *MatrixOperator) AsSparse(f Format) (mat.Matrix, error) {
	if !f.sparseScheme() {
		return nil, opErrorf("AsSparse", ErrInvalidFormat)
	}

	return encode(o.m, f)
}

// ---------- Leaf: vector-array-backed ----------

// VectorArrayOperator maps coefficient vectors onto linear combinations
// of the rows of a vector array. In the natural orientation the array
// rows act as columns (range = Dim, source = Len); the transposed flag
// flips that.
type VectorArrayOperator struct {
	arr        *vecarray.Array
	transposed bool
}

// NewVectorArrayOperator wraps arr. The array is referenced, not copied;
// callers must not mutate it while the operator is alive (shallow-copy it
// in via arr.Copy() to be safe).
//
// Errors: ErrNilMatrix for a nil array.
func NewVectorArrayOperator(arr *vecarray.Array, transposed bool) (*VectorArrayOperator, error) {
	if arr == nil {
		return nil, opErrorf("NewVectorArrayOperator", ErrNilMatrix)
	}

	return &VectorArrayOperator{arr: arr, transposed: transposed}, nil
}

func (o *VectorArrayOperator) RangeDim() int {
	if o.transposed {
		return o.arr.Len()
	}

	return o.arr.Dim()
}

func (o *VectorArrayOperator) SourceDim() int {
	if o.transposed {
		return o.arr.Dim()
	}

	return o.arr.Len()
}

func (o *VectorArrayOperator) isOperator() {}

// Transposed reports the orientation flag.
func (o *VectorArrayOperator) Transposed() bool { return o.transposed }

// ---------- Composite: block assembly ----------

// BlockOperator assembles a grid of sub-operators into one operator. A
// nil entry denotes a zero block; its shape is inferred from the non-nil
// blocks sharing its row and column.
type BlockOperator struct {
	blocks  [][]Operator
	rowDims []int
	colDims []int
}

// NewBlockOperator validates and wraps a rectangular block grid.
//
// Errors: ErrBadShape for empty or ragged grids or a fully-nil row or
// column; ErrDimensionMismatch for inconsistent block shapes.
func NewBlockOperator(blocks [][]Operator) (*BlockOperator, error) {
	nr := len(blocks)
	if nr == 0 || len(blocks[0]) == 0 {
		return nil, opErrorf("NewBlockOperator", ErrBadShape)
	}
	nc := len(blocks[0])
	for _, row := range blocks {
		if len(row) != nc {
			return nil, opErrorf("NewBlockOperator", ErrBadShape)
		}
	}

	rowDims := make([]int, nr)
	colDims := make([]int, nc)
	for i := range rowDims {
		rowDims[i] = -1
	}
	for j := range colDims {
		colDims[j] = -1
	}
	for i, row := range blocks {
		for j, blk := range row {
			if blk == nil {
				continue
			}
			if rowDims[i] == -1 {
				rowDims[i] = blk.RangeDim()
			} else if rowDims[i] != blk.RangeDim() {
				return nil, opErrorf("NewBlockOperator", ErrDimensionMismatch)
			}
			if colDims[j] == -1 {
				colDims[j] = blk.SourceDim()
			} else if colDims[j] != blk.SourceDim() {
				return nil, opErrorf("NewBlockOperator", ErrDimensionMismatch)
			}
		}
	}
	for _, d := range rowDims {
		if d == -1 {
			return nil, opErrorf("NewBlockOperator", ErrBadShape)
		}
	}
	for _, d := range colDims {
		if d == -1 {
			return nil, opErrorf("NewBlockOperator", ErrBadShape)
		}
	}

	grid := make([][]Operator, nr)
	for i, row := range blocks {
		grid[i] = append([]Operator(nil), row...)
	}

	return &BlockOperator{blocks: grid, rowDims: rowDims, colDims: colDims}, nil
}

// NewBlockDiagonal assembles ops along the diagonal with zero blocks
// elsewhere.
//
// Errors: ErrBadShape for an empty operand list.
func NewBlockDiagonal(ops ...Operator) (*BlockOperator, error) {
	if len(ops) == 0 {
		return nil, opErrorf("NewBlockDiagonal", ErrBadShape)
	}
	grid := make([][]Operator, len(ops))
	for i, op := range ops {
		if op == nil {
			return nil, opErrorf("NewBlockDiagonal", ErrNilOperator)
		}
		grid[i] = make([]Operator, len(ops))
		grid[i][i] = op
	}

	return NewBlockOperator(grid)
}

func (o *BlockOperator) RangeDim() int  { return sum(o.rowDims) }
func (o *BlockOperator) SourceDim() int { return sum(o.colDims) }
func (o *BlockOperator) isOperator()    {}

func sum(dims []int) int {
	t := 0
	for _, d := range dims {
		t += d
	}

	return t
}

// ---------- Composite: adjoint ----------

// AdjointOperator is the transpose of an operator, optionally composed
// with range and source inner products. With both products present the
// compiled matrix is solve(S, opᵀ·R): the source-side composition is a
// change of basis via a Riesz representative, realized as a linear solve.
type AdjointOperator struct {
	op            Operator
	sourceProduct Operator
	rangeProduct  Operator
}

// NewAdjointOperator wraps op. Inner products are attached via
// WithSourceProduct / WithRangeProduct and must be square with the
// matching dimension of op.
//
// Errors: ErrNilOperator; ErrUnsupportedOperator for a non-square or
// mismatched inner product.
func NewAdjointOperator(op Operator, opts ...AdjointOption) (*AdjointOperator, error) {
	if op == nil {
		return nil, opErrorf("NewAdjointOperator", ErrNilOperator)
	}
	o := gatherAdjointOptions(opts...)
	if p := o.rangeProduct; p != nil {
		if p.RangeDim() != p.SourceDim() || p.RangeDim() != op.RangeDim() {
			return nil, opErrorf("NewAdjointOperator: range product", ErrUnsupportedOperator)
		}
	}
	if p := o.sourceProduct; p != nil {
		if p.RangeDim() != p.SourceDim() || p.RangeDim() != op.SourceDim() {
			return nil, opErrorf("NewAdjointOperator: source product", ErrUnsupportedOperator)
		}
	}

	return &AdjointOperator{op: op, sourceProduct: o.sourceProduct, rangeProduct: o.rangeProduct}, nil
}

func (o *AdjointOperator) RangeDim() int  { return o.op.SourceDim() }
func (o *AdjointOperator) SourceDim() int { return o.op.RangeDim() }
func (o *AdjointOperator) isOperator()    {}

// ---------- Composite: concatenation ----------

// Concatenation composes two operators: apply first, then second.
type Concatenation struct {
	second Operator
	first  Operator
}

// NewConcatenation builds second∘first.
//
// Errors: ErrNilOperator; ErrDimensionMismatch when the inner dimensions
// disagree.
func NewConcatenation(second, first Operator) (*Concatenation, error) {
	if second == nil || first == nil {
		return nil, opErrorf("NewConcatenation", ErrNilOperator)
	}
	if second.SourceDim() != first.RangeDim() {
		return nil, opErrorf("NewConcatenation", ErrDimensionMismatch)
	}

	return &Concatenation{second: second, first: first}, nil
}

func (o *Concatenation) RangeDim() int  { return o.second.RangeDim() }
func (o *Concatenation) SourceDim() int { return o.first.SourceDim() }
func (o *Concatenation) isOperator()    {}

// ---------- Composite: linear combination ----------

// LincombOperator is the weighted sum Σ cᵢ·Opᵢ over same-shape operands.
type LincombOperator struct {
	ops    []Operator
	coeffs []Coefficient
}

// NewLincombOperator pairs operands with coefficients one-to-one.
//
// Errors: ErrBadShape for empty or mismatched operand/coefficient lists;
// ErrNilOperator; ErrDimensionMismatch for differently-shaped operands.
func NewLincombOperator(ops []Operator, coeffs []Coefficient) (*LincombOperator, error) {
	if len(ops) == 0 || len(ops) != len(coeffs) {
		return nil, opErrorf("NewLincombOperator", ErrBadShape)
	}
	for i, op := range ops {
		if op == nil || coeffs[i] == nil {
			return nil, opErrorf("NewLincombOperator", ErrNilOperator)
		}
		if op.RangeDim() != ops[0].RangeDim() || op.SourceDim() != ops[0].SourceDim() {
			return nil, opErrorf("NewLincombOperator", ErrDimensionMismatch)
		}
	}

	return &LincombOperator{
		ops:    append([]Operator(nil), ops...),
		coeffs: append([]Coefficient(nil), coeffs...),
	}, nil
}

func (o *LincombOperator) RangeDim() int  { return o.ops[0].RangeDim() }
func (o *LincombOperator) SourceDim() int { return o.ops[0].SourceDim() }
func (o *LincombOperator) isOperator()    {}

// ---------- Placeholders ----------

// IdentityOperator is the identity map on a space of the given dimension.
type IdentityOperator struct {
	dim int
}

// NewIdentityOperator builds the identity on dim dimensions.
//
// Errors: ErrBadShape for dim < 1.
func NewIdentityOperator(dim int) (*IdentityOperator, error) {
	if dim < 1 {
		return nil, opErrorf("NewIdentityOperator", ErrBadShape)
	}

	return &IdentityOperator{dim: dim}, nil
}

func (o *IdentityOperator) RangeDim() int  { return o.dim }
func (o *IdentityOperator) SourceDim() int { return o.dim }
func (o *IdentityOperator) isOperator()    {}

// ZeroOperator is the zero map of a declared range × source shape.
type ZeroOperator struct {
	rangeDim  int
	sourceDim int
}

// NewZeroOperator builds the zero map.
//
// Errors: ErrBadShape for non-positive dimensions.
func NewZeroOperator(rangeDim, sourceDim int) (*ZeroOperator, error) {
	if rangeDim < 1 || sourceDim < 1 {
		return nil, opErrorf("NewZeroOperator", ErrBadShape)
	}

	return &ZeroOperator{rangeDim: rangeDim, sourceDim: sourceDim}, nil
}

func (o *ZeroOperator) RangeDim() int  { return o.rangeDim }
func (o *ZeroOperator) SourceDim() int { return o.sourceDim }
func (o *ZeroOperator) isOperator()    {}

// ---------- Component projection ----------

// ComponentProjection selects k source components into k range rows,
// one-hot per row: row i carries a single 1 at column components[i].
type ComponentProjection struct {
	components []int
	sourceDim  int
}

// NewComponentProjection builds the projection of the listed components
// out of a source of the given dimension.
//
// Errors: ErrBadShape for an empty component list or sourceDim < 1;
// ErrIndexOutOfRange for components outside [0, sourceDim).
func NewComponentProjection(components []int, sourceDim int) (*ComponentProjection, error) {
	if len(components) == 0 || sourceDim < 1 {
		return nil, opErrorf("NewComponentProjection", ErrBadShape)
	}
	for _, c := range components {
		if c < 0 || c >= sourceDim {
			return nil, opErrorf("NewComponentProjection", ErrIndexOutOfRange)
		}
	}

	return &ComponentProjection{
		components: append([]int(nil), components...),
		sourceDim:  sourceDim,
	}, nil
}

func (o *ComponentProjection) RangeDim() int  { return len(o.components) }
func (o *ComponentProjection) SourceDim() int { return o.sourceDim }
func (o *ComponentProjection) isOperator()    {}
