package gf2

import (
	"fmt"
	"math/bits"
	"strings"

	mat "github.com/nathanhack/sparsemat"
)

const wordSize = 64

// Matrix is a dense binary matrix with its rows packed into 64 bit words.
// Indexing outside of the dimensions panics.
type Matrix struct {
	rows, cols int
	stride     int
	data       []uint64
}

func words(cols int) int {
	return (cols + wordSize - 1) / wordSize
}

// NewMatrix creates a rows x cols matrix. If values are given there must be
// rows*cols of them in row-major order, any odd value is treated as a one.
func NewMatrix(rows, cols int, values ...int) *Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("gf2: negative dimensions (%v, %v)", rows, cols))
	}
	if len(values) > 0 && len(values) != rows*cols {
		panic(fmt.Sprintf("gf2: expected %v values but found %v", rows*cols, len(values)))
	}
	m := &Matrix{
		rows:   rows,
		cols:   cols,
		stride: words(cols),
	}
	m.data = make([]uint64, rows*m.stride)
	for i, v := range values {
		if v&1 == 1 {
			m.Set(i/cols, i%cols, 1)
		}
	}
	return m
}

// Identity returns the n x n identity matrix.
func Identity(n int) *Matrix {
	m := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// FromRows builds a matrix from rows of 0/1 values. All rows must have the same length.
func FromRows(rows [][]uint8) *Matrix {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	m := NewMatrix(len(rows), cols)
	for i, row := range rows {
		if len(row) != cols {
			panic(fmt.Sprintf("gf2: row %v has length %v but expected %v", i, len(row), cols))
		}
		for j, v := range row {
			if v&1 == 1 {
				m.Set(i, j, 1)
			}
		}
	}
	return m
}

func (m *Matrix) Dims() (rows, cols int) {
	return m.rows, m.cols
}

func (m *Matrix) check(i, j int) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("gf2: index (%v, %v) out of range for matrix of shape (%v, %v)", i, j, m.rows, m.cols))
	}
}

func (m *Matrix) checkRow(i int) {
	if i < 0 || i >= m.rows {
		panic(fmt.Sprintf("gf2: row %v out of range [0, %v)", i, m.rows))
	}
}

func (m *Matrix) checkCol(j int) {
	if j < 0 || j >= m.cols {
		panic(fmt.Sprintf("gf2: column %v out of range [0, %v)", j, m.cols))
	}
}

func (m *Matrix) row(i int) []uint64 {
	return m.data[i*m.stride : (i+1)*m.stride]
}

// At returns the value at (i, j) as 0 or 1.
func (m *Matrix) At(i, j int) int {
	m.check(i, j)
	return int(m.data[i*m.stride+j/wordSize]>>(uint(j)%wordSize)) & 1
}

// Set sets (i, j) to value mod 2.
func (m *Matrix) Set(i, j, value int) {
	m.check(i, j)
	idx := i*m.stride + j/wordSize
	mask := uint64(1) << (uint(j) % wordSize)
	if value&1 == 1 {
		m.data[idx] |= mask
	} else {
		m.data[idx] &^= mask
	}
}

// Row returns a copy of row i as 0/1 values.
func (m *Matrix) Row(i int) []uint8 {
	m.checkRow(i)
	return unpack(m.row(i), m.cols)
}

// RowNonzero returns the sorted column indices of the ones in row i.
func (m *Matrix) RowNonzero(i int) []int {
	m.checkRow(i)
	result := make([]int, 0)
	for w, word := range m.row(i) {
		for word != 0 {
			b := bits.TrailingZeros64(word)
			result = append(result, w*wordSize+b)
			word &= word - 1
		}
	}
	return result
}

// ColumnNonzero returns the sorted row indices of the ones in column j.
func (m *Matrix) ColumnNonzero(j int) []int {
	m.checkCol(j)
	result := make([]int, 0)
	w, mask := j/wordSize, uint64(1)<<(uint(j)%wordSize)
	for i := 0; i < m.rows; i++ {
		if m.data[i*m.stride+w]&mask != 0 {
			result = append(result, i)
		}
	}
	return result
}

func (m *Matrix) RowWeight(i int) int {
	m.checkRow(i)
	count := 0
	for _, word := range m.row(i) {
		count += bits.OnesCount64(word)
	}
	return count
}

func (m *Matrix) ColumnWeight(j int) int {
	return len(m.ColumnNonzero(j))
}

func (m *Matrix) SwapRows(i, j int) {
	m.checkRow(i)
	m.checkRow(j)
	if i == j {
		return
	}
	a, b := m.row(i), m.row(j)
	for w := range a {
		a[w], b[w] = b[w], a[w]
	}
}

func (m *Matrix) SwapColumns(i, j int) {
	m.checkCol(i)
	m.checkCol(j)
	if i == j {
		return
	}
	wi, si := i/wordSize, uint(i)%wordSize
	wj, sj := j/wordSize, uint(j)%wordSize
	for r := 0; r < m.rows; r++ {
		row := m.row(r)
		bi := (row[wi] >> si) & 1
		bj := (row[wj] >> sj) & 1
		if bi != bj {
			row[wi] ^= 1 << si
			row[wj] ^= 1 << sj
		}
	}
}

// AddRow sets row dst to dst + src over GF(2).
func (m *Matrix) AddRow(dst, src int) {
	m.checkRow(dst)
	m.checkRow(src)
	d, s := m.row(dst), m.row(src)
	for w := range d {
		d[w] ^= s[w]
	}
}

func (m *Matrix) Copy() *Matrix {
	result := &Matrix{
		rows:   m.rows,
		cols:   m.cols,
		stride: m.stride,
		data:   make([]uint64, len(m.data)),
	}
	copy(result.data, m.data)
	return result
}

// T returns the transpose of m.
func (m *Matrix) T() *Matrix {
	result := NewMatrix(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for _, j := range m.RowNonzero(i) {
			result.Set(j, i, 1)
		}
	}
	return result
}

// Slice returns a copy of the rows x cols sub matrix starting at (i, j).
func (m *Matrix) Slice(i, j, rows, cols int) *Matrix {
	if rows < 0 || cols < 0 || i < 0 || j < 0 || i+rows > m.rows || j+cols > m.cols {
		panic(fmt.Sprintf("gf2: slice (%v, %v, %v, %v) out of range for matrix of shape (%v, %v)", i, j, rows, cols, m.rows, m.cols))
	}
	result := NewMatrix(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if m.At(i+r, j+c) == 1 {
				result.Set(r, c, 1)
			}
		}
	}
	return result
}

// SetMatrix copies a into m with a's (0,0) placed at (i, j).
func (m *Matrix) SetMatrix(a *Matrix, i, j int) {
	if i < 0 || j < 0 || i+a.rows > m.rows || j+a.cols > m.cols {
		panic(fmt.Sprintf("gf2: matrix of shape (%v, %v) does not fit at (%v, %v) in (%v, %v)", a.rows, a.cols, i, j, m.rows, m.cols))
	}
	for r := 0; r < a.rows; r++ {
		for c := 0; c < a.cols; c++ {
			m.Set(i+r, j+c, a.At(r, c))
		}
	}
}

func (m *Matrix) Equals(a *Matrix) bool {
	if a == nil || m.rows != a.rows || m.cols != a.cols {
		return false
	}
	for i, w := range m.data {
		if a.data[i] != w {
			return false
		}
	}
	return true
}

func (m *Matrix) IsZero() bool {
	for _, w := range m.data {
		if w != 0 {
			return false
		}
	}
	return true
}

// MulVec returns m*v, v must have one entry per column.
func (m *Matrix) MulVec(v []uint8) []uint8 {
	if len(v) != m.cols {
		panic(fmt.Sprintf("gf2: vector length %v does not match %v columns", len(v), m.cols))
	}
	packed := pack(v)
	result := make([]uint8, m.rows)
	for i := 0; i < m.rows; i++ {
		count := 0
		for w, word := range m.row(i) {
			count += bits.OnesCount64(word & packed[w])
		}
		result[i] = uint8(count & 1)
	}
	return result
}

// VecMul returns v*m, v must have one entry per row.
func (m *Matrix) VecMul(v []uint8) []uint8 {
	if len(v) != m.rows {
		panic(fmt.Sprintf("gf2: vector length %v does not match %v rows", len(v), m.rows))
	}
	acc := make([]uint64, m.stride)
	for i, b := range v {
		if b&1 == 0 {
			continue
		}
		for w, word := range m.row(i) {
			acc[w] ^= word
		}
	}
	return unpack(acc, m.cols)
}

// PermuteColumns returns a new matrix whose column k is column perm[k] of m.
func (m *Matrix) PermuteColumns(perm []int) *Matrix {
	if len(perm) != m.cols {
		panic(fmt.Sprintf("gf2: permutation length %v does not match %v columns", len(perm), m.cols))
	}
	result := NewMatrix(m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		for k, p := range perm {
			if m.At(i, p) == 1 {
				result.Set(i, k, 1)
			}
		}
	}
	return result
}

// String renders one line per row using the characters '0' and '1'.
func (m *Matrix) String() string {
	sb := strings.Builder{}
	sb.Grow(m.rows * (m.cols + 1))
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			if m.At(i, j) == 1 {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Sparse converts m to a CSR sparse matrix.
func (m *Matrix) Sparse() mat.SparseMat {
	result := mat.CSRMat(m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		for _, j := range m.RowNonzero(i) {
			result.Set(i, j, 1)
		}
	}
	return result
}

// FromSparse converts a sparse matrix into a dense packed one.
func FromSparse(s mat.SparseMat) *Matrix {
	rows, cols := s.Dims()
	result := NewMatrix(rows, cols)
	for i := 0; i < rows; i++ {
		for _, j := range s.Row(i).NonzeroArray() {
			result.Set(i, j, 1)
		}
	}
	return result
}

func pack(v []uint8) []uint64 {
	result := make([]uint64, words(len(v)))
	for i, b := range v {
		if b&1 == 1 {
			result[i/wordSize] |= 1 << (uint(i) % wordSize)
		}
	}
	return result
}

func unpack(words []uint64, n int) []uint8 {
	result := make([]uint8, n)
	for i := 0; i < n; i++ {
		result[i] = uint8(words[i/wordSize]>>(uint(i)%wordSize)) & 1
	}
	return result
}
