package linearblock

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nathanhack/ldpc/gf2"
	"github.com/nathanhack/ldpc/linearblock/internal"
	mat "github.com/nathanhack/sparsemat"
)

var (
	// ErrShape is returned when a vector or matrix does not have the required dimensions.
	ErrShape = errors.New("shape mismatch")
	// ErrNoPivot is returned when H can not be paired with a systematic generator.
	ErrNoPivot = internal.ErrNoPivot
)

//LinearBlock contains the parity matrix H and its systematic generator G.
// H is the column reordered version of the matrix it was built from,
// HColumnOrder[c] is the source column now found in column c.
// Codewords are laid out as [parity | message].
type LinearBlock struct {
	H            *gf2.Matrix
	HColumnOrder []int
	G            *gf2.Matrix
}

//SystematicLinearBlock derives the systematic generator for H and returns the pair.
func SystematicLinearBlock(H *gf2.Matrix) (*LinearBlock, error) {
	Hp, G, order, err := internal.Systematic(H)
	if err != nil {
		return nil, fmt.Errorf("unable to create generator for H matrix: %w", err)
	}
	return &LinearBlock{
		H:            Hp,
		HColumnOrder: order,
		G:            G,
	}, nil
}

// For JSON marshalling
type linearblockJSON struct {
	H            mat.SparseMat
	HColumnOrder []int
	G            mat.SparseMat
}

// For JSON unmarshalling
type linearblock struct {
	H            mat.CSRMatrix
	HColumnOrder []int
	G            mat.CSRMatrix
}

func (l *LinearBlock) MarshalJSON() ([]byte, error) {
	return json.Marshal(linearblockJSON{
		H:            l.H.Sparse(),
		HColumnOrder: l.HColumnOrder,
		G:            l.G.Sparse(),
	})
}

//UnmarshalJSON is needed because the matrices are stored as sparse CSR matrices
func (l *LinearBlock) UnmarshalJSON(bytes []byte) error {
	var lb linearblock
	err := json.Unmarshal(bytes, &lb)
	if err != nil {
		return err
	}

	l.H = gf2.FromSparse(&lb.H)
	l.G = gf2.FromSparse(&lb.G)
	l.HColumnOrder = lb.HColumnOrder
	return nil
}

//Encode multiplies the message by the generator returning the codeword
func Encode(message []uint8, G *gf2.Matrix) ([]uint8, error) {
	rows, _ := G.Dims()
	if len(message) != rows {
		return nil, fmt.Errorf("%w: message length == %v is required but found %v", ErrShape, rows, len(message))
	}
	return G.VecMul(message), nil
}

//ExtractMessage returns the last messageLength bits of the codeword
func ExtractMessage(codeword []uint8, messageLength int) []uint8 {
	if messageLength < 0 || messageLength > len(codeword) {
		panic(fmt.Sprintf("message length %v out of range for codeword length %v", messageLength, len(codeword)))
	}
	result := make([]uint8, messageLength)
	copy(result, codeword[len(codeword)-messageLength:])
	return result
}

//Encode take in a message and encodes it using the linear block, returning a codeword
func (l *LinearBlock) Encode(message []uint8) ([]uint8, error) {
	return Encode(message, l.G)
}

//Decode takes in a codeword and returns the message contained in it
func (l *LinearBlock) Decode(codeword []uint8) (message []uint8) {
	if len(codeword) != l.CodewordLength() {
		panic(fmt.Sprintf("codeword length == %v required but found %v", l.CodewordLength(), len(codeword)))
	}
	return ExtractMessage(codeword, l.MessageLength())
}

func (l *LinearBlock) Syndrome(codeword []uint8) (syndrome []uint8) {
	return l.H.MulVec(codeword)
}

//ToSourceOrder moves the codeword bits into the column order of the matrix H was built from
func (l *LinearBlock) ToSourceOrder(codeword []uint8) []uint8 {
	if len(l.HColumnOrder) > 0 && len(codeword) != len(l.HColumnOrder) {
		panic("vector length must equal ordering length")
	}
	result := make([]uint8, len(codeword))
	for c, c1 := range l.HColumnOrder {
		result[c1] = codeword[c]
	}
	return result
}

//FromSourceOrder is the inverse of ToSourceOrder
func (l *LinearBlock) FromSourceOrder(codeword []uint8) []uint8 {
	if len(l.HColumnOrder) > 0 && len(codeword) != len(l.HColumnOrder) {
		panic("vector length must equal ordering length")
	}
	result := make([]uint8, len(codeword))
	for c, c1 := range l.HColumnOrder {
		result[c] = codeword[c1]
	}
	return result
}

func (l *LinearBlock) MessageLength() int {
	k, _ := l.G.Dims()
	return k
}
func (l *LinearBlock) ParitySymbols() int {
	m, _ := l.H.Dims()
	return m
}
func (l *LinearBlock) CodewordLength() int {
	_, n := l.H.Dims()
	return n
}
func (l *LinearBlock) CodeRate() float64 {
	return float64(l.MessageLength()) / float64(l.CodewordLength())
}

//Validate will test if this linearblock satisfies G*H.T=0, where G is the generator matrix and H.T is the transpose of H
func (l *LinearBlock) Validate() bool {
	return internal.ValidateHGMatrices(l.G, l.H)
}

//Rank returns the GF(2) rank of H
func (l *LinearBlock) Rank() int {
	return internal.CalculateRank(l.H)
}

func (l *LinearBlock) String() string {
	buf := strings.Builder{}
	buf.WriteString("{\nH:\n")
	buf.WriteString(l.H.String())
	buf.WriteString(fmt.Sprintf("Order: %v", l.HColumnOrder))
	buf.WriteString("\nG:\n")
	buf.WriteString(l.G.String())
	buf.WriteString("\n}\n")
	return buf.String()
}
