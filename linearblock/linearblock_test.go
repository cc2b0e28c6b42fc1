package linearblock

import (
	"encoding/json"
	"errors"
	"reflect"
	"strconv"
	"testing"

	"github.com/nathanhack/ldpc/gf2"
	"golang.org/x/exp/rand"
)

func hamming7(t *testing.T) *LinearBlock {
	H := gf2.NewMatrix(3, 7,
		1, 0, 0, 1, 1, 1, 0,
		0, 1, 0, 1, 1, 0, 1,
		0, 0, 1, 0, 1, 1, 1)
	lb, err := SystematicLinearBlock(H)
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}
	return lb
}

func TestOrderUnorderVector(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	vec := make([]uint8, 100)
	columns := make([]int, len(vec))
	for i := range vec {
		vec[i] = uint8(rng.Intn(2))
		columns[i] = i
	}

	rng.Shuffle(len(columns), func(i, j int) {
		columns[i], columns[j] = columns[j], columns[i]
	})

	lb := &LinearBlock{HColumnOrder: columns}
	swapped := lb.ToSourceOrder(vec)
	actual := lb.FromSourceOrder(swapped)

	if !reflect.DeepEqual(vec, actual) {
		t.Fatalf("expected %v but found %v", vec, actual)
	}
}

func TestLinearBlock_Dims(t *testing.T) {
	lb := hamming7(t)
	if lb.MessageLength() != 4 {
		t.Fatalf("expected %v but found %v", 4, lb.MessageLength())
	}
	if lb.ParitySymbols() != 3 {
		t.Fatalf("expected %v but found %v", 3, lb.ParitySymbols())
	}
	if lb.CodewordLength() != 7 {
		t.Fatalf("expected %v but found %v", 7, lb.CodewordLength())
	}
	if lb.CodeRate() != 4.0/7.0 {
		t.Fatalf("expected %v but found %v", 4.0/7.0, lb.CodeRate())
	}
	if lb.Rank() != 3 {
		t.Fatalf("expected %v but found %v", 3, lb.Rank())
	}
	if !lb.Validate() {
		t.Fatalf("expected valid linearblock code")
	}
}

func TestLinearBlock_Encode(t *testing.T) {
	lb := hamming7(t)
	for m := 0; m < 16; m++ {
		t.Run(strconv.Itoa(m), func(t *testing.T) {
			message := make([]uint8, 4)
			for i := range message {
				message[i] = uint8(m>>i) & 1
			}
			codeword, err := lb.Encode(message)
			if err != nil {
				t.Fatalf("expected no error but found: %v", err)
			}

			if syndrome := lb.Syndrome(codeword); !gf2.IsZeroVec(syndrome) {
				t.Fatalf("expected zero syndrome but found %v", syndrome)
			}

			if actual := lb.Decode(codeword); !reflect.DeepEqual(actual, message) {
				t.Fatalf("expected %v but found %v", message, actual)
			}

			if m == 0 && gf2.HammingWeight(codeword) != 0 {
				t.Fatalf("expected the zero codeword but found %v", codeword)
			}
		})
	}
}

func TestEncode_UnitVectors(t *testing.T) {
	lb := hamming7(t)
	for i := 0; i < lb.MessageLength(); i++ {
		message := make([]uint8, lb.MessageLength())
		message[i] = 1
		actual, err := Encode(message, lb.G)
		if err != nil {
			t.Fatalf("expected no error but found: %v", err)
		}
		expected := lb.G.Row(i)
		if !reflect.DeepEqual(actual, expected) {
			t.Fatalf("expected %v but found %v", expected, actual)
		}
	}
}

func TestEncode_Shape(t *testing.T) {
	lb := hamming7(t)
	_, err := Encode([]uint8{1, 0, 1}, lb.G)
	if !errors.Is(err, ErrShape) {
		t.Fatalf("expected %v but found %v", ErrShape, err)
	}
}

func TestExtractMessage(t *testing.T) {
	actual := ExtractMessage([]uint8{0, 1, 1, 0, 1, 1}, 4)
	expected := []uint8{1, 0, 1, 1}
	if !reflect.DeepEqual(actual, expected) {
		t.Fatalf("expected %v but found %v", expected, actual)
	}
}

func TestLinearBlock_JSON(t *testing.T) {
	expected := hamming7(t)

	bs, err := json.Marshal(expected)
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}

	var actual LinearBlock
	err = json.Unmarshal(bs, &actual)
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}

	if !actual.H.Equals(expected.H) {
		t.Fatalf("expected %v but found %v", expected.H, actual.H)
	}
	if !actual.G.Equals(expected.G) {
		t.Fatalf("expected %v but found %v", expected.G, actual.G)
	}
	if !reflect.DeepEqual(actual.HColumnOrder, expected.HColumnOrder) {
		t.Fatalf("expected %v but found %v", expected.HColumnOrder, actual.HColumnOrder)
	}
}
