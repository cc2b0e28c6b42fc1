package channel

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

func TestModulate(t *testing.T) {
	actual := Modulate([]uint8{1, 0, 0, 1})
	expected := []float64{1, -1, -1, 1}
	if !reflect.DeepEqual(actual, expected) {
		t.Fatalf("expected %v but found %v", expected, actual)
	}

	bits := HardDecision([]float64{0.3, -0.1, 0, -2})
	if !reflect.DeepEqual(bits, []uint8{1, 0, 1, 0}) {
		t.Fatalf("expected %v but found %v", []uint8{1, 0, 1, 0}, bits)
	}
}

func TestVariance(t *testing.T) {
	tests := []struct {
		ebN0dB, rate, expected float64
	}{
		{0, 0.5, 1},
		{10, 0.5, 0.1},
		{0, 1, 0.5},
		{3, 0.5, 1 / math.Pow(10, 0.3)},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			actual := Variance(test.ebN0dB, test.rate)
			if math.Abs(actual-test.expected) > 1e-12 {
				t.Fatalf("expected %v but found %v", test.expected, actual)
			}
		})
	}
}

func TestNewAWGN_Rate(t *testing.T) {
	for _, rate := range []float64{0, -0.5, 1.5, math.NaN()} {
		_, err := NewAWGN(1, rate, rand.NewSource(1))
		if !errors.Is(err, ErrRate) {
			t.Fatalf("expected %v but found %v", ErrRate, err)
		}
	}
}

func TestAWGN_Transmit(t *testing.T) {
	awgn, err := NewAWGN(0, 0.5, rand.NewSource(8))
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}
	symbols := make([]float64, 20000)
	received := awgn.Transmit(symbols)
	mean, std := stat.MeanStdDev(received, nil)
	if math.Abs(mean) > 0.05 {
		t.Fatalf("expected a mean near 0 but found %v", mean)
	}
	if math.Abs(std-1) > 0.05 {
		t.Fatalf("expected a standard deviation near 1 but found %v", std)
	}

	again, err := NewAWGN(0, 0.5, rand.NewSource(8))
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}
	if !reflect.DeepEqual(again.Transmit(symbols), received) {
		t.Fatalf("expected the same noise for the same seed")
	}
}

func TestAWGN_LLR(t *testing.T) {
	awgn, err := NewAWGN(10, 0.5, rand.NewSource(1))
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}
	actual := awgn.LLR([]float64{1, -0.5, 0})
	expected := []float64{20, -10, 0}
	for i := range expected {
		if math.Abs(actual[i]-expected[i]) > 1e-9 {
			t.Fatalf("expected %v but found %v", expected, actual)
		}
	}
}

func TestLLRFromLikelihoods(t *testing.T) {
	tests := []struct {
		pyx      mat.Matrix
		expected []float64
	}{
		{
			mat.NewDense(2, 2, []float64{
				0.25, 0.5,
				0.75, 0.5,
			}),
			[]float64{math.Log(3), 0},
		},
		{ // symbol 1 certain
			mat.NewDense(2, 1, []float64{0, 1}),
			[]float64{math.Log(1 / 1e-300)},
		},
		{ // 4 symbols, bit 0 then bit 1 for each column
			mat.NewDense(4, 1, []float64{0.1, 0.2, 0.3, 0.4}),
			[]float64{math.Log(0.6 / 0.4), math.Log(0.7 / 0.3)},
		},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			actual, err := LLRFromLikelihoods(test.pyx)
			if err != nil {
				t.Fatalf("expected no error but found: %v", err)
			}
			if len(actual) != len(test.expected) {
				t.Fatalf("expected %v but found %v", test.expected, actual)
			}
			for j := range actual {
				if math.Abs(actual[j]-test.expected[j]) > 1e-9 {
					t.Fatalf("expected %v but found %v", test.expected, actual)
				}
			}
		})
	}
}

func TestLLRFromLikelihoods_Order(t *testing.T) {
	_, err := LLRFromLikelihoods(mat.NewDense(3, 2, nil))
	if !errors.Is(err, ErrModulationOrder) {
		t.Fatalf("expected %v but found %v", ErrModulationOrder, err)
	}
}
