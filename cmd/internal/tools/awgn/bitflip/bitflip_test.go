package bitflip

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/nathanhack/ldpc/channel"
	"github.com/nathanhack/ldpc/linearblock/hamming"
	"github.com/nathanhack/ldpc/linearblock/messagepassing/bitflipping/harddecision"
)

func TestCorrection_FixOnLastIteration(t *testing.T) {
	l, err := hamming.New(3)
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}
	expected, err := l.Encode([]uint8{1, 0, 1, 1})
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}

	for b := range expected {
		t.Run(strconv.Itoa(b), func(t *testing.T) {
			corrupted := make([]uint8, len(expected))
			copy(corrupted, expected)
			corrupted[b] ^= 1
			received := channel.Modulate(corrupted)

			//a single flip fixes it but the zero syndrome is never observed
			_, _, done := harddecision.BitFlipping(&harddecision.Gallager{H: l.H}, l.H, corrupted, 1)
			if done {
				t.Fatalf("expected done == false after one round")
			}

			decoded := correction(l, 1)(received)
			if !decoded.Converged {
				t.Fatalf("expected converged")
			}
			if decoded.Iterations != 1 {
				t.Fatalf("expected %v but found %v", 1, decoded.Iterations)
			}
			if !reflect.DeepEqual(decoded.Codeword, expected) {
				t.Fatalf("expected %v but found %v", expected, decoded.Codeword)
			}
		})
	}
}
