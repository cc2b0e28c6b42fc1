package chart

import (
	"testing"

	"github.com/nathanhack/ldpc/benchmarking"
	"github.com/nathanhack/ldpc/cmd/internal/tools"
)

func TestSeries(t *testing.T) {
	var low, high benchmarking.Stats
	low.ChannelMessageError.Update(0.25)
	low.ChannelCodewordError.Update(0.5)
	high.ChannelMessageError.Update(0)

	stat := &tools.SimulationStats{Stats: map[float64]benchmarking.Stats{0: low, 4: high}}
	xvalues, xnames := xAxisAndValues(map[float64]bool{4: true, 0: true, 2: true})
	if len(xnames) != 3 || xnames[0] != "0.00" || xnames[2] != "4.00" {
		t.Fatalf("expected sorted names but found %v", xnames)
	}

	message := series(stat, xvalues, false)
	if message[0].Value != 0.25 {
		t.Fatalf("expected %v but found %v", 0.25, message[0].Value)
	}
	//missing point and zero BER are both gaps
	if message[1].Value != nil || message[2].Value != nil {
		t.Fatalf("expected gaps but found %v and %v", message[1].Value, message[2].Value)
	}

	codeword := series(stat, xvalues, true)
	if codeword[0].Value != 0.5 {
		t.Fatalf("expected %v but found %v", 0.5, codeword[0].Value)
	}
}
