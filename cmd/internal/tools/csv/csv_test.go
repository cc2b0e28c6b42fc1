package csv

import (
	"bytes"
	"testing"

	"github.com/nathanhack/ldpc/benchmarking"
	"github.com/nathanhack/ldpc/cmd/internal/tools"
)

func TestWrite(t *testing.T) {
	var a0, a2, b2 benchmarking.Stats
	a0.ChannelMessageError.Update(0.5)
	a2.ChannelMessageError.Update(0.25)
	b2.ChannelMessageError.Update(0.125)

	stats := []*tools.SimulationStats{
		{Stats: map[float64]benchmarking.Stats{0: a0, 2: a2}},
		{Stats: map[float64]benchmarking.Stats{2: b2}},
	}

	var buf bytes.Buffer
	err := Write(&buf, []string{"spa", "bitflip"}, stats, func(s benchmarking.Stats) float64 {
		return s.MessageBER()
	})
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}

	expected := "Results File,0.00,2.00\n" +
		"spa,0.5,0.25\n" +
		"bitflip,,0.125\n"
	if buf.String() != expected {
		t.Fatalf("expected %q but found %q", expected, buf.String())
	}
}
