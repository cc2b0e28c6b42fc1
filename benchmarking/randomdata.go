package benchmarking

import (
	"github.com/nathanhack/ldpc/gf2"
	"github.com/nathanhack/ldpc/linearblock"
	"golang.org/x/exp/rand"
)

// RandomMessage creates a random message of length len.
func RandomMessage(len int, rng *rand.Rand) []uint8 {
	message := make([]uint8, len)
	for i := 0; i < len; i++ {
		message[i] = uint8(rng.Intn(2))
	}
	return message
}

// LinearBlockMetrics counts the bit errors of a decoded frame of l. Parity
// errors are the codeword errors outside of the message positions.
func LinearBlockMetrics(l *linearblock.LinearBlock) BPSKChannelMetrics {
	return func(originalMessage, originalCodeword []uint8, decoded Decoded) FrameErrors {
		codewordErrors := gf2.HammingDistance(originalCodeword, decoded.Codeword)
		message := l.Decode(decoded.Codeword)
		messageErrors := gf2.HammingDistance(message, originalMessage)
		return FrameErrors{
			Codeword:    codewordErrors,
			Message:     messageErrors,
			Parity:      codewordErrors - messageErrors,
			CodewordLen: l.CodewordLength(),
			MessageLen:  l.MessageLength(),
			ParityLen:   l.ParitySymbols(),
		}
	}
}
