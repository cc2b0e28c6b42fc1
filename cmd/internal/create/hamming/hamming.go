package hamming

import (
	"fmt"

	"github.com/nathanhack/ldpc/linearblock/hamming"
	"github.com/nathanhack/ldpc/storage"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	ParityBits uint
	JSON       bool
	Verbose    bool
)

var HammingRun = func(cmd *cobra.Command, args []string) {
	if Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	h, err := hamming.New(int(ParityBits))
	if err != nil {
		fmt.Println("Unable to create hamming code: ", err)
		return
	}

	if JSON {
		err = storage.SaveJSON(args[0], h)
	} else {
		err = storage.Save(args[0], h, storage.Info{
			N:    h.CodewordLength(),
			M:    h.ParitySymbols(),
			K:    h.MessageLength(),
			Rate: h.CodeRate(),
			Rank: h.Rank(),
		})
	}
	if err != nil {
		fmt.Println("unable to write: ", err)
		return
	}
	logrus.Infof("saved hamming(%v,%v) to %v", h.CodewordLength(), h.MessageLength(), args[0])
}
