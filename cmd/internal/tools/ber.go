package tools

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// BERHeader is the header of the BER results CSV.
var BERHeader = []string{"EbN0_dB", "BER_info", "BER_code"}

// BERFileName returns dir/ldpc_ber_N{n}_wc{wc}_wr{wr}_iter{iter}_data.csv.
func BERFileName(dir string, n, wc, wr, iter int) string {
	return filepath.Join(dir, fmt.Sprintf("ldpc_ber_N%d_wc%d_wr%d_iter%d_data.csv", n, wc, wr, iter))
}

// WriteBERCSV writes one row per Eb/N0 point of data sorted by Eb/N0.
func WriteBERCSV(path string, data *SimulationStats) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error while creating %v: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(BERHeader); err != nil {
		return err
	}
	for _, p := range data.SortedEbN0() {
		s := data.Stats[p]
		record := []string{
			fmt.Sprintf("%.2f", p),
			fmt.Sprintf("%.10e", s.MessageBER()),
			fmt.Sprintf("%.10e", s.CodewordBER()),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
