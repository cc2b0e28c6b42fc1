package storage

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nathanhack/ldpc/gf2"
	"github.com/nathanhack/ldpc/linearblock"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	HFile    = "H.csv"
	GFile    = "G.csv"
	InfoFile = "info.txt"
)

// ErrFormat is returned for matrix files that are empty, ragged or contain
// characters other than '0' and '1'.
var ErrFormat = errors.New("malformed matrix file")

// Info describes how a stored code was found.
type Info struct {
	N             int     `yaml:"N"`
	M             int     `yaml:"M"`
	K             int     `yaml:"K"`
	Wc            int     `yaml:"wc"`
	Wr            int     `yaml:"wr"`
	Rate          float64 `yaml:"rate"`
	Seed          uint64  `yaml:"seed"`
	Trials        int     `yaml:"trials"`
	FailedTrials  int     `yaml:"failed_trials"`
	ElapsedSecs   float64 `yaml:"elapsed_seconds"`
	BestCycles    int     `yaml:"best_4cycles"`
	AverageCycles float64 `yaml:"average_4cycles"`
	Girth         int     `yaml:"girth"`
	Rank          int     `yaml:"rank"`
}

// Dir returns root/N{n}_wc{wc}_wr{wr}.
func Dir(root string, n, wc, wr int) string {
	return filepath.Join(root, fmt.Sprintf("N%d_wc%d_wr%d", n, wc, wr))
}

// Save writes H.csv, G.csv and info.txt into dir creating it when needed.
func Save(dir string, lb *linearblock.LinearBlock, info Info) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("unable to create %v: %w", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, HFile), []byte(lb.H.String()), 0644); err != nil {
		return fmt.Errorf("unable to write H: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, GFile), []byte(lb.G.String()), 0644); err != nil {
		return fmt.Errorf("unable to write G: %w", err)
	}

	bs, err := yaml.Marshal(info)
	if err != nil {
		return fmt.Errorf("unable to serialize info: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, InfoFile), bs, 0644); err != nil {
		return fmt.Errorf("unable to write info: %w", err)
	}
	logrus.Debugf("saved N=%v K=%v code to %v", lb.CodewordLength(), lb.MessageLength(), dir)
	return nil
}

// Load reads the H and G stored in dir. The stored H is already paired with
// G so the column order is the identity.
func Load(dir string) (*linearblock.LinearBlock, error) {
	H, err := readMatrixFile(filepath.Join(dir, HFile))
	if err != nil {
		return nil, err
	}
	G, err := readMatrixFile(filepath.Join(dir, GFile))
	if err != nil {
		return nil, err
	}

	_, hcols := H.Dims()
	_, gcols := G.Dims()
	if hcols != gcols {
		return nil, fmt.Errorf("%w: H has %v columns but G has %v", ErrFormat, hcols, gcols)
	}

	order := make([]int, hcols)
	for i := range order {
		order[i] = i
	}
	lb := &linearblock.LinearBlock{H: H, HColumnOrder: order, G: G}
	if !lb.Validate() {
		return nil, fmt.Errorf("%w: H*G^T != 0 in %v", ErrFormat, dir)
	}
	logrus.Debugf("loaded N=%v K=%v code from %v", lb.CodewordLength(), lb.MessageLength(), dir)
	return lb, nil
}

// LoadInfo reads info.txt from dir.
func LoadInfo(dir string) (Info, error) {
	var info Info
	bs, err := os.ReadFile(filepath.Join(dir, InfoFile))
	if err != nil {
		return info, err
	}
	err = yaml.Unmarshal(bs, &info)
	return info, err
}

func readMatrixFile(path string) (*gf2.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := ReadMatrix(f)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return m, nil
}

// ReadMatrix parses one matrix row per line written as '0' and '1'
// characters. The number of columns comes from the first line.
func ReadMatrix(r io.Reader) (*gf2.Matrix, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 64*1024*1024)

	rows := make([][]uint8, 0)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) > 0 && line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}
		if len(line) == 0 {
			continue
		}
		if len(rows) > 0 && len(line) != len(rows[0]) {
			return nil, fmt.Errorf("%w: row %v has %v columns but expected %v", ErrFormat, len(rows), len(line), len(rows[0]))
		}
		row := make([]uint8, len(line))
		for j, c := range line {
			switch c {
			case '0':
			case '1':
				row[j] = 1
			default:
				return nil, fmt.Errorf("%w: unexpected character %q in row %v", ErrFormat, c, len(rows))
			}
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrFormat)
	}
	return gf2.FromRows(rows), nil
}

// SaveJSON writes the linear block with its column order as JSON.
func SaveJSON(path string, lb *linearblock.LinearBlock) error {
	bs, err := json.Marshal(lb)
	if err != nil {
		return fmt.Errorf("unable to serialize the linearblock: %w", err)
	}
	return os.WriteFile(path, bs, 0644)
}

// LoadJSON reads a linear block written by SaveJSON.
func LoadJSON(path string) (*linearblock.LinearBlock, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error while reading file %v: %w", path, err)
	}
	var lb linearblock.LinearBlock
	if err := json.Unmarshal(bs, &lb); err != nil {
		return nil, fmt.Errorf("error while reading file %v: %w", path, err)
	}
	return &lb, nil
}
