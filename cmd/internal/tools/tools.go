package tools

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/nathanhack/ldpc/benchmarking"
	"github.com/nathanhack/ldpc/gf2"
	"github.com/nathanhack/ldpc/linearblock"
	"github.com/nathanhack/ldpc/storage"
)

type SimulationStats struct {
	RunID    string
	TypeInfo string
	ECCInfo  string
	MaxIter  int
	Stats    map[float64]benchmarking.Stats
}
type simulationStats struct {
	RunID    string
	TypeInfo string
	ECCInfo  string
	MaxIter  int
	Stats    map[string]benchmarking.Stats
}

func (s *SimulationStats) MarshalJSON() ([]byte, error) {
	ss := simulationStats{
		RunID:    s.RunID,
		TypeInfo: s.TypeInfo,
		ECCInfo:  s.ECCInfo,
		MaxIter:  s.MaxIter,
		Stats:    map[string]benchmarking.Stats{},
	}

	for f, stat := range s.Stats {
		ss.Stats[fmt.Sprintf("%v", f)] = stat
	}

	return json.Marshal(ss)
}

func (s *SimulationStats) UnmarshalJSON(bytes []byte) error {
	var ss simulationStats

	err := json.Unmarshal(bytes, &ss)
	if err != nil {
		return err
	}

	s.RunID = ss.RunID
	s.TypeInfo = ss.TypeInfo
	s.ECCInfo = ss.ECCInfo
	s.MaxIter = ss.MaxIter
	s.Stats = map[float64]benchmarking.Stats{}

	for fs, stat := range ss.Stats {
		f, err := strconv.ParseFloat(fs, 64)
		if err != nil {
			return err
		}
		s.Stats[f] = stat
	}
	return nil
}

// SortedEbN0 returns the Eb/N0 points of s in increasing order.
func (s *SimulationStats) SortedEbN0() []float64 {
	points := make([]float64, 0, len(s.Stats))
	for p := range s.Stats {
		points = append(points, p)
	}
	sort.Float64s(points)
	return points
}

func Md5Sum(H *gf2.Matrix) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(H.String())))
}

// LoadLinearBlockECC loads a code from a matrix directory (H.csv and G.csv) or a JSON file.
func LoadLinearBlockECC(path string) (*linearblock.LinearBlock, error) {
	stat, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("the ECC %v must exist", path)
	}
	if err != nil {
		return nil, err
	}

	if stat.IsDir() {
		return storage.Load(path)
	}
	return storage.LoadJSON(path)
}

func LoadResults(filepath string) (*SimulationStats, error) {
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return nil, nil
	}

	bs, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error while reading file %v: %w", filepath, err)
	}

	var stat SimulationStats
	err = json.Unmarshal(bs, &stat)
	if err != nil {
		return nil, fmt.Errorf("error while unmarshalling file %v: %w", filepath, err)
	}
	return &stat, nil
}

func SaveResults(path string, data *SimulationStats) error {
	bs, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error serializing results: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error while creating %v: %w", filepath.Dir(path), err)
	}

	err = os.WriteFile(path, bs, 0644)
	if err != nil {
		return fmt.Errorf("error while saving results to %v: %w", path, err)
	}
	return nil
}
