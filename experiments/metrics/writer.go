package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// SolverConfig identifies one solver setting under measurement.
type SolverConfig struct {
	ID         int
	Name       string
	Ablation   string
	Goroutines int
}

// RunRecord is one solver run on one game.
type RunRecord struct {
	ID         uuid.UUID
	Config     int // SolverConfig.ID
	Game       string
	Owners     int
	Implicants int
	ShareSum   float64
	SolveMetric
}

type Writer struct {
	baseDir string
}

func NewWriter(name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join("experiments", name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) WriteSolverConfigs(configs []SolverConfig) error {
	// Create a file
	path := filepath.Join(w.baseDir, "solver_configs.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create solver configs file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	// Write header
	header := []string{"id", "name", "ablation", "goroutines"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write solver configs header: %w", err)
	}

	// Write each row
	for _, config := range configs {
		row := []string{
			strconv.Itoa(config.ID),
			config.Name,
			config.Ablation,
			strconv.Itoa(config.Goroutines),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write solver config row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteRunRecords(records []RunRecord) error {
	// Create a file
	path := filepath.Join(w.baseDir, "run_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create run records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	// Write header
	header := []string{
		"id", "config", "game", "owners", "implicants", "share_sum",
		"build_duration", "solve_duration", "variable_nodes",
		"conjunctive_nodes", "disjunctive_nodes", "hybrid_nodes",
		"leaf_nodes", "leaf_implicants", "union_terms",
	}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write run records header: %w", err)
	}

	// Write each row
	for _, record := range records {
		row := []string{
			record.ID.String(),
			strconv.Itoa(record.Config),
			record.Game,
			strconv.Itoa(record.Owners),
			strconv.Itoa(record.Implicants),
			strconv.FormatFloat(record.ShareSum, 'f', -1, 64),
			record.BuildDuration.String(),
			record.SolveDuration.String(),
			strconv.Itoa(record.VariableNodes),
			strconv.Itoa(record.ConjunctiveNodes),
			strconv.Itoa(record.DisjunctiveNodes),
			strconv.Itoa(record.HybridNodes),
			strconv.Itoa(record.LeafNodes),
			strconv.Itoa(record.LeafImplicants),
			strconv.Itoa(record.UnionTerms),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write run record row: %w", err)
		}
	}

	return nil
}
