// Package stats implements optional end-of-run performance statistics:
// total instructions, wall-clock duration, and a per-opcode-family
// breakdown. Ground: teacher's vm.PerformanceStatistics, trimmed to
// what a RV32I interpreter can usefully report (no branch-taken/call
// tracking — RV32I base has no link-register call convention beyond
// JAL/JALR, which this spec does not distinguish as "calls").
package stats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"
)

// Counters tracks per-run execution statistics.
type Counters struct {
	TotalInstructions  uint64
	ExecutionTime      time.Duration
	InstructionsPerSec float64
	InstructionCounts  map[string]uint64

	startTime time.Time
}

// NewCounters returns an empty, started statistics tracker.
func NewCounters() *Counters {
	c := &Counters{InstructionCounts: make(map[string]uint64)}
	c.Start()
	return c
}

// Start resets counters and records the start time.
func (c *Counters) Start() {
	c.startTime = time.Now()
	c.TotalInstructions = 0
	c.InstructionCounts = make(map[string]uint64)
}

// RecordInstruction records one executed instruction under mnemonic.
func (c *Counters) RecordInstruction(mnemonic string) {
	c.TotalInstructions++
	c.InstructionCounts[mnemonic]++
}

// Finish computes the final duration and throughput figures.
func (c *Counters) Finish() {
	c.ExecutionTime = time.Since(c.startTime)
	if c.ExecutionTime > 0 {
		c.InstructionsPerSec = float64(c.TotalInstructions) / c.ExecutionTime.Seconds()
	}
}

// sortedMnemonics returns instruction mnemonics ordered by descending
// count, ties broken alphabetically.
func (c *Counters) sortedMnemonics() []string {
	keys := make([]string, 0, len(c.InstructionCounts))
	for k := range c.InstructionCounts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if c.InstructionCounts[keys[i]] != c.InstructionCounts[keys[j]] {
			return c.InstructionCounts[keys[i]] > c.InstructionCounts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

// ExportJSON writes the statistics as a JSON object.
func (c *Counters) ExportJSON(w io.Writer) error {
	out := struct {
		TotalInstructions  uint64            `json:"total_instructions"`
		ExecutionTimeMS    int64             `json:"execution_time_ms"`
		InstructionsPerSec float64           `json:"instructions_per_sec"`
		InstructionCounts  map[string]uint64 `json:"instruction_counts"`
	}{
		TotalInstructions:  c.TotalInstructions,
		ExecutionTimeMS:    c.ExecutionTime.Milliseconds(),
		InstructionsPerSec: c.InstructionsPerSec,
		InstructionCounts:  c.InstructionCounts,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// ExportCSV writes the per-mnemonic breakdown as CSV rows.
func (c *Counters) ExportCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"mnemonic", "count"}); err != nil {
		return err
	}
	for _, mnemonic := range c.sortedMnemonics() {
		row := []string{mnemonic, strconv.FormatUint(c.InstructionCounts[mnemonic], 10)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}

// String renders a short human-readable summary.
func (c *Counters) String() string {
	return fmt.Sprintf("instructions=%d duration=%s ips=%.0f",
		c.TotalInstructions, c.ExecutionTime, c.InstructionsPerSec)
}
