// Copyright 2024 Harness Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package telemetry loads and aggregates the latency telemetry
// dataset served by the latency service.
package telemetry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/ghodss/yaml"
)

// Record is one telemetry sample.
type Record struct {
	Region    string  `json:"region"`
	LatencyMS float64 `json:"latency_ms"`
	UptimePct float64 `json:"uptime_pct"`
}

// Series holds the latency and uptime series for one region,
// in dataset order.
type Series struct {
	Latencies []float64
	Uptimes   []float64
}

// A Dataset is an ordered collection of telemetry records,
// indexed by position and grouped by region. It is read-only
// after construction.
type Dataset struct {
	records []Record
	regions map[string]*Series
}

// Parse parses a dataset from io.Reader r. The input may be
// json or yaml.
func Parse(r io.Reader) (*Dataset, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseBytes(b)
}

// ParseBytes parses a dataset from bytes b.
func ParseBytes(b []byte) (*Dataset, error) {
	b, err := yaml.YAMLToJSON(b)
	if err != nil {
		return nil, err
	}
	var records []Record
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, err
	}
	return build(records), nil
}

// ParseFile parses a dataset from the file at path.
func ParseFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	out, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("could not parse dataset file %s: %w", path, err)
	}
	return out, nil
}

func build(records []Record) *Dataset {
	d := &Dataset{
		records: records,
		regions: map[string]*Series{},
	}
	for _, r := range records {
		s, ok := d.regions[r.Region]
		if !ok {
			s = &Series{}
			d.regions[r.Region] = s
		}
		s.Latencies = append(s.Latencies, r.LatencyMS)
		s.Uptimes = append(s.Uptimes, r.UptimePct)
	}
	return d
}

// Len returns the number of records in the dataset.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Record returns the record at index i.
func (d *Dataset) Record(i int) (Record, bool) {
	if i < 0 || i >= len(d.records) {
		return Record{}, false
	}
	return d.records[i], true
}

// Region returns the series for the named region.
func (d *Dataset) Region(name string) (*Series, bool) {
	s, ok := d.regions[name]
	return s, ok
}

// Regions returns the region names present in the dataset.
func (d *Dataset) Regions() []string {
	out := make([]string, 0, len(d.regions))
	for name := range d.regions {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

//go:embed dataset.json
var sample []byte

// Default returns the sample dataset compiled into the binary.
func Default() *Dataset {
	d, err := ParseBytes(sample)
	if err != nil {
		// the embedded dataset is validated by tests.
		panic("telemetry: invalid embedded dataset: " + err.Error())
	}
	return d
}

// String implements fmt.Stringer for logging.
func (d *Dataset) String() string {
	return fmt.Sprintf("dataset(%d records, regions %s)",
		len(d.records), strings.Join(d.Regions(), ","))
}
