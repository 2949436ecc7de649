// Copyright 2025 The Device Compat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package defs loads declarative requirement definitions and resolves them
// into requirement instances.
//
// A definition file is the single source of truth for a requirement family:
// its measurements (key, value type, comparison, wire field number), the
// test configs partitioning it, its variants, and the per-version required
// values. The registry built from a file replaces per-combination generated
// factory classes with one data-driven table keyed by
// (requirement id, test config, variant).
package defs

import (
	"os"
	"sync"

	"gopkg.in/yaml.v2"

	perfclass "github.com/devicecompat/perfclass"
	"github.com/devicecompat/perfclass/errors"
)

// Measurement field numbers 1 and 2 are reserved for the requirement id and
// name in the wire format the definitions were derived from.
const minMeasurementField = 3

// File is the top level of a definition file.
type File struct {
	Requirements []RequirementDef `yaml:"requirements"`
}

// RequirementDef defines one requirement family.
type RequirementDef struct {
	// ID is the stable section/clause identifier, e.g. "7.5/H-1-1".
	ID string `yaml:"id"`
	// Name is a short lowercase name used by tooling.
	Name string `yaml:"name"`
	// Description documents the requirement.
	Description string `yaml:"description,omitempty"`
	// TestConfigs names the partitions of this requirement, if any. A
	// partitioned requirement must be resolved under exactly one of them.
	TestConfigs []string `yaml:"test_configs,omitempty"`
	// Variants names the value-table modifiers of this requirement, if any.
	Variants []string `yaml:"variants,omitempty"`
	// Measurements declares the measured quantities.
	Measurements []MeasurementDef `yaml:"measurements"`
	// Specs holds the per-version required values.
	Specs []SpecDef `yaml:"specs"`
}

// MeasurementDef declares one measurement of a requirement.
type MeasurementDef struct {
	Key        string `yaml:"key"`
	Type       string `yaml:"type"`
	Comparison string `yaml:"comparison"`
	// ProtoField is the measurement's wire field number. It must be unique
	// within the requirement and >= 3.
	ProtoField int `yaml:"proto_field"`
}

// SpecDef attaches required values to one version, optionally scoped to a
// test config and/or variant. A spec with no test config applies to every
// config; a spec with a variant overrides the base values for that variant
// without changing which versions apply.
type SpecDef struct {
	Version        string                 `yaml:"version"`
	TestConfig     string                 `yaml:"test_config,omitempty"`
	Variant        string                 `yaml:"variant,omitempty"`
	RequiredValues map[string]interface{} `yaml:"required_values"`
}

// Registry resolves (requirement id, test config, variant) triples into
// requirement instances.
type Registry struct {
	ids  []string
	defs map[string]*RequirementDef
}

// Load parses and validates a definition file.
func Load(data []byte) (*Registry, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "failed to parse requirement definitions")
	}
	return New(&f)
}

// LoadFile reads, parses and validates the definition file at path.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	reg, err := Load(data)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid definitions in %s", path)
	}
	return reg, nil
}

// New validates f and builds a registry from it.
func New(f *File) (*Registry, error) {
	reg := &Registry{defs: make(map[string]*RequirementDef, len(f.Requirements))}
	for i := range f.Requirements {
		def := &f.Requirements[i]
		if err := validate(def); err != nil {
			return nil, err
		}
		if _, ok := reg.defs[def.ID]; ok {
			return nil, errors.Errorf("requirement %s defined twice", def.ID)
		}
		reg.defs[def.ID] = def
		reg.ids = append(reg.ids, def.ID)
	}
	return reg, nil
}

// IDs returns the defined requirement ids in definition order.
func (reg *Registry) IDs() []string {
	return append([]string(nil), reg.ids...)
}

// Lookup returns the definition for id.
func (reg *Registry) Lookup(id string) (*RequirementDef, bool) {
	def, ok := reg.defs[id]
	return def, ok
}

// validate checks one requirement definition for authoring errors.
func validate(def *RequirementDef) error {
	if def.ID == "" {
		return errors.New("requirement with empty id")
	}
	if def.Name == "" {
		return errors.Errorf("requirement %s: name must not be empty", def.ID)
	}
	if len(def.Measurements) == 0 {
		return errors.Errorf("requirement %s: no measurements declared", def.ID)
	}

	keys := make(map[string]struct{}, len(def.Measurements))
	fields := make(map[int]string, len(def.Measurements))
	for _, m := range def.Measurements {
		if m.Key == "" {
			return errors.Errorf("requirement %s: measurement with empty key", def.ID)
		}
		if _, ok := keys[m.Key]; ok {
			return errors.Errorf("requirement %s: measurement %q declared twice", def.ID, m.Key)
		}
		keys[m.Key] = struct{}{}
		if m.ProtoField < minMeasurementField {
			return errors.Errorf("requirement %s: measurement %q: field number %d is reserved; measurements start at %d",
				def.ID, m.Key, m.ProtoField, minMeasurementField)
		}
		if prev, ok := fields[m.ProtoField]; ok {
			return errors.Errorf("requirement %s: measurements %q and %q share field number %d",
				def.ID, prev, m.Key, m.ProtoField)
		}
		fields[m.ProtoField] = m.Key
		t, err := perfclass.ParseValueType(m.Type)
		if err != nil {
			return errors.Wrapf(err, "requirement %s: measurement %q", def.ID, m.Key)
		}
		c, err := perfclass.ParseComparison(m.Comparison)
		if err != nil {
			return errors.Wrapf(err, "requirement %s: measurement %q", def.ID, m.Key)
		}
		if _, err := perfclass.NewMeasurement(m.Key).Type(t).Compare(c).Build(); err != nil {
			return errors.Wrapf(err, "requirement %s", def.ID)
		}
	}

	configs := make(map[string]struct{}, len(def.TestConfigs))
	for _, c := range def.TestConfigs {
		if c == "" {
			return errors.Errorf("requirement %s: empty test config name", def.ID)
		}
		if _, ok := configs[c]; ok {
			return errors.Errorf("requirement %s: test config %q declared twice", def.ID, c)
		}
		configs[c] = struct{}{}
	}
	variants := make(map[string]struct{}, len(def.Variants))
	for _, v := range def.Variants {
		if v == "" {
			return errors.Errorf("requirement %s: empty variant name", def.ID)
		}
		if _, ok := variants[v]; ok {
			return errors.Errorf("requirement %s: variant %q declared twice", def.ID, v)
		}
		variants[v] = struct{}{}
	}

	type specKey struct {
		version perfclass.VersionCode
		config  string
		variant string
	}
	seen := make(map[specKey]struct{}, len(def.Specs))
	for _, s := range def.Specs {
		ver, err := perfclass.ParseVersionCode(s.Version)
		if err != nil {
			return errors.Wrapf(err, "requirement %s", def.ID)
		}
		if s.TestConfig != "" {
			if _, ok := configs[s.TestConfig]; !ok {
				return errors.Errorf("requirement %s: spec references undeclared test config %q", def.ID, s.TestConfig)
			}
		}
		if s.Variant != "" {
			if _, ok := variants[s.Variant]; !ok {
				return errors.Errorf("requirement %s: spec references undeclared variant %q", def.ID, s.Variant)
			}
		}
		k := specKey{ver, s.TestConfig, s.Variant}
		if _, ok := seen[k]; ok {
			return errors.Errorf("requirement %s: duplicate spec for version %s, test config %q, variant %q",
				def.ID, s.Version, s.TestConfig, s.Variant)
		}
		seen[k] = struct{}{}
		for key := range s.RequiredValues {
			if _, ok := keys[key]; !ok {
				return errors.Errorf("requirement %s: spec for version %s sets undeclared measurement %q",
					def.ID, s.Version, key)
			}
		}
	}
	return nil
}

// NewRequirement resolves a requirement instance. config must name one of the
// definition's test configs when the requirement is partitioned, and must be
// empty otherwise; variant is optional. Config measurements come back with
// their measured value pre-populated from the resolved table.
func (reg *Registry) NewRequirement(id, config, variant string) (*perfclass.Requirement, error) {
	def, ok := reg.defs[id]
	if !ok {
		return nil, errors.Errorf("requirement %s is not defined", id)
	}
	if len(def.TestConfigs) == 0 {
		if config != "" {
			return nil, errors.Errorf("requirement %s has no test configs; got %q", id, config)
		}
	} else {
		if !contains(def.TestConfigs, config) {
			return nil, errors.Errorf("requirement %s: unknown test config %q", id, config)
		}
	}
	if variant != "" && !contains(def.Variants, variant) {
		return nil, errors.Errorf("requirement %s: unknown variant %q", id, variant)
	}

	// Resolve each measurement's version table. Base specs first, then
	// variant specs override per (measurement, version).
	tables := make(map[string]map[perfclass.VersionCode]interface{})
	for _, pass := range []bool{false, true} {
		for _, s := range def.Specs {
			if s.TestConfig != "" && s.TestConfig != config {
				continue
			}
			if (s.Variant != "") != pass {
				continue
			}
			if pass && s.Variant != variant {
				continue
			}
			ver, err := perfclass.ParseVersionCode(s.Version)
			if err != nil {
				return nil, errors.Wrapf(err, "requirement %s", id)
			}
			for key, v := range s.RequiredValues {
				t := tables[key]
				if t == nil {
					t = make(map[perfclass.VersionCode]interface{})
					tables[key] = t
				}
				t[ver] = v
			}
		}
	}

	var ms []*perfclass.RequiredMeasurement
	for _, md := range def.Measurements {
		t, err := perfclass.ParseValueType(md.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "requirement %s", id)
		}
		c, err := perfclass.ParseComparison(md.Comparison)
		if err != nil {
			return nil, errors.Wrapf(err, "requirement %s", id)
		}
		b := perfclass.NewMeasurement(md.Key).Type(t).Compare(c)
		for ver, v := range tables[md.Key] {
			b.RequiredValue(ver, v)
		}
		m, err := b.Build()
		if err != nil {
			return nil, errors.Wrapf(err, "requirement %s", id)
		}
		ms = append(ms, m)
	}

	var opts []perfclass.ReqOption
	if config != "" {
		opts = append(opts, perfclass.WithTestConfig(config))
	}
	if variant != "" {
		opts = append(opts, perfclass.WithVariant(variant))
	}
	r, err := perfclass.NewRequirement(id, ms, opts...)
	if err != nil {
		return nil, err
	}

	// Config measurements describe the run's own setup; they are not set
	// by test code, so attach the table value here. The latest declared
	// entry wins, matching how partitioned tables spell a single value.
	for _, m := range ms {
		if m.Comparison() != perfclass.ComparisonConfig {
			continue
		}
		if v, ok := latestValue(tables[m.Key()]); ok {
			if err := r.SetMeasuredValue(m.Key(), v); err != nil {
				return nil, err
			}
		}
	}
	return r, nil
}

// latestValue returns the value attached to the greatest version in table.
func latestValue(table map[perfclass.VersionCode]interface{}) (interface{}, bool) {
	var best perfclass.VersionCode
	var v interface{}
	found := false
	for ver, val := range table {
		if !found || ver > best {
			best, v, found = ver, val, true
		}
	}
	return v, found
}

func contains(ss []string, s string) bool {
	for _, c := range ss {
		if c == s {
			return true
		}
	}
	return false
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the registry built from the embedded definition set.
// The embedded definitions are validated by this package's tests, so a
// failure to build them is a programming error.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := Load(defaultDefs)
		if err != nil {
			panic(err)
		}
		defaultReg = reg
	})
	return defaultReg
}
