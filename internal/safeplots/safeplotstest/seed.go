// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package safeplotstest

import (
	_ "embed"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// Seed is the initial state of a fake server.
type Seed struct {
	Users      []SeedUser     `yaml:"users"`
	Sellers    []SeedSeller   `yaml:"sellers"`
	Properties []SeedProperty `yaml:"properties"`
	Reports    []SeedReport   `yaml:"reports"`
}

type SeedUser struct {
	ID       string `yaml:"id"`
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Phone    string `yaml:"phone"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
	Status   string `yaml:"status"`
}

type SeedSeller struct {
	ID          string `yaml:"id"`
	UserID      string `yaml:"user_id"`
	Status      string `yaml:"status"`
	IDProofType string `yaml:"id_proof_type"`
	IDProofURL  string `yaml:"id_proof_url"`
}

type SeedProperty struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Type        string   `yaml:"type"`
	Price       float64  `yaml:"price"`
	Area        float64  `yaml:"area"`
	AreaUnit    string   `yaml:"area_unit"`
	Address     string   `yaml:"address"`
	City        string   `yaml:"city"`
	State       string   `yaml:"state"`
	Pincode     string   `yaml:"pincode"`
	SellerID    string   `yaml:"seller_id"`
	Status      string   `yaml:"status"`
	Featured    bool     `yaml:"featured"`
	Views       int      `yaml:"views"`
	Images      []string `yaml:"images"`
	Amenities   []string `yaml:"amenities"`
}

type SeedReport struct {
	ID          string `yaml:"id"`
	PropertyID  string `yaml:"property_id"`
	ReporterID  string `yaml:"reporter_id"`
	Reason      string `yaml:"reason"`
	Description string `yaml:"description"`
	Status      string `yaml:"status"`
}

// LoadSeed decodes a YAML seed document.
func LoadSeed(r io.Reader) (*Seed, error) {
	var s Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return &s, nil
}

// DefaultSeed returns the built-in fixture set.
func DefaultSeed() *Seed {
	var s Seed
	if err := yaml.Unmarshal(defaultSeed, &s); err != nil {
		panic(fmt.Sprintf("safeplotstest: bad built-in seed: %v", err))
	}
	return &s
}
