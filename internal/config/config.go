// Package config loads the operator-editable conversion configuration:
// rosters, alias overrides, account names, type sets, and the fuzzy
// threshold. Rosters are data, not code; edit the YAML, not this package.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ledgerline/dtb2iif/internal/alias"
	"github.com/ledgerline/dtb2iif/internal/classify"
)

// Config represents the top-level dtb2iif.yaml configuration.
type Config struct {
	Threshold int               `yaml:"threshold"` // fuzzy acceptance score, 0-100
	Accounts  classify.Accounts `yaml:"accounts"`
	Types     classify.TypeSets `yaml:"types"`
	Vendors   []string          `yaml:"vendors"`
	Staff     []string          `yaml:"staff"`
	Overrides []alias.Override  `yaml:"overrides"`
}

// Load reads a dtb2iif.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks operator-tunable fields.
func (c *Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 100 {
		return fmt.Errorf("threshold %d out of range 0-100", c.Threshold)
	}
	if c.Accounts.Bank == "" {
		return fmt.Errorf("accounts.bank must be set")
	}
	return nil
}

// Default returns the production configuration: the DTB account mapping and
// the current vendor and staff rosters.
func Default() *Config {
	return &Config{
		Threshold: 80,
		Accounts: classify.Accounts{
			Bank:             "Diamond Trust Bank",
			Payables:         "Accounts Payable",
			BankCharges:      "Bank Service Charges:Bank Charges - DTB",
			AskAccountant:    "Ask My Accountant",
			TransferSuspense: "Suspense - Transfers",
			BankChargesName:  "Bank Charges DTB",
		},
		Types: classify.TypeSets{
			Excluded: []string{"MPESA FUNDS TRANSFER"},
			BankCharge: []string{
				"EXCISE DUTY",
				"BANK CHARGES",
				"LEDGER FEES",
			},
			AskAccountant: []string{
				"CASH WITHDRAWAL",
				"CHEQUE PAID",
			},
			DebitTransfer: []string{
				"PESA LINK TRANSACTION",
				"MOBILE BANKING FT TXN",
				"INTERNET BANKING FT TXN",
				"RTGS TRANSFER",
			},
		},
		Vendors:   defaultVendors(),
		Staff:     defaultStaff(),
		Overrides: defaultOverrides(),
	}
}

func defaultVendors() []string {
	return []string{
		"Brookside Dairy Ltd",
		"Bidco Africa Ltd",
		"Kapa Oil Refineries Ltd",
		"Pwani Oil Products Ltd",
		"Menengai Oil Refineries Ltd",
		"Unga Group Ltd",
		"Kenblest Bakers Ltd",
		"Mini Bakeries Nairobi Ltd",
		"Manji Food Industries Ltd",
		"Kenafric Industries Ltd",
		"Kevian Kenya Ltd",
		"Jetlak Foods Ltd",
		"Tropikal Brands Afrika Ltd",
		"Highlands Mineral Water Co Ltd",
		"Nairobi Bottlers Ltd",
		"Crown Paints Kenya PLC",
		"Chandaria Industries Ltd",
		"Githunguri Dairy Farmers Co-operative Society",
		"Kenya Power & Lighting Company Ltd",
		"Safaricom PLC",
		"Proctor & Allan East Africa Ltd",
		"Mjengo Ltd",
	}
}

func defaultStaff() []string {
	return []string{
		"Rehema Jumwa Muli",
		"Peter Kamau Njoroge",
		"Grace Wanjiku Ndungu",
		"Samuel Otieno Ouma",
		"Esther Akinyi Adhiambo",
	}
}

// defaultOverrides carries brand names and abbreviations that the automatic
// derivation cannot reach: they are either absent from the roster text or
// ambiguous under the uniqueness rule.
func defaultOverrides() []alias.Override {
	return []alias.Override{
		{Token: "safcom", Vendor: "Safaricom PLC"},
		{Token: "kplc", Vendor: "Kenya Power & Lighting Company Ltd"},
		{Token: "fresha", Vendor: "Githunguri Dairy Farmers Co-operative Society"},
		{Token: "cocacola", Vendor: "Nairobi Bottlers Ltd"},
		{Token: "dairy", Vendor: "Brookside Dairy Ltd"},
	}
}
