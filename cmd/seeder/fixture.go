// cmd/seeder/fixture.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ammerola/reorder-engine/internal/adapters/db"
	"github.com/ammerola/reorder-engine/internal/core/domain"
)

// seedNamespace keeps generated ids stable across runs so reseeding updates
// rows in place
var seedNamespace = uuid.MustParse("6f1c2b7e-3d4a-4f58-9a61-0c2e8b5d7a10")

// Fixture is the on-disk seed format. Rows reference each other by code or
// name rather than by id.
type Fixture struct {
	Vendors []VendorFixture `json:"vendors" validate:"dive"`
	Classes []ClassFixture  `json:"classes" validate:"dive"`
	SKUs    []SKUFixture    `json:"skus" validate:"dive"`
}

type VendorFixture struct {
	Code     string `json:"code" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Inactive bool   `json:"inactive"`
}

type ClassFixture struct {
	Name       string                      `json:"name" validate:"required"`
	Thresholds domain.StockThresholdConfig `json:"thresholds"`
}

type SKUFixture struct {
	Code        string           `json:"code" validate:"required"`
	Name        string           `json:"name" validate:"required"`
	Class       string           `json:"class" validate:"required"`
	Vendor      string           `json:"vendor"`
	CostPrice   *decimal.Decimal `json:"cost_price"`
	AutoReorder bool             `json:"auto_reorder"`
	Inactive    bool             `json:"inactive"`
	// Inventory maps warehouse id to available quantity
	Inventory map[string]int `json:"inventory" validate:"dive,gte=0"`
}

// DecodeFixture reads and validates a fixture
func DecodeFixture(r io.Reader) (*Fixture, error) {
	var f Fixture
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}
	if err := validator.New().Struct(&f); err != nil {
		return nil, fmt.Errorf("invalid fixture: %w", err)
	}
	return &f, nil
}

func vendorID(code string) uuid.UUID {
	return uuid.NewSHA1(seedNamespace, []byte("vendor:"+code))
}

func classID(name string) uuid.UUID {
	return uuid.NewSHA1(seedNamespace, []byte("class:"+name))
}

func skuID(code string) uuid.UUID {
	return uuid.NewSHA1(seedNamespace, []byte("sku:"+code))
}

// Catalog resolves references and produces the rows to upsert
func (f *Fixture) Catalog() (*db.CatalogSeed, error) {
	seed := &db.CatalogSeed{}

	vendors := make(map[string]uuid.UUID, len(f.Vendors))
	for _, v := range f.Vendors {
		if _, dup := vendors[v.Code]; dup {
			return nil, fmt.Errorf("duplicate vendor code %q", v.Code)
		}
		id := vendorID(v.Code)
		vendors[v.Code] = id
		seed.Vendors = append(seed.Vendors, domain.Vendor{ID: id, Code: v.Code, Name: v.Name, IsActive: !v.Inactive})
	}

	classes := make(map[string]domain.SKUClass, len(f.Classes))
	for _, c := range f.Classes {
		if _, dup := classes[c.Name]; dup {
			return nil, fmt.Errorf("duplicate class %q", c.Name)
		}
		if err := c.Thresholds.Validate(); err != nil {
			return nil, fmt.Errorf("class %s: %w", c.Name, err)
		}
		class := domain.SKUClass{ID: classID(c.Name), Name: c.Name, Thresholds: c.Thresholds}
		classes[c.Name] = class
		seed.Classes = append(seed.Classes, class)
	}

	seen := make(map[string]bool, len(f.SKUs))
	for _, s := range f.SKUs {
		if seen[s.Code] {
			return nil, fmt.Errorf("duplicate sku code %q", s.Code)
		}
		seen[s.Code] = true

		class, ok := classes[s.Class]
		if !ok {
			return nil, fmt.Errorf("sku %s: unknown class %q", s.Code, s.Class)
		}

		sku := domain.SKU{
			ID:                 skuID(s.Code),
			Code:               s.Code,
			Name:               s.Name,
			ClassID:            class.ID,
			Thresholds:         class.Thresholds,
			AutoReorderEnabled: s.AutoReorder,
			CostPrice:          s.CostPrice,
			IsActive:           !s.Inactive,
		}
		if s.Vendor != "" {
			id, ok := vendors[s.Vendor]
			if !ok {
				return nil, fmt.Errorf("sku %s: unknown vendor %q", s.Code, s.Vendor)
			}
			sku.PreferredVendorID = &id
		}
		seed.SKUs = append(seed.SKUs, sku)

		warehouses := make([]string, 0, len(s.Inventory))
		for wh := range s.Inventory {
			warehouses = append(warehouses, wh)
		}
		sort.Strings(warehouses)
		for _, wh := range warehouses {
			seed.Levels = append(seed.Levels, db.InventoryLevel{
				SKUID:       sku.ID,
				WarehouseID: wh,
				Available:   s.Inventory[wh],
			})
		}
	}

	return seed, nil
}
