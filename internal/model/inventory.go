package model

import "github.com/google/uuid"

// MachinePreset represents a reusable laser machine configuration tying a
// catalog machine key to the shop rates used for that machine.
type MachinePreset struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	MachineKey       string  `json:"machine_key"` // Catalog key, e.g. "co2-40w"
	FeedRateMMPerMin float64 `json:"feed_rate_mm_per_min"`
	HourlyRate       float64 `json:"hourly_rate"`
}

// NewMachinePreset creates a MachinePreset with a generated ID.
func NewMachinePreset(name, machineKey string, feedRate, hourlyRate float64) MachinePreset {
	return MachinePreset{
		ID:               uuid.New().String()[:8],
		Name:             name,
		MachineKey:       machineKey,
		FeedRateMMPerMin: feedRate,
		HourlyRate:       hourlyRate,
	}
}

// ApplyToRates copies this preset's rate parameters into the given CostRates.
func (mp MachinePreset) ApplyToRates(r *CostRates) {
	r.FeedRateMMPerMin = mp.FeedRateMMPerMin
	r.HourlyRate = mp.HourlyRate
}

// StockPreset represents a reusable material sheet definition.
type StockPreset struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Thickness    float64 `json:"thickness"`
	Material     string  `json:"material"`
	CostPerSheet float64 `json:"cost_per_sheet"`
}

// NewStockPreset creates a StockPreset with a generated ID.
func NewStockPreset(name string, width, height, thickness float64, material string, cost float64) StockPreset {
	return StockPreset{
		ID:           uuid.New().String()[:8],
		Name:         name,
		Width:        width,
		Height:       height,
		Thickness:    thickness,
		Material:     material,
		CostPerSheet: cost,
	}
}

// ToMaterialSheets converts a StockPreset into qty identical MaterialSheets,
// each with its own ID.
func (sp StockPreset) ToMaterialSheets(qty int) []MaterialSheet {
	sheets := make([]MaterialSheet, 0, qty)
	for i := 0; i < qty; i++ {
		s := NewMaterialSheet(sp.Name, sp.Width, sp.Height)
		s.Thickness = sp.Thickness
		s.Material = sp.Material
		s.CostPerSheet = sp.CostPerSheet
		sheets = append(sheets, s)
	}
	return sheets
}

// Inventory holds the user's saved machine and stock presets.
type Inventory struct {
	Machines []MachinePreset `json:"machines"`
	Stocks   []StockPreset   `json:"stocks"`
}

// DefaultInventory returns an inventory populated with common defaults.
func DefaultInventory() Inventory {
	return Inventory{
		Machines: []MachinePreset{
			NewMachinePreset("CO2 40W Desktop", "co2-40w", 600, 45),
			NewMachinePreset("CO2 100W Workshop", "co2-100w", 1200, 60),
			NewMachinePreset("Diode 10W Hobby", "diode-10w", 300, 30),
		},
		Stocks: []StockPreset{
			NewStockPreset("Plywood 600x400 3mm", 600, 400, 3, "plywood", 4.50),
			NewStockPreset("Plywood 600x400 6mm", 600, 400, 6, "plywood", 7.20),
			NewStockPreset("MDF 600x400 3mm", 600, 400, 3, "mdf", 2.80),
			NewStockPreset("Acrylic 600x400 3mm", 600, 400, 3, "acrylic", 11.00),
			NewStockPreset("Cardboard 500x300 3mm", 500, 300, 3, "cardboard", 0.60),
		},
	}
}

// FindMachineByID returns a pointer to the machine preset with the given ID, or nil.
func (inv *Inventory) FindMachineByID(id string) *MachinePreset {
	for i := range inv.Machines {
		if inv.Machines[i].ID == id {
			return &inv.Machines[i]
		}
	}
	return nil
}

// FindStockByID returns a pointer to the stock preset with the given ID, or nil.
func (inv *Inventory) FindStockByID(id string) *StockPreset {
	for i := range inv.Stocks {
		if inv.Stocks[i].ID == id {
			return &inv.Stocks[i]
		}
	}
	return nil
}

// MachineNames returns the list of machine preset names.
func (inv *Inventory) MachineNames() []string {
	names := make([]string, len(inv.Machines))
	for i, m := range inv.Machines {
		names[i] = m.Name
	}
	return names
}

// StockNames returns the list of stock preset names.
func (inv *Inventory) StockNames() []string {
	names := make([]string, len(inv.Stocks))
	for i, s := range inv.Stocks {
		names[i] = s.Name
	}
	return names
}

// FindMachineByName returns the first machine preset with the given name, or nil.
func (inv *Inventory) FindMachineByName(name string) *MachinePreset {
	for i := range inv.Machines {
		if inv.Machines[i].Name == name {
			return &inv.Machines[i]
		}
	}
	return nil
}

// FindStockByName returns the first stock preset with the given name, or nil.
func (inv *Inventory) FindStockByName(name string) *StockPreset {
	for i := range inv.Stocks {
		if inv.Stocks[i].Name == name {
			return &inv.Stocks[i]
		}
	}
	return nil
}
