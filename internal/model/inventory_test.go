package model

import "testing"

// ─── Machine Presets ───

func TestNewMachinePreset(t *testing.T) {
	mp := NewMachinePreset("Desktop CO2", "co2-40w", 600, 45)

	if mp.ID == "" {
		t.Error("expected generated ID")
	}
	if mp.Name != "Desktop CO2" || mp.MachineKey != "co2-40w" {
		t.Errorf("fields not set: %+v", mp)
	}
	if mp.FeedRateMMPerMin != 600 || mp.HourlyRate != 45 {
		t.Errorf("rates not set: %+v", mp)
	}
}

func TestMachinePresetApplyToRates(t *testing.T) {
	mp := NewMachinePreset("Workshop", "co2-100w", 1200, 60)
	rates := DefaultCostRates()

	mp.ApplyToRates(&rates)

	if rates.FeedRateMMPerMin != 1200 {
		t.Errorf("expected feed rate 1200, got %.0f", rates.FeedRateMMPerMin)
	}
	if rates.HourlyRate != 60 {
		t.Errorf("expected hourly rate 60, got %.0f", rates.HourlyRate)
	}
}

// ─── Stock Presets ───

func TestNewStockPreset(t *testing.T) {
	sp := NewStockPreset("Ply 3mm", 600, 400, 3, "plywood", 4.50)

	if sp.ID == "" {
		t.Error("expected generated ID")
	}
	if sp.Width != 600 || sp.Height != 400 || sp.Thickness != 3 {
		t.Errorf("dimensions not set: %+v", sp)
	}
	if sp.Material != "plywood" || sp.CostPerSheet != 4.50 {
		t.Errorf("material fields not set: %+v", sp)
	}
}

func TestStockPresetToMaterialSheets(t *testing.T) {
	sp := NewStockPreset("Acrylic 3mm", 600, 400, 3, "acrylic", 11.00)

	sheets := sp.ToMaterialSheets(3)

	if len(sheets) != 3 {
		t.Fatalf("expected 3 sheets, got %d", len(sheets))
	}
	seen := make(map[string]bool)
	for _, s := range sheets {
		if seen[s.ID] {
			t.Error("sheet IDs should be unique")
		}
		seen[s.ID] = true
		if s.Name != "Acrylic 3mm" || s.Width != 600 || s.Height != 400 {
			t.Errorf("sheet fields not carried over: %+v", s)
		}
		if s.Thickness != 3 || s.Material != "acrylic" || s.CostPerSheet != 11.00 {
			t.Errorf("material fields not carried over: %+v", s)
		}
	}
}

func TestStockPresetToMaterialSheetsZeroQuantity(t *testing.T) {
	sp := NewStockPreset("Ply", 600, 400, 3, "plywood", 4.50)
	if sheets := sp.ToMaterialSheets(0); len(sheets) != 0 {
		t.Errorf("expected no sheets, got %d", len(sheets))
	}
}

// ─── Inventory ───

func TestDefaultInventory(t *testing.T) {
	inv := DefaultInventory()

	if len(inv.Machines) != 3 {
		t.Errorf("expected 3 default machines, got %d", len(inv.Machines))
	}
	if len(inv.Stocks) != 5 {
		t.Errorf("expected 5 default stocks, got %d", len(inv.Stocks))
	}
	for _, m := range inv.Machines {
		if m.MachineKey == "" {
			t.Errorf("machine %q has no catalog key", m.Name)
		}
	}
}

func TestInventoryFindMachine(t *testing.T) {
	inv := DefaultInventory()

	m := inv.FindMachineByName("CO2 40W Desktop")
	if m == nil {
		t.Fatal("expected to find default desktop machine")
	}
	if m.MachineKey != "co2-40w" {
		t.Errorf("wrong machine key: %s", m.MachineKey)
	}

	if byID := inv.FindMachineByID(m.ID); byID == nil || byID.Name != m.Name {
		t.Error("FindMachineByID did not return the same preset")
	}
	if inv.FindMachineByID("nope") != nil {
		t.Error("expected nil for unknown ID")
	}
	if inv.FindMachineByName("nope") != nil {
		t.Error("expected nil for unknown name")
	}
}

func TestInventoryFindStock(t *testing.T) {
	inv := DefaultInventory()

	s := inv.FindStockByName("Acrylic 600x400 3mm")
	if s == nil {
		t.Fatal("expected to find default acrylic stock")
	}
	if s.Material != "acrylic" {
		t.Errorf("wrong material: %s", s.Material)
	}

	if byID := inv.FindStockByID(s.ID); byID == nil || byID.Name != s.Name {
		t.Error("FindStockByID did not return the same preset")
	}
	if inv.FindStockByID("nope") != nil {
		t.Error("expected nil for unknown ID")
	}
}

func TestInventoryNames(t *testing.T) {
	inv := DefaultInventory()

	machines := inv.MachineNames()
	if len(machines) != len(inv.Machines) {
		t.Errorf("expected %d machine names, got %d", len(inv.Machines), len(machines))
	}
	if machines[0] != inv.Machines[0].Name {
		t.Error("machine names out of order")
	}

	stocks := inv.StockNames()
	if len(stocks) != len(inv.Stocks) {
		t.Errorf("expected %d stock names, got %d", len(inv.Stocks), len(stocks))
	}
}
