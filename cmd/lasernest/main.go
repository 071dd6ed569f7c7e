// LaserNest — manufacturability validation and material nesting for laser
// cutting.
//
// Build:
//
//	go build -o lasernest ./cmd/lasernest
//
// Usage:
//
//	lasernest materials [-machine co2-40w]
//	lasernest check -design part.dxf -material plywood-3mm [-machine co2-40w] [-precision standard]
//	lasernest nest -parts parts.csv -sheet 600x400 [-algorithm efficiency] [-pdf out.pdf] [-dxf out] [-xlsx out.xlsx] [-svg out.svg]
//	lasernest recommend -span 120 -feature 1.0 [-transparent] [-flexible]
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/makefab/lasernest/internal/catalog"
	"github.com/makefab/lasernest/internal/config"
	"github.com/makefab/lasernest/internal/engine"
	"github.com/makefab/lasernest/internal/export"
	"github.com/makefab/lasernest/internal/importer"
	"github.com/makefab/lasernest/internal/model"
	"github.com/makefab/lasernest/internal/validate"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "materials":
		err = runMaterials(os.Args[2:])
	case "check":
		err = runCheck(os.Args[2:])
	case "nest":
		err = runNest(os.Args[2:])
	case "recommend":
		err = runRecommend(os.Args[2:])
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: lasernest <command> [flags]

commands:
  materials   list catalog materials and their cutting limits
  check       validate a design's features against a material
  nest        lay out a part list onto material sheets
  recommend   suggest materials for a set of requirements`)
}

// loadCatalog builds the property catalog, applying any user override file
// configured in the app settings.
func loadCatalog() (*catalog.Catalog, error) {
	cfg, err := config.LoadAppConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, err
	}

	c := catalog.New()
	overrides := cfg.CatalogOverrides
	if overrides == "" {
		overrides = config.DefaultOverridesPath()
	}
	warnings, err := c.LoadOverrides(overrides)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "catalog:", w)
	}
	return c, nil
}

func runMaterials(args []string) error {
	fs := flag.NewFlagSet("materials", flag.ExitOnError)
	machine := fs.String("machine", "co2-40w", "machine key for kerf figures")
	precision := fs.String("precision", "standard", "precision class")
	fs.Parse(args)

	c, err := loadCatalog()
	if err != nil {
		return err
	}

	for _, key := range c.MaterialKeys() {
		constraints, err := c.ResolveConstraints(key, *machine, *precision)
		if err != nil {
			return err
		}
		m := constraints.Material
		fmt.Printf("%-16s %-10s %4.1fmm  kerf %.2fmm  min feature %.2fmm  min hole %.2fmm  max span %.0fmm\n",
			key, m.Type, m.Thickness, constraints.Kerf.Width, m.MinFeatureSize, m.MinHoleSize,
			constraints.Structural.MaxSpanWithoutSupport)
	}
	return nil
}

func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	design := fs.String("design", "", "DXF design file")
	material := fs.String("material", "plywood-3mm", "catalog material key")
	machine := fs.String("machine", "co2-40w", "catalog machine key")
	precision := fs.String("precision", "standard", "precision class")
	fs.Parse(args)

	if *design == "" {
		return fmt.Errorf("check: -design is required")
	}

	c, err := loadCatalog()
	if err != nil {
		return err
	}
	constraints, err := c.ResolveConstraints(*material, *machine, *precision)
	if err != nil {
		return err
	}

	features, err := importer.ImportDXFFeatures(*design)
	if err != nil {
		return err
	}

	result, err := validate.Validate(features, constraints)
	if err != nil {
		return err
	}

	fmt.Printf("%s on %s: score %d/100, estimated success %d%%\n",
		filepath.Base(*design), *material, result.Score, result.EstimatedSuccess)
	for _, v := range result.Violations {
		fmt.Printf("  [%s] %s: %s\n", v.Severity, v.Category, v.Message)
		if v.SuggestedFix != "" {
			fmt.Printf("      fix: %s\n", v.SuggestedFix)
		}
	}
	for _, r := range result.Recommendations {
		fmt.Println("  *", r)
	}
	if !result.IsValid {
		os.Exit(1)
	}
	return nil
}

func runNest(args []string) error {
	fs := flag.NewFlagSet("nest", flag.ExitOnError)
	partsFile := fs.String("parts", "", "part list (.csv, .xlsx) or design (.dxf)")
	sheetSpec := fs.String("sheet", "600x400", "sheet size WxH in mm")
	sheetCount := fs.Int("sheets", 10, "number of sheets available")
	sheetCost := fs.Float64("cost", 0, "cost per sheet")
	margin := fs.Float64("margin", 0, "edge margin in mm")
	algorithm := fs.String("algorithm", string(model.AlgorithmEfficiency), "speed, efficiency, or minimal_waste")
	spacing := fs.Float64("spacing", 2.0, "minimum part spacing in mm")
	noRotate := fs.Bool("no-rotate", false, "disallow 90 degree rotation")
	byPriority := fs.Bool("priority", false, "place high-priority parts first")
	pdfOut := fs.String("pdf", "", "write a layout PDF")
	labelOut := fs.String("labels", "", "write a QR label PDF")
	dxfOut := fs.String("dxf", "", "write DXF cut files with this base name")
	xlsxOut := fs.String("xlsx", "", "write a cost workbook")
	svgOut := fs.String("svg", "", "write an SVG preview")
	fs.Parse(args)

	if *partsFile == "" {
		return fmt.Errorf("nest: -parts is required")
	}

	parts, err := importParts(*partsFile)
	if err != nil {
		return err
	}

	w, h, err := parseSheetSpec(*sheetSpec)
	if err != nil {
		return err
	}
	var sheets []model.MaterialSheet
	for i := 0; i < *sheetCount; i++ {
		s := model.NewMaterialSheet(fmt.Sprintf("%s #%d", *sheetSpec, i+1), w, h)
		s.CostPerSheet = *sheetCost
		s.EdgeMargin = *margin
		sheets = append(sheets, s)
	}

	options := model.NestOptions{
		Algorithm:       model.Algorithm(*algorithm),
		AllowRotation:   !*noRotate,
		MinimumSpacing:  *spacing,
		PrioritizeOrder: *byPriority,
		Visualize:       *svgOut != "",
	}

	opt := engine.New(options)
	result, err := opt.Optimize(parts, sheets)
	if err != nil {
		return err
	}

	printResult(result)

	if *pdfOut != "" {
		if err := export.ExportPDF(*pdfOut, result, options); err != nil {
			return err
		}
		fmt.Println("wrote", *pdfOut)
	}
	if *labelOut != "" {
		if err := export.ExportLabels(*labelOut, result); err != nil {
			return err
		}
		fmt.Println("wrote", *labelOut)
	}
	if *dxfOut != "" {
		files, err := export.ExportDXF(*dxfOut, result)
		if err != nil {
			return err
		}
		fmt.Println("wrote", strings.Join(files, ", "))
	}
	if *xlsxOut != "" {
		if err := export.ExportWorkbook(*xlsxOut, result); err != nil {
			return err
		}
		fmt.Println("wrote", *xlsxOut)
	}
	if *svgOut != "" {
		if err := os.WriteFile(*svgOut, []byte(result.Visualization), 0644); err != nil {
			return err
		}
		fmt.Println("wrote", *svgOut)
	}
	return nil
}

func importParts(path string) ([]model.PartShape, error) {
	var res importer.ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		res = importer.ImportCSV(path)
	case ".xlsx", ".xls":
		res = importer.ImportExcel(path)
	case ".dxf":
		res = importer.ImportDXF(path)
	default:
		return nil, fmt.Errorf("unsupported part list format %q", filepath.Ext(path))
	}

	for _, w := range res.Warnings {
		fmt.Fprintln(os.Stderr, "import:", w)
	}
	if len(res.Errors) > 0 {
		return nil, fmt.Errorf("import failed: %s", strings.Join(res.Errors, "; "))
	}
	return res.Parts, nil
}

func parseSheetSpec(spec string) (float64, float64, error) {
	fields := strings.SplitN(spec, "x", 2)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("invalid sheet spec %q, expected WxH", spec)
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid sheet width %q", fields[0])
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid sheet height %q", fields[1])
	}
	return w, h, nil
}

func printResult(result model.NestingResult) {
	s := result.Summary
	fmt.Printf("placed %d of %d parts on %d sheets, %.1f%% average utilization\n",
		s.PartsPlaced, s.PartsRequested, s.SheetsUsed, s.AverageUtilization)
	for i, layout := range result.Sheets {
		fmt.Printf("  sheet %d (%s): %d parts, %.1f%% used, %.1f min cut time\n",
			i+1, layout.Sheet.Name, len(layout.Placements), layout.Utilization(), layout.CutTimeMinutes)
	}
	for _, up := range s.PartsNotPlaced {
		fmt.Printf("  not placed: %s x%d\n", up.Part.Name, up.Quantity)
	}
	for _, oc := range result.Offcuts {
		fmt.Printf("  offcut: %.0fx%.0fmm on sheet %d\n", oc.Width, oc.Height, oc.SheetIndex+1)
	}
	if result.Cost.TotalProject > 0 {
		fmt.Printf("cost: material %.2f, waste %.2f, labor %.2f, total %.2f\n",
			result.Cost.MaterialCosts, result.Cost.WasteCosts, result.Cost.LaborCosts, result.Cost.TotalProject)
	}
	for _, rec := range result.Recommendations {
		fmt.Println("  *", rec)
	}
}

func runRecommend(args []string) error {
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	intent := fs.String("intent", "", "design intent, e.g. structural or decorative")
	span := fs.Float64("span", 0, "maximum unsupported span in mm")
	feature := fs.Float64("feature", 0, "smallest feature size in mm")
	transparent := fs.Bool("transparent", false, "material must be transparent")
	flexible := fs.Bool("flexible", false, "material must flex without cracking")
	fs.Parse(args)

	c, err := loadCatalog()
	if err != nil {
		return err
	}

	if *intent != "" {
		keys := c.RecommendMaterials(catalog.DesignIntent(*intent))
		if len(keys) == 0 {
			fmt.Printf("no recommendations for intent %q\n", *intent)
			return nil
		}
		for _, key := range keys {
			fmt.Println(key)
		}
		return nil
	}

	req := catalog.MaterialRequirements{
		MaxSpan:           *span,
		MinFeature:        *feature,
		NeedsTransparency: *transparent,
		NeedsFlexibility:  *flexible,
	}
	found := false
	for _, key := range c.MaterialKeys() {
		choice, err := c.ValidateMaterialChoice(key, req)
		if err != nil {
			return err
		}
		if choice.IsValid {
			fmt.Println(key)
			found = true
		}
	}
	if !found {
		fmt.Println("no catalog material satisfies the requirements")
	}
	return nil
}
