// Command genmock generates mock input fixtures for the report pipeline: a
// weekly claims CSV and a labor-force workbook covering a sample of Nebraska
// counties. It runs the generated data through the actual domain package and
// prints the derived ranking so test assertions can be updated against real
// pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -out-dir data/mock \
//	  -weeks 6 \
//	  -period 2020-03 \
//	  -seed 42
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/county-claims-report/internal/domain"
	"github.com/couchcryptid/county-claims-report/internal/loader"
)

var firstWeek = time.Date(2020, time.March, 21, 0, 0, 0, 0, time.UTC)

// county pairs a claims-file name with its labor-force row attributes.
type county struct {
	name       string
	countyFIPS string
	laborForce float64
}

// A sample of Nebraska counties spanning large metros and small rural
// counties so the generated ranking has meaningful spread. FIPS codes are
// the real ones.
var counties = []county{
	{name: "Douglas", countyFIPS: "055", laborForce: 295000},
	{name: "Lancaster", countyFIPS: "109", laborForce: 175000},
	{name: "Sarpy", countyFIPS: "153", laborForce: 98000},
	{name: "Hall", countyFIPS: "079", laborForce: 32000},
	{name: "Buffalo", countyFIPS: "019", laborForce: 27000},
	{name: "Dodge", countyFIPS: "053", laborForce: 19000},
	{name: "Scotts Bluff", countyFIPS: "157", laborForce: 17500},
	{name: "Madison", countyFIPS: "119", laborForce: 18500},
	{name: "Platte", countyFIPS: "141", laborForce: 17800},
	{name: "Adams", countyFIPS: "001", laborForce: 16500},
	{name: "Gage", countyFIPS: "067", laborForce: 11200},
	{name: "Dawson", countyFIPS: "047", laborForce: 12300},
	{name: "Custer", countyFIPS: "041", laborForce: 6100},
	{name: "Box Butte", countyFIPS: "013", laborForce: 5600},
	{name: "Cherry", countyFIPS: "031", laborForce: 3300},
	{name: "Banner", countyFIPS: "007", laborForce: 400},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out-dir", "data/mock", "output directory for fixture files")
	weeks := flag.Int("weeks", 6, "number of weekly claim observations per county")
	period := flag.String("period", "2020-03", "labor-force reporting period")
	seed := flag.Int64("seed", 42, "random seed for reproducible fixtures")
	flag.Parse()

	if *weeks < 1 {
		return fmt.Errorf("-weeks must be at least 1, got %d", *weeks)
	}

	rng := rand.New(rand.NewSource(*seed))

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	claimsPath := filepath.Join(*outDir, "weekly_claims.csv")
	if err := writeClaimsCSV(claimsPath, rng, *weeks); err != nil {
		return fmt.Errorf("writing claims fixture: %w", err)
	}
	log.Printf("wrote claims fixture: %s", claimsPath)

	laborPath := filepath.Join(*outDir, "laus_laborforce.xlsx")
	if err := writeLaborForceWorkbook(laborPath, *period); err != nil {
		return fmt.Errorf("writing labor-force fixture: %w", err)
	}
	log.Printf("wrote labor-force fixture: %s", laborPath)

	return printDerived(claimsPath, laborPath, *period)
}

// writeClaimsCSV emits one row per county per week, plus the messy rows the
// real download contains: a suppressed count (empty cell), a comma-grouped
// number, and a statewide total that has no matching labor-force county row.
func writeClaimsCSV(path string, rng *rand.Rand, weeks int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"county", "week", "claims"}); err != nil {
		return err
	}

	for _, c := range counties {
		// Claims scale with labor force, with noise so ranks are not a
		// straight size ordering.
		base := c.laborForce * (0.01 + rng.Float64()*0.06) / float64(weeks)
		for wk := 0; wk < weeks; wk++ {
			date := firstWeek.AddDate(0, 0, 7*wk).Format("2006-01-02")
			n := int(base * (0.7 + rng.Float64()*0.6))

			value := strconv.Itoa(n)
			switch {
			case c.name == "Banner" && wk == 0:
				value = "" // suppressed cell
			case n >= 1000:
				value = groupThousands(n)
			}

			row := []string{c.name + " County, NE", date, value}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	// Statewide total: aggregated but never ranked, it has no county row in
	// the labor-force file.
	date := firstWeek.Format("2006-01-02")
	if err := w.Write([]string{"Nebraska", date, "24,572"}); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

func writeLaborForceWorkbook(path, period string) error {
	wb := excelize.NewFile()
	defer wb.Close()

	sheet := wb.GetSheetName(0)
	header := []any{"area", "state_fips", "county_fips", "period", "labor_force"}
	if err := wb.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	row := 2
	for _, c := range counties {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := []any{c.name, "31", c.countyFIPS, period, c.laborForce}
		if err := wb.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
		row++
	}

	// Statewide row with a zero labor force, dropped during the join.
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	values := []any{"Nebraska", "31", "000", period, 0}
	if err := wb.SetSheetRow(sheet, cell, &values); err != nil {
		return err
	}

	return wb.SaveAs(path)
}

// printDerived runs the generated fixtures through the domain pipeline and
// prints the resulting ranking for updating test assertions.
func printDerived(claimsPath, laborPath, period string) error {
	observations, err := loader.NewClaimsFile(claimsPath).Claims()
	if err != nil {
		return fmt.Errorf("reload claims: %w", err)
	}

	laborRecords, err := loader.NewLaborForceFile(laborPath, period).LaborForce()
	if err != nil {
		return fmt.Errorf("reload labor force: %w", err)
	}

	for i := range observations {
		observations[i].UnitKey = domain.NormalizeClaimsKey(observations[i].UnitKey)
	}

	totals := domain.AggregateClaims(observations)
	sort.Slice(totals, func(i, j int) bool { return totals[i].UnitKey < totals[j].UnitKey })

	rs, stats, err := domain.BuildRecordSet(totals, laborRecords)
	if err != nil {
		return fmt.Errorf("build record set: %w", err)
	}

	fmt.Println("\n=== Derived ranking for updating test assertions ===")
	fmt.Printf("Counties ranked: %d\n", rs.Len())
	fmt.Printf("Join misses: %d, non-positive labor force: %d\n",
		stats.JoinMisses, stats.NonPositiveLaborForce)
	for _, r := range rs.Records() {
		fmt.Printf("  %-14s %s  total=%-7.0f lf=%-7.0f percent=%.1f  rank=%d (%s)\n",
			r.UnitKey, r.CompositeID, r.Total, r.LaborForce, r.Percent, r.Rank, r.OrdinalLabel)
	}
	return nil
}

func groupThousands(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	return s[:len(s)-3] + "," + s[len(s)-3:]
}
