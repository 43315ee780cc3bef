package main

import (
	"fmt"
	"log"
	"os"

	"sheet-filter/internal/codec"

	"github.com/xuri/excelize/v2"
)

// Checks an exported workbook: sheet name, header row, row count and
// empty cells per column.
func main() {
	filename := "output/filtered_data.xlsx"
	if len(os.Args) > 1 {
		filename = os.Args[1]
	}

	f, err := excelize.OpenFile(filename)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	sheetName := codec.DefaultSheetName
	if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		fmt.Printf("❌ Sheet %q not found (sheets: %v)\n", sheetName, f.GetSheetList())
		os.Exit(1)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("=== EXPORT CHECK: %s ===\n", filename)
	fmt.Printf("Sheet: %s\n", sheetName)
	if len(rows) == 0 {
		fmt.Println("⚠️  Sheet is empty (no header, no data)")
		return
	}

	header := rows[0]
	fmt.Printf("Columns: %v\n", header)
	fmt.Printf("Data rows: %d\n\n", len(rows)-1)

	empty := make([]int, len(header))
	blankRows := 0
	for i, row := range rows[1:] {
		filled := 0
		for c := range header {
			if c >= len(row) || row[c] == "" {
				empty[c]++
				continue
			}
			filled++
		}
		if filled == 0 {
			blankRows++
			fmt.Printf("⚠️  Row %d has no values\n", i+2)
		}
	}

	for c, name := range header {
		fmt.Printf("  %-20s empty cells: %d\n", name, empty[c])
	}

	fmt.Println()
	if blankRows == 0 {
		fmt.Println("✅ No blank data rows")
	} else {
		fmt.Printf("❌ %d blank data rows\n", blankRows)
	}
}
