package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/it-inventory/backend/internal/models"
)

type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

type ImportSummary struct {
	Created       int        `json:"created"`
	AuditWarnings int        `json:"audit_warnings,omitempty"`
	Failed        []RowError `json:"failed,omitempty"`
}

type EmployeeRow struct {
	Line     int
	Employee models.Employee
}

type AssetRow struct {
	Line  int
	Asset models.Asset
}

const csvDateLayout = "2006-01-02"

// ParseEmployeesCSV reads a header-addressed CSV. Required columns: full_name,
// email. Optional: designation, status, date_of_joining (YYYY-MM-DD). Bad rows
// come back as RowErrors without aborting the parse.
func ParseEmployeesCSV(r io.Reader) ([]EmployeeRow, []RowError, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading CSV header: %w", err)
	}
	cols := indexColumns(header)
	if _, ok := cols["full_name"]; !ok {
		return nil, nil, fmt.Errorf("CSV is missing required column full_name")
	}
	if _, ok := cols["email"]; !ok {
		return nil, nil, fmt.Errorf("CSV is missing required column email")
	}

	var rows []EmployeeRow
	var rowErrs []RowError
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Message: err.Error()})
			continue
		}

		e := models.Employee{
			FullName:    field(record, cols, "full_name"),
			Email:       field(record, cols, "email"),
			Status:      field(record, cols, "status"),
			Designation: optionalField(record, cols, "designation"),
		}
		if e.FullName == "" || e.Email == "" {
			rowErrs = append(rowErrs, RowError{Line: line, Message: "full_name and email are required"})
			continue
		}
		if v := field(record, cols, "date_of_joining"); v != "" {
			d, err := time.Parse(csvDateLayout, v)
			if err != nil {
				rowErrs = append(rowErrs, RowError{Line: line, Message: "invalid date_of_joining, want YYYY-MM-DD"})
				continue
			}
			e.DateOfJoining = &d
		}

		rows = append(rows, EmployeeRow{Line: line, Employee: e})
	}
	return rows, rowErrs, nil
}

// ParseAssetsCSV reads a header-addressed CSV. Required columns: asset_id,
// serial_number. Optional: asset_type, brand, model, processor, ram_gb,
// storage_size_gb, purchase_date, warranty_expiry, status, remarks. A status
// of Allocated is rejected: imported assets cannot bypass the allocation
// state machine.
func ParseAssetsCSV(r io.Reader) ([]AssetRow, []RowError, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading CSV header: %w", err)
	}
	cols := indexColumns(header)
	if _, ok := cols["asset_id"]; !ok {
		return nil, nil, fmt.Errorf("CSV is missing required column asset_id")
	}
	if _, ok := cols["serial_number"]; !ok {
		return nil, nil, fmt.Errorf("CSV is missing required column serial_number")
	}

	var rows []AssetRow
	var rowErrs []RowError
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Message: err.Error()})
			continue
		}

		a := models.Asset{
			AssetID:      field(record, cols, "asset_id"),
			AssetType:    field(record, cols, "asset_type"),
			SerialNumber: field(record, cols, "serial_number"),
			Status:       field(record, cols, "status"),
			Brand:        optionalField(record, cols, "brand"),
			Model:        optionalField(record, cols, "model"),
			Processor:    optionalField(record, cols, "processor"),
			Remarks:      optionalField(record, cols, "remarks"),
		}
		if a.AssetID == "" || a.SerialNumber == "" {
			rowErrs = append(rowErrs, RowError{Line: line, Message: "asset_id and serial_number are required"})
			continue
		}
		if a.Status == models.AssetStatusAllocated {
			rowErrs = append(rowErrs, RowError{Line: line, Message: "imported assets cannot be Allocated"})
			continue
		}

		ok := true
		for _, intCol := range []struct {
			name string
			dst  **int
		}{{"ram_gb", &a.RAMGB}, {"storage_size_gb", &a.StorageSizeGB}} {
			if v := field(record, cols, intCol.name); v != "" {
				n, err := strconv.Atoi(v)
				if err != nil {
					rowErrs = append(rowErrs, RowError{Line: line, Message: "invalid " + intCol.name})
					ok = false
					break
				}
				*intCol.dst = &n
			}
		}
		if !ok {
			continue
		}
		for _, dateCol := range []struct {
			name string
			dst  **time.Time
		}{{"purchase_date", &a.PurchaseDate}, {"warranty_expiry", &a.WarrantyExpiry}} {
			if v := field(record, cols, dateCol.name); v != "" {
				d, err := time.Parse(csvDateLayout, v)
				if err != nil {
					rowErrs = append(rowErrs, RowError{Line: line, Message: "invalid " + dateCol.name + ", want YYYY-MM-DD"})
					ok = false
					break
				}
				*dateCol.dst = &d
			}
		}
		if !ok {
			continue
		}

		rows = append(rows, AssetRow{Line: line, Asset: a})
	}
	return rows, rowErrs, nil
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cols
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func optionalField(record []string, cols map[string]int, name string) *string {
	v := field(record, cols, name)
	if v == "" {
		return nil
	}
	return &v
}
