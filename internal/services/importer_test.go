package services

import (
	"strings"
	"testing"

	"github.com/it-inventory/backend/internal/models"
)

func TestParseEmployeesCSV(t *testing.T) {
	in := strings.Join([]string{
		"full_name,email,designation,status,date_of_joining",
		"Asha Rao,asha@corp.example,Engineer,Active,2023-04-17",
		",missing@corp.example,,,",
		"Bad Date,bad@corp.example,,,17-04-2023",
		"Minimal Person,minimal@corp.example,,,",
	}, "\n")

	rows, rowErrs, err := ParseEmployeesCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseEmployeesCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if len(rowErrs) != 2 {
		t.Fatalf("got %d row errors, want 2", len(rowErrs))
	}

	first := rows[0]
	if first.Line != 2 {
		t.Errorf("first row line = %d, want 2", first.Line)
	}
	if first.Employee.FullName != "Asha Rao" || first.Employee.Email != "asha@corp.example" {
		t.Errorf("unexpected first row: %+v", first.Employee)
	}
	if first.Employee.Designation == nil || *first.Employee.Designation != "Engineer" {
		t.Errorf("designation not parsed: %+v", first.Employee.Designation)
	}
	if first.Employee.DateOfJoining == nil || first.Employee.DateOfJoining.Format("2006-01-02") != "2023-04-17" {
		t.Errorf("date_of_joining not parsed: %+v", first.Employee.DateOfJoining)
	}

	if rows[1].Employee.Designation != nil {
		t.Errorf("empty designation should stay nil")
	}
	if rowErrs[0].Line != 3 || rowErrs[1].Line != 4 {
		t.Errorf("row error lines = %d, %d; want 3, 4", rowErrs[0].Line, rowErrs[1].Line)
	}
}

func TestParseEmployeesCSVMissingColumns(t *testing.T) {
	_, _, err := ParseEmployeesCSV(strings.NewReader("full_name,designation\nAsha Rao,Engineer\n"))
	if err == nil {
		t.Fatal("expected error for missing email column")
	}
}

func TestParseAssetsCSV(t *testing.T) {
	in := strings.Join([]string{
		"asset_id,serial_number,asset_type,brand,model,ram_gb,storage_size_gb,purchase_date,status",
		"LAP-0042,SN123,Laptop,Dell,Latitude 5420,16,512,2022-11-03,Available",
		"LAP-0043,SN124,Laptop,,,not-a-number,,,",
		"LAP-0044,SN125,Laptop,,,,,,Allocated",
		"LAP-0045,SN126,,,,,,,",
	}, "\n")

	rows, rowErrs, err := ParseAssetsCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseAssetsCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if len(rowErrs) != 2 {
		t.Fatalf("got %d row errors, want 2", len(rowErrs))
	}

	a := rows[0].Asset
	if a.AssetID != "LAP-0042" || a.SerialNumber != "SN123" {
		t.Errorf("unexpected first asset: %+v", a)
	}
	if a.RAMGB == nil || *a.RAMGB != 16 {
		t.Errorf("ram_gb not parsed: %+v", a.RAMGB)
	}
	if a.StorageSizeGB == nil || *a.StorageSizeGB != 512 {
		t.Errorf("storage_size_gb not parsed: %+v", a.StorageSizeGB)
	}
	if a.PurchaseDate == nil || a.PurchaseDate.Format("2006-01-02") != "2022-11-03" {
		t.Errorf("purchase_date not parsed: %+v", a.PurchaseDate)
	}

	for _, re := range rowErrs {
		if re.Line == 4 && !strings.Contains(re.Message, "Allocated") {
			t.Errorf("line 4 should reject Allocated status, got %q", re.Message)
		}
	}
	if rows[1].Asset.Status != "" {
		t.Errorf("blank status should pass through empty for the service default")
	}
}

func TestParseAssetsCSVRejectsAllocated(t *testing.T) {
	in := "asset_id,serial_number,status\nLAP-1,SN1," + models.AssetStatusAllocated + "\n"
	rows, rowErrs, err := ParseAssetsCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseAssetsCSV: %v", err)
	}
	if len(rows) != 0 || len(rowErrs) != 1 {
		t.Fatalf("rows=%d errs=%d, want 0 and 1", len(rows), len(rowErrs))
	}
}
