package xlsxreport

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestBuildLaysOutGroups(t *testing.T) {
	groups := []EmployeeGroup{
		{
			Name:     "Alice Smith",
			EmpCode:  "EMP-0001",
			Score:    91.666,
			Coverage: 100,
			Skills: []SkillLine{
				{MasterSkill: "Backend", SubSkill: "Go", Experience: 48, Proficiency: 5, Certification: "Certified"},
				{MasterSkill: "Backend", SubSkill: "PostgreSQL", Experience: 36, Proficiency: 4, Certification: "Non-Certified"},
			},
		},
		{
			Name:     "Bob Jones",
			EmpCode:  "EMP-0002",
			Score:    55.5,
			Coverage: 50,
			Skills: []SkillLine{
				{MasterSkill: "Backend", SubSkill: "Go", Experience: 12, Proficiency: 3, Certification: "Non-Certified"},
			},
		},
	}

	data, err := Build(groups)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected workbook bytes")
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	for i, want := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		got, err := f.GetCellValue(sheetName, cell)
		if err != nil {
			t.Fatalf("GetCellValue %s: %v", cell, err)
		}
		if got != want {
			t.Fatalf("header %s = %q, want %q", cell, got, want)
		}
	}

	// First group: employee cells on the first row only.
	if got, _ := f.GetCellValue(sheetName, "A2"); got != "Alice Smith" {
		t.Fatalf("A2 = %q, want Alice Smith", got)
	}
	if got, _ := f.GetCellValue(sheetName, "C2"); got != "91.67" {
		t.Fatalf("C2 = %q, want 91.67", got)
	}
	if got, _ := f.GetCellValue(sheetName, "A3"); got != "" {
		t.Fatalf("A3 = %q, want empty continuation cell", got)
	}
	if got, _ := f.GetCellValue(sheetName, "E2"); got != "Backend" {
		t.Fatalf("E2 = %q, want Backend on the first row of its run", got)
	}
	if got, _ := f.GetCellValue(sheetName, "E3"); got != "" {
		t.Fatalf("E3 = %q, want blank master-skill continuation cell", got)
	}
	if got, _ := f.GetCellValue(sheetName, "F3"); got != "PostgreSQL" {
		t.Fatalf("F3 = %q, want PostgreSQL", got)
	}

	// Row 4 is the blank separator, second group starts on row 5.
	if got, _ := f.GetCellValue(sheetName, "A4"); got != "" {
		t.Fatalf("A4 = %q, want blank separator row", got)
	}
	if got, _ := f.GetCellValue(sheetName, "A5"); got != "Bob Jones" {
		t.Fatalf("A5 = %q, want Bob Jones", got)
	}
	if got, _ := f.GetCellValue(sheetName, "B5"); got != "EMP-0002" {
		t.Fatalf("B5 = %q, want EMP-0002", got)
	}
}

func TestBuildGroupsSkillsByMasterSkill(t *testing.T) {
	data, err := Build([]EmployeeGroup{{
		Name:    "Dana Reyes",
		EmpCode: "EMP-0004",
		Score:   80,
		Skills: []SkillLine{
			{MasterSkill: "Cloud", SubSkill: "AWS", Experience: 2, Proficiency: 3, Certification: "Certified"},
			{MasterSkill: "Backend", SubSkill: "Go", Experience: 4, Proficiency: 5, Certification: "Non-Certified"},
			{MasterSkill: "Cloud", SubSkill: "GCP", Experience: 1, Proficiency: 2, Certification: "Non-Certified"},
		},
	}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	wantRows := []struct{ master, sub string }{
		{"Backend", "Go"},
		{"Cloud", "AWS"},
		{"", "GCP"},
	}
	for i, want := range wantRows {
		row := i + 2
		master, _ := f.GetCellValue(sheetName, fmt.Sprintf("E%d", row))
		sub, _ := f.GetCellValue(sheetName, fmt.Sprintf("F%d", row))
		if master != want.master || sub != want.sub {
			t.Errorf("row %d = %q/%q, want %q/%q", row, master, sub, want.master, want.sub)
		}
	}
}

func TestBuildEmployeeWithoutSkillRows(t *testing.T) {
	data, err := Build([]EmployeeGroup{{Name: "Carol White", EmpCode: "EMP-0003", Score: 10, Coverage: 25}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	if got, _ := f.GetCellValue(sheetName, "A2"); got != "Carol White" {
		t.Fatalf("A2 = %q, want Carol White", got)
	}
	if got, _ := f.GetCellValue(sheetName, "E2"); got != "" {
		t.Fatalf("E2 = %q, want empty skill cell", got)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{91.666, 91.67},
		{50, 50},
		{0.004, 0},
	}
	for _, c := range cases {
		if got := round2(c.in); got != c.want {
			t.Fatalf("round2(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
