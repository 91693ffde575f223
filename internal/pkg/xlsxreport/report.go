// Package xlsxreport renders matching results as an Excel workbook for
// sharing with resourcing teams.
package xlsxreport

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Matches"

// SkillLine is one matched claim row inside an employee group.
type SkillLine struct {
	MasterSkill   string
	SubSkill      string
	Experience    float64
	Proficiency   int
	Certification string
}

// EmployeeGroup is one ranked employee with their matched skills. Groups are
// written in ranking order.
type EmployeeGroup struct {
	Name     string
	EmpCode  string
	Score    float64
	Coverage float64
	Skills   []SkillLine
}

var headers = []string{
	"Employee Name", "Employee ID", "Match Score (%)", "Coverage (%)",
	"Master Skill", "Sub Skill", "Experience (yrs)", "Proficiency", "Certification",
}

// Build renders the workbook. Employee-level cells are written only on the
// group's first row, skills are grouped by master skill with the master-skill
// name written once per run, and employees are separated by one blank row,
// mirroring how the report reads when printed.
func Build(groups []EmployeeGroup) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), sheetName)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return nil, err
	}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%c1", 'A'+len(headers)-1), headerStyle); err != nil {
		return nil, err
	}

	widths := []float64{24, 14, 16, 14, 22, 22, 20, 12, 26}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheetName, col, col, w); err != nil {
			return nil, err
		}
	}

	row := 2
	for gi, g := range groups {
		if gi > 0 {
			row++ // blank separator between employees
		}
		if len(g.Skills) == 0 {
			if err := writeRow(f, row, []any{g.Name, g.EmpCode, round2(g.Score), round2(g.Coverage), "", "", "", "", ""}); err != nil {
				return nil, err
			}
			row++
			continue
		}
		skills := make([]SkillLine, len(g.Skills))
		copy(skills, g.Skills)
		sort.SliceStable(skills, func(i, j int) bool { return skills[i].MasterSkill < skills[j].MasterSkill })

		prevMaster := ""
		for si, s := range skills {
			master := s.MasterSkill
			if si > 0 && master == prevMaster {
				master = ""
			}
			prevMaster = s.MasterSkill

			vals := []any{"", "", "", "", master, s.SubSkill, s.Experience, s.Proficiency, s.Certification}
			if si == 0 {
				vals[0] = g.Name
				vals[1] = g.EmpCode
				vals[2] = round2(g.Score)
				vals[3] = round2(g.Coverage)
			}
			if err := writeRow(f, row, vals); err != nil {
				return nil, err
			}
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, row int, vals []any) error {
	for i, v := range vals {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
