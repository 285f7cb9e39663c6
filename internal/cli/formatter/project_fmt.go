package formatter

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/shutterflow/internal/compliance"
	"github.com/alexanderramin/shutterflow/internal/domain"
	"github.com/alexanderramin/shutterflow/internal/service"
	"github.com/alexanderramin/shutterflow/internal/store"
)

// ProjectRow is one line of the project list.
type ProjectRow struct {
	Project  *domain.Project
	Summary  compliance.Summary
	Favorite bool
}

// FormatProjectList renders the project list inside a bordered box.
func FormatProjectList(rows []ProjectRow) string {
	if len(rows) == 0 {
		return Dim("No projects yet. Create one with: shutterflow project add --name NAME") + "\n"
	}
	headers := []string{"", "ID", "NAME", "CITY", "BUILDINGS", "SHUTTERS", "COMPLIANCE"}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		rate := Dim("--")
		if r.Summary.Total > 0 {
			rate = StatusStyle(r.Summary.Worst()).Render(Rate(r.Summary.Rate()))
		}
		out = append(out, []string{
			Star(r.Favorite),
			TruncID(r.Project.ID),
			Bold(r.Project.Name),
			r.Project.City,
			strconv.Itoa(len(r.Project.Buildings)),
			strconv.Itoa(r.Summary.Total),
			rate,
		})
	}
	return RenderBox("Projects", RenderTable(headers, out))
}

func summaryBadge(s compliance.Summary) string {
	if s.Total == 0 {
		return Dim("no shutters")
	}
	return fmt.Sprintf("%s %s %s  %s",
		StatusStyle(compliance.StatusCompliant).Render(strconv.Itoa(s.Compliant)),
		StatusStyle(compliance.StatusAcceptable).Render(strconv.Itoa(s.Acceptable)),
		StatusStyle(compliance.StatusNonCompliant).Render(strconv.Itoa(s.NonCompliant)),
		StatusStyle(s.Worst()).Render(Rate(s.Rate())),
	)
}

// FormatProjectStatus renders the project header and its building, zone and
// shutter tree with compliance badges.
func FormatProjectStatus(st *service.ProjectStatus) string {
	p := st.Project
	meta := KeyValues([][2]string{
		{"ID", p.ID},
		{"City", domain.CoalesceStr(p.City, Dim("--"))},
		{"Start", Date(p.StartDate)},
		{"End", Date(p.EndDate)},
		{"Shutters", strconv.Itoa(st.Summary.Total)},
		{"Compliance", summaryBadge(st.Summary)},
	})

	var items []TreeItem
	for bi, b := range st.Buildings {
		items = append(items, TreeItem{
			Title:  Bold(b.Building.Name) + " " + Dim(TruncID(b.Building.ID)),
			Level:  1,
			IsLast: bi == len(st.Buildings)-1,
			Badge:  summaryBadge(b.Summary),
		})
		for zi, z := range b.Zones {
			items = append(items, TreeItem{
				Title:  z.Zone.Name + " " + Dim(TruncID(z.Zone.ID)),
				Level:  2,
				IsLast: zi == len(b.Zones)-1,
				Badge:  summaryBadge(z.Summary),
			})
			for si, sh := range z.Zone.Shutters {
				res := compliance.Calculate(sh.ReferenceFlow, sh.MeasuredFlow)
				items = append(items, TreeItem{
					Title:  fmt.Sprintf("%s %s %s", sh.Name, Dim(string(sh.Type)), Dim(TruncID(sh.ID))),
					Level:  3,
					IsLast: si == len(z.Zone.Shutters)-1,
					Badge:  Deviation(res) + "  " + StatusBadge(res),
				})
			}
		}
	}

	body := meta
	if len(items) > 0 {
		body += "\n" + RenderTree(items)
	}
	return RenderBox(p.Name, body)
}

// FormatShutter renders one shutter with its ancestry and evaluation.
func FormatShutter(ref store.Ref) string {
	sh := ref.Shutter
	res := compliance.Calculate(sh.ReferenceFlow, sh.MeasuredFlow)
	pairs := [][2]string{
		{"ID", sh.ID},
		{"Location", fmt.Sprintf("%s › %s › %s", ref.Project.Name, ref.Building.Name, ref.Zone.Name)},
		{"Type", string(sh.Type)},
		{"Reference", Flow(sh.ReferenceFlow)},
		{"Measured", Flow(sh.MeasuredFlow)},
		{"Deviation", Deviation(res)},
		{"Status", StatusBadge(res)},
	}
	if sh.Remarks != "" {
		pairs = append(pairs, [2]string{"Remarks", sh.Remarks})
	}
	return RenderBox(sh.Name, KeyValues(pairs))
}

// FormatSearchResults renders search hits as a table.
func FormatSearchResults(results []store.SearchResult) string {
	if len(results) == 0 {
		return Dim("No matching shutters.") + "\n"
	}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		res := compliance.Calculate(r.Shutter.ReferenceFlow, r.Shutter.MeasuredFlow)
		rows = append(rows, []string{
			TruncID(r.Shutter.ID),
			Bold(r.Shutter.Name),
			r.Zone.Name,
			r.Building.Name,
			r.Project.Name,
			Deviation(res),
			StatusBadge(res),
		})
	}
	return RenderTable([]string{"ID", "SHUTTER", "ZONE", "BUILDING", "PROJECT", "DEVIATION", "STATUS"}, rows)
}
