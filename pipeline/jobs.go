package pipeline

import (
	"fmt"
	"path/filepath"
)

// DefaultJobs is the built-in run configuration, one job per general
// election. The 2004 and 2009 reports only exist as text dumps; from
// 2014 on the commission publishes XLSX workbooks.
func DefaultJobs(dataDir string) map[int]Job {
	formats := map[int]string{
		2004: FormatText,
		2009: FormatText,
		2014: FormatXLSX,
		2019: FormatXLSX,
		2024: FormatXLSX,
	}
	extensions := map[string]string{
		FormatText: "txt",
		FormatXLSX: "xlsx",
	}
	jobs := make(map[int]Job, len(formats))
	for year, format := range formats {
		ext := extensions[format]
		jobs[year] = Job{
			Year:         year,
			Format:       format,
			SummaryPath:  filepath.Join(dataDir, fmt.Sprintf("%d", year), "constituency-wise-summary."+ext),
			DetailedPath: filepath.Join(dataDir, fmt.Sprintf("%d", year), "constituency-wise-detailed."+ext),
			OutputName:   fmt.Sprintf("general-election-%d.json", year),
		}
	}
	return jobs
}
