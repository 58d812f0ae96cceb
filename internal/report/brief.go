package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sectorlab/sectorpulse/internal/contracts"
	"github.com/sectorlab/sectorpulse/pkg/logger"
)

// Writer renders weekly briefs to markdown files, one per week
type Writer struct {
	dir    string
	logger *logger.Logger
}

// NewWriter creates a brief writer rooted at dir
func NewWriter(dir string, log *logger.Logger) *Writer {
	return &Writer{dir: dir, logger: log}
}

// Write renders the classification and writes it as <week>.md under
// the brief directory. Returns the written path.
func (w *Writer) Write(result *contracts.Classification) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create brief dir: %w", err)
	}

	path := filepath.Join(w.dir, result.Summary.Week+".md")
	if err := os.WriteFile(path, []byte(Render(result)), 0o644); err != nil {
		return "", fmt.Errorf("write brief: %w", err)
	}

	w.logger.WithFields(map[string]interface{}{
		"week": result.Summary.Week,
		"path": path,
	}).Info("Weekly brief written")
	return path, nil
}

// Render produces the markdown brief for one classified week
func Render(result *contracts.Classification) string {
	summary := result.Summary
	agg := result.Aggregate

	var b strings.Builder

	fmt.Fprintf(&b, "# Weekly Sector Structure %s\n\n", summary.Week)
	fmt.Fprintf(&b, "Generated: %s\n\n", summary.GeneratedAt.Format("2006-01-02 15:04 UTC"))

	b.WriteString("## Snapshot\n\n")
	fmt.Fprintf(&b, "- Breadth: %s (%d rising / %d falling)\n", agg.Breadth, agg.Counts.HHHL, agg.Counts.LHLL)
	fmt.Fprintf(&b, "- Tilt: %s\n", agg.Tilt)
	fmt.Fprintf(&b, "- Risk state: %s\n", agg.RiskState)
	fmt.Fprintf(&b, "- Changes vs last week: %s\n\n", changeText(agg.ChangeCount))

	ranked := summary.SortedByRank()

	n := 3
	if len(ranked) < n {
		n = len(ranked)
	}

	b.WriteString("## Leaders and laggards\n\n")
	b.WriteString("Top 3 by 4-week relative return:\n\n")
	writeMovers(&b, ranked[:n])
	b.WriteString("\nBottom 3:\n\n")
	writeMovers(&b, ranked[len(ranked)-n:])

	b.WriteString("\n## Ranking\n\n")
	b.WriteString("| Rank | Ticker | 4W | 5D | Direction | Leadership |\n")
	b.WriteString("|-----:|--------|---:|---:|-----------|------------|\n")
	for _, row := range ranked {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s |\n",
			row.Rank, row.Ticker, pct(row.Return4W), pct(row.Return5D), row.Structure, row.Leadership)
	}

	return b.String()
}

func writeMovers(b *strings.Builder, rows []contracts.SummaryRow) {
	for _, row := range rows {
		fmt.Fprintf(b, "%d. %s %s (%s, %s)\n", row.Rank, row.Ticker, pct(row.Return4W), row.Structure, row.Leadership)
	}
}

func pct(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// changeText renders the week-over-week change count, "n/a" when no
// prior snapshot exists
func changeText(count *int) string {
	if count == nil {
		return "n/a"
	}
	return fmt.Sprintf("%d", *count)
}
