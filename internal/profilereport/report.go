package profilereport

import (
	"fmt"
	"io"
	"strings"
)

// Report display constants.
const (
	topProducts     = 5
	bottomProducts  = 3
	ruleWidth       = 60
	maxNameWidth    = 40
	percentMultiple = 100
)

// ProfileResult is one archetype's ranked page.
type ProfileResult struct {
	Profile Profile
	Page    Page
}

// GoodPlus counts products rated good or excellent.
func (r ProfileResult) GoodPlus() int {
	n := 0
	for _, p := range r.Page.Products {
		if p.MatchQuality == "good" || p.MatchQuality == "excellent" {
			n++
		}
	}
	return n
}

// Overlap is the number of shared products in two profiles' top window.
type Overlap struct {
	A, B   string
	Shared int
	Window int
}

// Percent returns Shared as a share of Window.
func (o Overlap) Percent() float64 {
	if o.Window == 0 {
		return 0
	}
	return float64(o.Shared) / float64(o.Window) * percentMultiple
}

// Overlaps compares the first topN products of every pair of results.
func Overlaps(results []ProfileResult, topN int) []Overlap {
	sets := make([]map[int64]struct{}, len(results))
	for i, r := range results {
		sets[i] = make(map[int64]struct{}, topN)
		for j, p := range r.Page.Products {
			if j >= topN {
				break
			}
			sets[i][p.ID] = struct{}{}
		}
	}

	var out []Overlap
	for i := range results {
		for j := i + 1; j < len(results); j++ {
			shared := 0
			for id := range sets[i] {
				if _, ok := sets[j][id]; ok {
					shared++
				}
			}
			out = append(out, Overlap{
				A:      results[i].Profile.Name,
				B:      results[j].Profile.Name,
				Shared: shared,
				Window: topN,
			})
		}
	}
	return out
}

// WriteReport prints per-profile summaries followed by the overlap table.
func WriteReport(w io.Writer, results []ProfileResult, topN int) error {
	rule := strings.Repeat("=", ruleWidth)
	var b strings.Builder

	for _, r := range results {
		p := r.Profile
		fmt.Fprintf(&b, "%s\n  %s\n  aesthetic=%s  palette=%s  vibe=%s  silhouette=%s\n%s\n",
			rule, p.Name, p.Aesthetic, p.Palette, p.Vibe, p.Silhouette, rule)
		fmt.Fprintf(&b, "  Total matches: %d\n", r.Page.Total)
		fmt.Fprintf(&b, "  Good+ matches on page: %d\n", r.GoodPlus())
		fmt.Fprintf(&b, "  Average score: %.1f\n", r.Page.AverageScore)

		products := r.Page.Products
		b.WriteString("\n  Top products:\n")
		for _, prod := range products[:min(topProducts, len(products))] {
			writeProduct(&b, prod, true)
		}
		if len(products) > topProducts {
			b.WriteString("\n  Lowest qualifying:\n")
			for _, prod := range products[max(len(products)-bottomProducts, topProducts):] {
				writeProduct(&b, prod, false)
			}
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%s\n  CROSS-PROFILE OVERLAP (top %d)\n%s\n", rule, topN, rule)
	for _, o := range Overlaps(results, topN) {
		fmt.Fprintf(&b, "  %s vs %s: %d/%d overlap (%.0f%%)\n", o.A, o.B, o.Shared, o.Window, o.Percent())
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeProduct(b *strings.Builder, p Product, withTags bool) {
	name := p.Name
	if r := []rune(name); len(r) > maxNameWidth {
		name = string(r[:maxNameWidth])
	}
	fmt.Fprintf(b, "    %5.1f  [%-9s]  %s - %s\n", p.MatchScore, p.MatchQuality, p.Brand, name)
	if withTags && p.AITags != nil {
		fmt.Fprintf(b, "           aesthetics=%v  palette=%s  vibes=%v\n",
			p.AITags.Aesthetics, p.AITags.Palette, p.AITags.Vibes)
	}
}
