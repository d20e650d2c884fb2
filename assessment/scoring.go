package assessment

import (
	"math"
	"sort"
	"strings"
)

// OverallScore combines the four pillar scores with the fixed pillar
// weights, rounded to one decimal.
func OverallScore(content, technical, authority, measurement float64) float64 {
	raw := content*weightContent + technical*weightTechnical +
		authority*weightAuthority + measurement*weightMeasurement
	return math.Round(raw*10) / 10
}

// Maturity tiers, highest floor first. Boundaries are closed on the lower
// end: a score of exactly 2.5 is Developing.
var maturityTiers = []struct {
	floor       float64
	level       string
	description string
}{
	{4.5, "Leader", "Your site is exceptionally well positioned for AI answer engines. Stay ahead by monitoring how assistants represent you and defending that position."},
	{3.5, "Advanced", "Your site has strong AEO fundamentals in place. Targeted improvements to the remaining gaps will push you into the leader tier."},
	{2.5, "Developing", "Your site has a workable foundation but meaningful gaps. Addressing the top priorities below will noticeably change how AI systems use your content."},
	{1.5, "Emerging", "Your site has begun accumulating AEO signals, but most of the groundwork is still ahead. Focus on content structure and technical basics first."},
	{0, "Foundation", "Your site is largely invisible to AI answer engines today. The good news: the foundational fixes below deliver the fastest gains."},
}

// MaturityFor maps an overall score to its qualitative level and
// description. Total over [0,5] with no gaps.
func MaturityFor(score float64) (level, description string) {
	for _, tier := range maturityTiers {
		if score >= tier.floor {
			return tier.level, tier.description
		}
	}
	last := maturityTiers[len(maturityTiers)-1]
	return last.level, last.description
}

// Canned per-pillar summaries keyed by score band.
var summaryBands = []struct {
	floor    float64
	sentence string
}{
	{4, "Excellent coverage; this pillar is a competitive strength."},
	{3, "Solid coverage with a few gaps worth closing."},
	{2, "Partial coverage; several impactful checks are not yet passing."},
	{0, "Minimal coverage; this pillar needs foundational work."},
}

// PillarSummaries builds the per-pillar coverage snapshot.
func PillarSummaries(analyses map[string]PillarAnalysis) []PillarSummary {
	order := []string{PillarContent, PillarTechnical, PillarAuthority, PillarMeasurement}
	summaries := make([]PillarSummary, 0, len(order))

	for _, pillar := range order {
		analysis, ok := analyses[pillar]
		if !ok {
			continue
		}
		count := 0
		for _, s := range analysis.Strengths {
			if s.Category == pillar {
				count++
			}
		}
		sentence := summaryBands[len(summaryBands)-1].sentence
		for _, band := range summaryBands {
			if analysis.Score >= band.floor {
				sentence = band.sentence
				break
			}
		}
		summaries = append(summaries, PillarSummary{
			Pillar:          pillar,
			Score:           analysis.Score,
			StrengthCount:   count,
			CoveragePercent: int(math.Round(analysis.Score / maxPillarScore * 100)),
			Summary:         sentence,
		})
	}
	return summaries
}

// TopPriorities ranks all recommendations by category weight times a
// keyword boost and returns the top three, with Priority set to the
// 1-based rank.
func TopPriorities(analyses map[string]PillarAnalysis) []Recommendation {
	type ranked struct {
		rec    Recommendation
		weight float64
		order  int
	}

	var all []ranked
	idx := 0
	for _, pillar := range []string{PillarContent, PillarTechnical, PillarAuthority, PillarMeasurement} {
		analysis, ok := analyses[pillar]
		if !ok {
			continue
		}
		for _, rec := range analysis.Recommendations {
			weight := priorityCategoryWeight[rec.Category]
			if hasHighPriorityKeyword(rec.Title) {
				weight *= priorityKeywordBoost
			}
			all = append(all, ranked{rec: rec, weight: weight, order: idx})
			idx++
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].weight != all[j].weight {
			return all[i].weight > all[j].weight
		}
		return all[i].order < all[j].order
	})

	top := make([]Recommendation, 0, 3)
	for i, r := range all {
		if i == 3 {
			break
		}
		rec := r.rec
		rec.Priority = i + 1
		top = append(top, rec)
	}
	return top
}

func hasHighPriorityKeyword(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range highPriorityKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
