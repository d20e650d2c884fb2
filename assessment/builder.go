package assessment

// pillarBuilder accumulates score fragments with their paired strengths
// and recommendations. Fragments are additive; the final score is clamped
// to the 0..5 range.
type pillarBuilder struct {
	category        string
	score           float64
	strengths       []Strength
	recommendations []Recommendation
}

func newPillarBuilder(category string) *pillarBuilder {
	return &pillarBuilder{
		category:        category,
		strengths:       []Strength{},
		recommendations: []Recommendation{},
	}
}

// pass awards points and records the strength that justifies them.
func (b *pillarBuilder) pass(points float64, title, description string) {
	b.score += points
	b.strengths = append(b.strengths, Strength{
		Category:    b.category,
		Title:       title,
		Description: description,
	})
}

// fail records a recommendation for a check that did not pass.
func (b *pillarBuilder) fail(title, description, why string) {
	b.recommendations = append(b.recommendations, Recommendation{
		Category:    b.category,
		Title:       title,
		Description: description,
		Why:         why,
	})
}

func (b *pillarBuilder) build() PillarAnalysis {
	score := b.score
	if score > maxPillarScore {
		score = maxPillarScore
	}
	if score < 0 {
		score = 0
	}
	return PillarAnalysis{
		Score:           score,
		Strengths:       b.strengths,
		Recommendations: b.recommendations,
	}
}
