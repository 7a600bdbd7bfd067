package keywords

// rule maps trigger phrases to the terms they contribute.
type rule struct {
	triggers []string
	terms    []string
}

// matches reports whether any trigger is a substring of lowered text.
func (r rule) matches(lowered string) bool {
	for _, t := range r.triggers {
		if containsFold(lowered, t) {
			return true
		}
	}
	return false
}

// roleRules are cumulative: every matching role adds its terms.
var roleRules = []rule{
	{
		triggers: []string{"researcher"},
		terms:    []string{"research", "study", "analysis", "methodology", "findings", "data", "results"},
	},
	{
		triggers: []string{"student"},
		terms:    []string{"learn", "understand", "concept", "theory", "example", "explanation", "basics"},
	},
	{
		triggers: []string{"analyst"},
		terms:    []string{"trend", "performance", "metric", "comparison", "evaluation", "assessment"},
	},
	{
		triggers: []string{"journalist"},
		terms:    []string{"fact", "news", "report", "event", "timeline", "source", "evidence"},
	},
	{
		triggers: []string{"entrepreneur"},
		terms:    []string{"opportunity", "market", "strategy", "business", "revenue", "growth"},
	},
	{
		triggers: []string{"salesperson"},
		terms:    []string{"customer", "benefit", "value", "feature", "advantage", "solution"},
	},
}

// domainRules stop at the first match.
var domainRules = []rule{
	{
		triggers: []string{"biology", "computational biology"},
		terms:    []string{"protein", "gene", "molecular", "biological", "drug", "compound"},
	},
	{
		triggers: []string{"chemistry"},
		terms:    []string{"reaction", "mechanism", "chemical", "molecular", "synthesis"},
	},
	{
		triggers: []string{"investment", "financial"},
		terms:    []string{"revenue", "profit", "financial", "investment", "market", "growth"},
	},
}

// jobRules stop at the first match; with no match the job text is stemmed.
var jobRules = []rule{
	{
		triggers: []string{"literature review"},
		terms:    []string{"methodology", "approach", "result", "finding", "comparison", "evaluation"},
	},
	{
		triggers: []string{"financial", "revenue"},
		terms:    []string{"revenue", "profit", "financial", "growth", "investment", "performance"},
	},
	{
		triggers: []string{"exam", "study"},
		terms:    []string{"concept", "mechanism", "theory", "principle", "example", "definition"},
	},
}
