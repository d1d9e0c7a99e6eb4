package models

import "sort"

type Stats struct {
	TotalResearched     int     `json:"total_researched"`
	TotalApplied        int     `json:"total_applied"`
	ResponseRate        float64 `json:"response_rate"`
	InterviewsScheduled int     `json:"interviews_scheduled"`
	OffersReceived      int     `json:"offers_received"`
}

// Pipeline is the root object of the record store: every tracked company plus
// cached aggregate counters. The counters are recomputed on each save rather
// than trusted.
type Pipeline struct {
	Companies map[string]*CompanyRecord `json:"companies"`
	Stats     Stats                     `json:"stats"`
}

func NewPipeline() *Pipeline {
	return &Pipeline{Companies: map[string]*CompanyRecord{}}
}

// CompanyKeys returns the storage keys in lexicographic order. This is the
// canonical iteration order everywhere determinism matters.
func (p *Pipeline) CompanyKeys() []string {
	keys := make([]string, 0, len(p.Companies))
	for key := range p.Companies {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (p *Pipeline) RecomputeStats() {
	stats := Stats{}
	totalEmails, responses := 0, 0

	for _, key := range p.CompanyKeys() {
		company := p.Companies[key]
		if company.ResearchCompleted {
			stats.TotalResearched++
		}
		if company.Status.AtLeast(StatusApplied) || company.Status == StatusRejected && company.ApplicationGenerated {
			stats.TotalApplied++
		}
		if len(company.Interviews) > 0 {
			stats.InterviewsScheduled++
		}
		if company.OfferReceived {
			stats.OffersReceived++
		}
		totalEmails += len(company.EmailsSent)
		for _, email := range company.EmailsSent {
			if email.ResponseReceived {
				responses++
			}
		}
	}

	if totalEmails > 0 {
		stats.ResponseRate = float64(responses) / float64(totalEmails)
	}
	p.Stats = stats
}
