package usecase

import (
	"sort"
	"time"

	"github.com/gemlabs/gem-platform/internal/entity"
)

type SourceCount struct {
	Source     string `json:"source"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type StatusCount struct {
	Status     string `json:"status"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type MonthCount struct {
	Month string `json:"month"` // e.g. "2026-03"
	Count int    `json:"count"`
}

type LeadAnalytics struct {
	TotalLeads          int           `json:"totalLeads"`
	LeadsThisWeek       int           `json:"leadsThisWeek"`
	LeadsThisMonth      int           `json:"leadsThisMonth"`
	ConversionRate      int           `json:"conversionRate"`
	TopSources          []SourceCount `json:"topSources"`
	LeadStatusBreakdown []StatusCount `json:"leadStatusBreakdown"`
	MonthlyTrend        []MonthCount  `json:"monthlyTrend"`
}

// SummarizeLeads rolls an in-memory lead list up into the admin dashboard
// summary. Pure function of its input; recomputed on every fetch.
func SummarizeLeads(leads []entity.Lead, now time.Time) LeadAnalytics {
	total := len(leads)

	// Percentage denominator is floored to 1 so an empty list yields zeros
	// instead of a division by zero.
	denom := total
	if denom == 0 {
		denom = 1
	}

	weekCutoff := now.AddDate(0, 0, -7)
	monthCutoff := now.AddDate(0, 0, -30)

	week, month, hot := 0, 0, 0
	bySource := make(map[string]int)
	byStatus := make(map[string]int)

	for _, lead := range leads {
		if lead.CreatedAt.After(weekCutoff) {
			week++
		}
		if lead.CreatedAt.After(monthCutoff) {
			month++
		}
		if lead.Status == entity.LeadStatusHot {
			hot++
		}
		bySource[lead.Source]++
		byStatus[lead.Status]++
	}

	sources := make([]SourceCount, 0, len(bySource))
	for source, count := range bySource {
		sources = append(sources, SourceCount{
			Source:     source,
			Count:      count,
			Percentage: roundPercent(count, denom),
		})
	}
	sort.Slice(sources, func(i, j int) bool {
		if sources[i].Count != sources[j].Count {
			return sources[i].Count > sources[j].Count
		}
		return sources[i].Source < sources[j].Source
	})

	statuses := make([]StatusCount, 0, len(byStatus))
	for status, count := range byStatus {
		statuses = append(statuses, StatusCount{
			Status:     status,
			Count:      count,
			Percentage: roundPercent(count, denom),
		})
	}
	sort.Slice(statuses, func(i, j int) bool {
		if statuses[i].Count != statuses[j].Count {
			return statuses[i].Count > statuses[j].Count
		}
		return statuses[i].Status < statuses[j].Status
	})

	return LeadAnalytics{
		TotalLeads:          total,
		LeadsThisWeek:       week,
		LeadsThisMonth:      month,
		ConversionRate:      roundPercent(hot, denom),
		TopSources:          sources,
		LeadStatusBreakdown: statuses,
		MonthlyTrend:        monthlyTrend(leads, now),
	}
}

// monthlyTrend builds the trailing six-calendar-month histogram, oldest
// first. Months with zero leads are present with count 0.
func monthlyTrend(leads []entity.Lead, now time.Time) []MonthCount {
	trend := make([]MonthCount, 0, 6)

	for offset := 5; offset >= 0; offset-- {
		// Anchor on the first of the month so AddDate never rolls over at
		// month ends (Jan 31 minus one month must still land in December).
		anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		target := anchor.AddDate(0, -offset, 0)

		count := 0
		for _, lead := range leads {
			if lead.CreatedAt.Year() == target.Year() && lead.CreatedAt.Month() == target.Month() {
				count++
			}
		}

		trend = append(trend, MonthCount{
			Month: target.Format("2006-01"),
			Count: count,
		})
	}

	return trend
}

func roundPercent(count, total int) int {
	return int(float64(count)/float64(total)*100 + 0.5)
}
