package stats

import (
	"sort"
	"strings"

	"jobfinder-engine/internal/domain"
)

// Summary is the analytics block the UI renders under the result table.
type Summary struct {
	TotalJobs       int        `json:"total_jobs"`
	UniqueCompanies int        `json:"unique_companies"`
	RemoteJobs      int        `json:"remote_jobs"`
	UniqueLocations int        `json:"unique_locations"`
	Tags            []TagCount `json:"tags"`
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

func Summarize(rs domain.ResultSet) Summary {
	companies := map[string]bool{}
	locations := map[string]bool{}
	tagCounts := map[string]int{}
	remote := 0

	for _, j := range rs {
		companies[strings.ToLower(j.Company)] = true
		locations[strings.ToLower(j.Location)] = true
		if j.IsRemote {
			remote++
		}
		for _, t := range j.Tags {
			tagCounts[t]++
		}
	}

	tags := make([]TagCount, 0, len(tagCounts))
	for t, n := range tagCounts {
		tags = append(tags, TagCount{Tag: t, Count: n})
	}
	sort.Slice(tags, func(i, k int) bool {
		if tags[i].Count != tags[k].Count {
			return tags[i].Count > tags[k].Count
		}
		return tags[i].Tag < tags[k].Tag
	})

	return Summary{
		TotalJobs:       len(rs),
		UniqueCompanies: len(companies),
		RemoteJobs:      remote,
		UniqueLocations: len(locations),
		Tags:            tags,
	}
}

// FilterByTag keeps listings carrying the given tag; "All" or empty keeps
// everything.
func FilterByTag(rs domain.ResultSet, tag string) domain.ResultSet {
	if tag == "" || strings.EqualFold(tag, "All") {
		return rs
	}
	out := make(domain.ResultSet, 0, len(rs))
	for _, j := range rs {
		for _, t := range j.Tags {
			if strings.EqualFold(t, tag) {
				out = append(out, j)
				break
			}
		}
	}
	return out
}
