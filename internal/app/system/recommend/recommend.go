// Package recommend decides which jobs to suggest to a student.
//
// The shipped heuristic is keyword containment: a job matches when its
// title, description or requirements contain any of the student's skills,
// case-insensitively. It is cheap and explainable and knowingly produces
// false positives (skill "C" matches "Communication"). Swapping in a ranked
// scorer means providing another Matcher.
package recommend

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Limit is how many jobs a recommendation returns.
const Limit = 10

// Fields searched for skill keywords.
var Fields = []string{"title", "description", "requirements"}

// Matcher turns a skill list into a job filter.
type Matcher interface {
	// Filter returns the clause a job must satisfy, or ok=false when the
	// skills give nothing to match on and the caller should fall back to
	// recency.
	Filter(skills []string) (filter bson.M, ok bool)
}

// KeywordMatcher is the containment heuristic described in the package doc.
type KeywordMatcher struct{}

func (KeywordMatcher) Filter(skills []string) (bson.M, bool) {
	var or bson.A
	for _, s := range keywords(skills) {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
		for _, f := range Fields {
			or = append(or, bson.M{f: re})
		}
	}
	if len(or) == 0 {
		return nil, false
	}
	return bson.M{"$or": or}, true
}

// matches applies the Filter heuristic in memory, so the matching rules
// can be checked against a single job without a database.
func matches(skills []string, title, description, requirements string) bool {
	hay := strings.ToLower(title + "\n" + description + "\n" + requirements)
	for _, s := range keywords(skills) {
		if strings.Contains(hay, strings.ToLower(s)) {
			return true
		}
	}
	return false
}

func keywords(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
