// Package explain turns the engine score explanation of a single hit into a
// per term breakdown.
package explain

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// Node is one entry of the engine explanation tree.
type Node struct {
	Value       float64 `json:"value"`
	Description string  `json:"description"`
	Details     []Node  `json:"details,omitempty"`
}

// Term is the score one query term contributes, split by field.
type Term struct {
	Term      string             `json:"term"`
	Fields    map[string]float64 `json:"fields"`
	Score     float64            `json:"score"`
	Relevancy float64            `json:"relevancy"`
}

// Explanation is the score breakdown of a document for a query.
// Relevancy shares don't need to add up to 1, the recency bonus is
// part of the total score but of no term.
type Explanation struct {
	SRN          string  `json:"srn"`
	TotalScore   float64 `json:"total_score"`
	Terms        []Term  `json:"terms"`
	RecencyBonus float64 `json:"recency_bonus"`
}

var (
	weightPattern  = regexp.MustCompile(`^weight\(([^\s:()]+):(.+?) in \d+\)`)
	synonymPattern = regexp.MustCompile(`^weight\(Synonym\((.+?)\) in \d+\)`)
)

const distancePrefix = "Distance score"

// contribution is a field score of a single term.
type contribution struct {
	term  string
	field string
	score float64
}

// Parse builds the explanation of document srn with score total.
// withRecency tells whether the query carried a recency boost.
func Parse(srn string, total float64, tree Node, withRecency bool) Explanation {
	var (
		contributions []contribution
		distance      *float64
	)
	collect(tree, &contributions, &distance)

	terms := group(contributions, total)

	exp := Explanation{
		SRN:        srn,
		TotalScore: round(total, 5),
		Terms:      terms,
	}
	if withRecency {
		exp.RecencyBonus = recency(total, terms, distance)
	}
	return exp
}

func collect(node Node, out *[]contribution, distance **float64) {
	desc := node.Description
	if m := synonymPattern.FindStringSubmatch(desc); m != nil {
		if c, ok := synonym(m[1], node.Value); ok {
			*out = append(*out, c)
		}
		return
	}
	if m := weightPattern.FindStringSubmatch(desc); m != nil {
		*out = append(*out, contribution{
			term:  strings.Trim(m[2], `"`),
			field: m[1],
			score: node.Value,
		})
		return
	}
	if strings.HasPrefix(desc, distancePrefix) {
		if *distance == nil {
			v := node.Value
			*distance = &v
		}
		return
	}
	for _, child := range node.Details {
		collect(child, out, distance)
	}
}

// synonym attributes a synonym group "f:a f:b" to its first field.
func synonym(body string, score float64) (contribution, bool) {
	var (
		field string
		terms []string
	)
	for _, pair := range strings.Fields(body) {
		f, term, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		if field == "" {
			field = f
		}
		terms = append(terms, term)
	}
	if field == "" {
		return contribution{}, false
	}
	return contribution{term: strings.Join(terms, " "), field: field, score: score}, true
}

func group(contributions []contribution, total float64) []Term {
	var order []string
	byTerm := make(map[string]map[string]float64)
	for _, c := range contributions {
		fields, ok := byTerm[c.term]
		if !ok {
			fields = make(map[string]float64)
			byTerm[c.term] = fields
			order = append(order, c.term)
		}
		fields[c.field] += c.score
	}

	terms := make([]Term, 0, len(order))
	for _, term := range order {
		fields := byTerm[term]
		var sum float64
		rounded := make(map[string]float64, len(fields))
		for field, score := range fields {
			sum += score
			rounded[field] = round(score, 5)
		}
		t := Term{Term: term, Fields: rounded, Score: round(sum, 5)}
		if total != 0 {
			t.Relevancy = round(sum/total, 2)
		}
		terms = append(terms, t)
	}
	sort.SliceStable(terms, func(i, j int) bool { return terms[i].Score > terms[j].Score })
	return terms
}

// recency prefers the distance feature score reported by the engine and falls
// back to the part of the total that no term accounts for.
func recency(total float64, terms []Term, distance *float64) float64 {
	if distance != nil {
		return round(*distance, 5)
	}
	sum := 0.0
	for _, t := range terms {
		sum += t.Score
	}
	return round(math.Max(total-sum, 0), 5)
}

func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
