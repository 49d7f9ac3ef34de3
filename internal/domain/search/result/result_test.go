package result

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTotal(t *testing.T) {
	assert.Equal(t, Total{Value: 10001, IsPrecise: false}, NewTotal(10001, "gte"))
	assert.Equal(t, Total{Value: 1, IsPrecise: true}, NewTotal(1, "eq"))
	assert.Equal(t, Total{Value: 3, IsPrecise: true}, PreciseTotal(3))
}

func TestSearchResult_MarshalJSON(t *testing.T) {
	r := SearchResult{
		Page:       Page{Total: NewTotal(2, "eq")},
		Counts:     map[string]int{"technical_type-video": 2},
		CountsKey:  KeyDrilldowns,
		DidYouMean: &DidYouMean{Original: "wiskunde", Suggestion: "wiskunde"},
	}
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"results_total": {"value": 2, "is_precise": true},
		"results": [],
		"drilldowns": {"technical_type-video": 2},
		"did_you_mean": {"original": "wiskunde", "suggestion": "wiskunde"}
	}`, string(data))
}

func TestSearchResult_MarshalJSON_Defaults(t *testing.T) {
	data, err := json.Marshal(SearchResult{})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"results_total": {"value": 0, "is_precise": false},
		"results": [],
		"aggregations": {},
		"did_you_mean": {}
	}`, string(data))
}

func TestSearchResult_Stripped(t *testing.T) {
	r := SearchResult{
		Page:      Page{Total: NewTotal(10000, "gte")},
		Counts:    map[string]int{"language.keyword-nl": 8},
		CountsKey: KeyAggregations,
	}
	s := r.Stripped()
	assert.Equal(t, PreciseTotal(0), s.Total)
	assert.Empty(t, s.Results)
	assert.Equal(t, r.Counts, s.Counts)
	assert.Equal(t, 10000, r.Total.Value, "original must stay untouched")
}

func TestStats_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Stats{Total: 7})
	require.NoError(t, err)
	assert.Equal(t, "7", string(data))

	data, err = json.Marshal(Stats{Total: 7, ByEntity: map[string]int{"products": 5, "projects": 2}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"products": 5, "projects": 2, "documents": 7}`, string(data))
}
