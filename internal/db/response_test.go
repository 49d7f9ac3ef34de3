package db

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchReply = `{
	"took": 3,
	"hits": {
		"total": {"value": 10001, "relation": "gte"},
		"max_score": 2.5,
		"hits": [
			{
				"_index": "publinova-products--20240101",
				"_id": "surfsharekit:abc",
				"_score": 2.5,
				"_source": {"srn": "surfsharekit:abc", "title": "Wiskunde"},
				"highlight": {"texts.nl.contents.text": ["<em>wiskunde</em>"]}
			},
			{"_index": "publinova-products", "_id": "surfsharekit:def", "_score": null, "_source": {}}
		]
	},
	"aggregations": {
		"technical_type": {"buckets": [{"key": "video", "doc_count": 3}]},
		"publisher_year": {
			"doc_count": 5,
			"filtered": {"buckets": [{"key": 2020, "doc_count": 2}]}
		}
	},
	"suggest": {
		"did-you-mean-suggestion": [
			{"text": "wiskunda", "offset": 0, "length": 8, "options": [{"text": "wiskunde", "score": 0.2}]}
		]
	}
}`

func TestDecodeSearchResponse(t *testing.T) {
	resp, err := DecodeSearchResponse(strings.NewReader(searchReply))
	require.NoError(t, err)

	assert.Equal(t, Total{Value: 10001, Relation: "gte"}, resp.Hits.Total)
	require.Len(t, resp.Hits.Hits, 2)

	first := resp.Hits.Hits[0]
	assert.Equal(t, "publinova-products--20240101", first.Index)
	require.NotNil(t, first.Score)
	assert.Equal(t, 2.5, *first.Score)
	assert.Equal(t, "surfsharekit:abc", first.Source["srn"])
	assert.Equal(t, []string{"<em>wiskunde</em>"}, first.Highlight["texts.nl.contents.text"])
	assert.Nil(t, resp.Hits.Hits[1].Score)

	tt := resp.Aggregations["technical_type"].TermBuckets()
	require.Len(t, tt, 1)
	assert.Equal(t, "video", tt[0].KeyString())
	assert.Equal(t, 3, tt[0].DocCount)

	years := resp.Aggregations["publisher_year"].TermBuckets()
	require.Len(t, years, 1)
	assert.Equal(t, "2020", years[0].KeyString())

	suggestions := resp.Suggest["did-you-mean-suggestion"]
	require.Len(t, suggestions, 1)
	assert.Equal(t, "wiskunda", suggestions[0].Text)
	assert.Equal(t, "wiskunde", suggestions[0].Options[0].Text)
}

func TestDecodeSearchResponse_NumericTotal(t *testing.T) {
	resp, err := DecodeSearchResponse(strings.NewReader(`{"hits": {"total": 4, "hits": []}}`))
	require.NoError(t, err)
	assert.Equal(t, Total{Value: 4, Relation: "eq"}, resp.Hits.Total)
}

func TestDecodeSearchResponse_Malformed(t *testing.T) {
	_, err := DecodeSearchResponse(strings.NewReader(`{"hits": `))
	assert.Error(t, err)
}

func TestDecodeCount(t *testing.T) {
	n, err := DecodeCount(strings.NewReader(`{"count": 42, "_shards": {"total": 1}}`))
	require.NoError(t, err)
	assert.Equal(t, 42, n)
}

func TestDecodeError(t *testing.T) {
	err := DecodeError(404, strings.NewReader(
		`{"error": {"type": "index_not_found_exception", "reason": "no such index [x]"}, "status": 404}`))
	var re *ResponseError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 404, re.Status)
	assert.Equal(t, "no such index [x]", re.Reason)
	assert.True(t, errors.Is(err, ErrIndexNotFound))

	err = DecodeError(400, strings.NewReader(
		`{"error": {"type": "resource_already_exists_exception", "reason": "exists"}}`))
	assert.True(t, errors.Is(err, ErrIndexExists))

	err = DecodeError(400, strings.NewReader(`{"error": "no handler found for uri"}`))
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "no handler found for uri", re.Reason)

	err = DecodeError(502, strings.NewReader(`<html>bad gateway</html>`))
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 502, re.Status)
	assert.Contains(t, err.Error(), "502")
}

func TestError_Unwrap(t *testing.T) {
	err := &Error{Op: OpSearch, Err: &ResponseError{Status: 404, Type: "index_not_found_exception"}}
	assert.True(t, errors.Is(err, ErrIndexNotFound))
	assert.True(t, strings.HasPrefix(err.Error(), "SEARCH: "))
}
