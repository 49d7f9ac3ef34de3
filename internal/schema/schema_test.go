package schema

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surfedu/searchclient/internal/domain"
)

const wordList = "analyzers/F225499463"

func nested(t *testing.T, m map[string]any, path ...string) map[string]any {
	t.Helper()
	cur := m
	for _, p := range path {
		next, ok := cur[p].(map[string]any)
		require.Truef(t, ok, "missing %q in path %v", p, path)
		cur = next
	}
	return cur
}

func TestBuildProducts_Decompound(t *testing.T) {
	s, err := BuildProducts(domain.DocumentTypeLearningMaterial, wordList)
	require.NoError(t, err)

	assert.Contains(t, s.Analyzers(), AnalyzerDecompound)
	decompound := nested(t, s.Filters(), FilterDecompound)
	assert.Equal(t, "dictionary_decompounder", decompound["type"])
	assert.Equal(t, wordList, decompound["word_list_path"])
	assert.Equal(t, true, decompound["updateable"])

	nl := nested(t, s.Properties(), "texts", "properties", "nl", "properties", "titles", "properties", "text", "fields", "analyzed")
	assert.Equal(t, AnalyzerDutch, nl["analyzer"])
	assert.Equal(t, AnalyzerDecompound, nl["search_analyzer"])
}

func TestBuildProducts_NoDecompound(t *testing.T) {
	s, err := BuildProducts(domain.DocumentTypeLearningMaterial, "")
	require.NoError(t, err)

	assert.NotContains(t, s.Analyzers(), AnalyzerDecompound)
	assert.NotContains(t, s.Filters(), FilterDecompound)

	nl := nested(t, s.Properties(), "texts", "properties", "nl", "properties", "contents", "properties", "text", "fields", "analyzed")
	assert.Equal(t, AnalyzerDutch, nl["search_analyzer"])
}

func TestBuildProducts_LanguageAnalyzers(t *testing.T) {
	s, err := BuildProducts(domain.DocumentTypeResearchProduct, "")
	require.NoError(t, err)

	texts := nested(t, s.Properties(), "texts", "properties")
	for lang, want := range map[string]string{"nl": AnalyzerDutch, "en": AnalyzerEnglish, "unk": AnalyzerStandard} {
		groups := nested(t, texts, lang, "properties")
		assert.Len(t, groups, len(TextGroups), lang)
		for _, group := range TextGroups {
			fields := nested(t, groups, group, "properties", "text", "fields")
			assert.Equal(t, want, nested(t, fields, "analyzed")["analyzer"], "%s.%s", lang, group)
			assert.Equal(t, AnalyzerFolding, nested(t, fields, "folded")["analyzer"])
		}
	}
}

func TestBuildProducts_DocumentTypeDispatch(t *testing.T) {
	lm, err := BuildProducts(domain.DocumentTypeLearningMaterial, "")
	require.NoError(t, err)
	assert.Contains(t, lm.Properties(), "lom_educational_levels")
	assert.Contains(t, lm.Properties(), "disciplines_normalized")
	assert.NotContains(t, lm.Properties(), "research_themes")

	rp, err := BuildProducts(domain.DocumentTypeResearchProduct, "")
	require.NoError(t, err)
	assert.Contains(t, rp.Properties(), "research_themes")
	assert.NotContains(t, rp.Properties(), "lom_educational_levels")

	for _, s := range []Schema{lm, rp} {
		for _, required := range []string{"srn", "external_id", "publisher_date", "published_at", "modified_at", CompletionField, PhraseSuggestField} {
			assert.Contains(t, s.Properties(), required)
		}
	}
}

func TestBuildProducts_UnknownDocumentType(t *testing.T) {
	_, err := BuildProducts("dataset", "")
	assert.True(t, errors.Is(err, domain.ErrUnknownDocumentType))
}

func TestSchema_JSONDeterministic(t *testing.T) {
	a, err := BuildProducts(domain.DocumentTypeLearningMaterial, wordList)
	require.NoError(t, err)
	b, err := BuildProducts(domain.DocumentTypeLearningMaterial, wordList)
	require.NoError(t, err)

	first, err := a.JSON()
	require.NoError(t, err)
	second, err := b.JSON()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(first, &decoded))
	assert.Contains(t, decoded, "settings")
	assert.Contains(t, decoded, "mappings")
}

func TestBuild_Dispatch(t *testing.T) {
	tests := []struct {
		entity domain.Entity
		field  string
	}{
		{domain.EntityProducts, "texts"},
		{domain.EntityProjects, "project_status"},
		{domain.EntityPersons, "job_title"},
		{domain.EntityOrganizations, "name"},
	}
	for _, tt := range tests {
		t.Run(string(tt.entity), func(t *testing.T) {
			s, err := Build(tt.entity, domain.DocumentTypeResearchProduct, "")
			require.NoError(t, err)
			assert.Contains(t, s.Properties(), tt.field)
			assert.Contains(t, s.Properties(), CompletionField)
		})
	}

	_, err := Build("things", domain.DocumentTypeResearchProduct, "")
	assert.True(t, errors.Is(err, domain.ErrUnknownEntity))
}

func TestBuildProjects_ProviderFilterSearch(t *testing.T) {
	fields := nested(t, BuildProjects().Properties(), "provider", "fields")
	assert.Contains(t, fields, "filter_search")
	assert.Empty(t, BuildProjects().Filters())
}

func TestBuildLegacyLanguage(t *testing.T) {
	s, err := BuildLegacyLanguage("nl", domain.DocumentTypeLearningMaterial, wordList)
	require.NoError(t, err)
	analyzed := nested(t, s.Properties(), "title", "fields", "analyzed")
	assert.Equal(t, AnalyzerDutch, analyzed["analyzer"])
	assert.Equal(t, AnalyzerDecompound, analyzed["search_analyzer"])
	assert.Contains(t, s.Properties(), "learning_material_disciplines")

	s, err = BuildLegacyLanguage("en", domain.DocumentTypeResearchProduct, wordList)
	require.NoError(t, err)
	analyzed = nested(t, s.Properties(), "text", "fields", "analyzed")
	assert.Equal(t, AnalyzerEnglish, analyzed["analyzer"])
	assert.Equal(t, AnalyzerEnglish, analyzed["search_analyzer"])
	assert.Contains(t, s.Properties(), "extension")

	_, err = BuildLegacyLanguage("de", domain.DocumentTypeResearchProduct, "")
	assert.Error(t, err)
	_, err = BuildLegacyLanguage("nl", "dataset", "")
	assert.True(t, errors.Is(err, domain.ErrUnknownDocumentType))
}

func TestPrepareSuggestCompletion(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"strips digits and punctuation", []string{"hello123", "world!"}, []string{"hello", "world"}},
		{"keeps empty input", []string{"", "test"}, []string{"", "test"}},
		{"no input", nil, []string{}},
		{"drops accents", []string{"résumé", "café"}, []string{"resume", "cafe"}},
		{"mixed scripts", []string{"Hello!", "Привет", "Olá-123", "żółć"}, []string{"Hello", "Privet", "Ola", "zolc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PrepareSuggestCompletion(tt.in...))
		})
	}
}

func TestASCIIFold(t *testing.T) {
	assert.Equal(t, "Strasse", ASCIIFold("Straße"))
	assert.Equal(t, "Ecole", ASCIIFold("École"))
	assert.Equal(t, "naive 2", ASCIIFold("naïve 2"))
}
