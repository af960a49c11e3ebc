package composer_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/quill/internal/composer"
	"github.com/davidbz/quill/internal/domain"
	"github.com/davidbz/quill/internal/mocks"
	"github.com/davidbz/quill/internal/report"
)

func TestCreativityLevel(t *testing.T) {
	tests := []struct {
		level       composer.CreativityLevel
		temperature float64
		topP        float64
	}{
		{level: composer.Focused, temperature: 0.2, topP: 0.8},
		{level: composer.Balanced, temperature: 0.7, topP: 0.9},
		{level: composer.Creative, temperature: 1.0, topP: 0.95},
	}

	for _, tt := range tests {
		t.Run("should map "+tt.level.String(), func(t *testing.T) {
			temperature, topP := tt.level.Settings()
			require.Equal(t, tt.temperature, temperature)
			require.Equal(t, tt.topP, topP)

			config := tt.level.Config()
			require.Equal(t, tt.temperature, config[domain.ConfigTemperature])
			require.Equal(t, tt.topP, config[domain.ConfigTopP])
		})
	}

	t.Run("should parse names and slider positions", func(t *testing.T) {
		for input, want := range map[string]composer.CreativityLevel{
			"Focused": composer.Focused, "0": composer.Focused,
			"balanced": composer.Balanced, "1": composer.Balanced,
			"CREATIVE": composer.Creative, "2": composer.Creative,
		} {
			got, err := composer.ParseCreativity(input)
			require.NoError(t, err, input)
			require.Equal(t, want, got, input)
		}

		_, err := composer.ParseCreativity("wild")
		require.Error(t, err)
	})
}

func TestFullPostPrompt(t *testing.T) {
	t.Run("should include structural fragments", func(t *testing.T) {
		prompt := composer.FullPost{WordCount: 500, Sections: 3, ParagraphsPerSection: 2}.Prompt("X")

		require.Contains(t, prompt, `topic: "X"`)
		require.Contains(t, prompt, "500 words")
		require.Contains(t, prompt, "exactly 3 main sections")
		require.Contains(t, prompt, "around 2 paragraphs")
		require.NotContains(t, prompt, "keywords")
	})

	t.Run("should include keywords and density", func(t *testing.T) {
		post := composer.DefaultFullPost()
		post.Keywords = []string{"remote work", " ", "async"}
		post.KeywordDensity = 1.5

		prompt := post.Prompt("X")

		require.Contains(t, prompt, `these keywords: "remote work, async"`)
		require.Contains(t, prompt, "about 1.5%")
	})

	t.Run("should apply defaults and clamp ranges", func(t *testing.T) {
		got := composer.FullPost{Sections: 12, ParagraphsPerSection: -3, KeywordDensity: 9}.Normalized()

		require.Equal(t, composer.DefaultWordCount, got.WordCount)
		require.Equal(t, 6, got.Sections)
		require.Equal(t, 1, got.ParagraphsPerSection)
		require.InDelta(t, 2.0, got.KeywordDensity, 0.0001)
	})

	t.Run("should default an unset keyword density", func(t *testing.T) {
		post := composer.FullPost{Keywords: []string{"remote work"}}

		require.InDelta(t, composer.DefaultKeywordDensity, post.Normalized().KeywordDensity, 0.0001)
		require.Contains(t, post.Prompt("X"), "about 1%")
		require.NotContains(t, post.Prompt("X"), "about 0%")
	})
}

func TestParseContentType(t *testing.T) {
	for name, want := range map[string]string{
		"titles": "titles", "outline": "outline", "Intro": "intro", "full": "full",
	} {
		got, err := composer.ParseContentType(name)
		require.NoError(t, err)
		require.Equal(t, want, got.Name())
	}

	full, err := composer.ParseContentType("full")
	require.NoError(t, err)
	require.Equal(t, composer.DefaultFullPost(), full)

	_, err = composer.ParseContentType("poem")
	require.Error(t, err)
}

func TestSplitKeywords(t *testing.T) {
	require.Equal(t, []string{"a", "b c"}, composer.SplitKeywords(" a, ,b c ,"))
	require.Nil(t, composer.SplitKeywords(""))
}

func TestComposer_GenerateContent(t *testing.T) {
	ctx := context.Background()

	t.Run("should return provider text for an introduction", func(t *testing.T) {
		generator := mocks.NewMockGenerator(t)
		status := mocks.NewMockCredentialStatus(t)
		status.EXPECT().APIKeyConfigured(mock.Anything).Return(true, nil).Once()
		generator.EXPECT().Generate(mock.Anything,
			mock.MatchedBy(func(prompt string) bool { return strings.Contains(prompt, `"remote work"`) }),
			domain.GenerationConfig{"temperature": 0.7, "topP": 0.9},
		).Return("Intro text.", nil).Once()

		outcome := composer.New(generator, status).
			GenerateContent(ctx, "remote work", composer.Introduction{}, composer.Balanced)

		require.True(t, outcome.OK())
		require.Equal(t, "Intro text.", outcome.Text)
		require.Equal(t, "Intro text.", outcome.Message())
	})

	t.Run("should short-circuit on empty topic", func(t *testing.T) {
		generator := mocks.NewMockGenerator(t)
		status := mocks.NewMockCredentialStatus(t)

		outcome := composer.New(generator, status).
			GenerateContent(ctx, "   ", composer.TitleSuggestions{}, composer.Focused)

		require.ErrorIs(t, outcome.Err, composer.ErrTopicRequired)
		require.Equal(t, composer.TopicRequiredMessage, outcome.Message())
		generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
		status.AssertNotCalled(t, "APIKeyConfigured", mock.Anything)
	})

	t.Run("should short-circuit when key is missing", func(t *testing.T) {
		generator := mocks.NewMockGenerator(t)
		status := mocks.NewMockCredentialStatus(t)
		status.EXPECT().APIKeyConfigured(mock.Anything).Return(false, nil).Once()

		outcome := composer.New(generator, status).
			GenerateContent(ctx, "topic", composer.Outline{}, composer.Creative)

		require.ErrorIs(t, outcome.Err, composer.ErrAPIKeyMissing)
		require.Equal(t, composer.MissingKeyMessage, outcome.Message())
		generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should proceed when status lookup fails", func(t *testing.T) {
		generator := mocks.NewMockGenerator(t)
		status := mocks.NewMockCredentialStatus(t)
		status.EXPECT().APIKeyConfigured(mock.Anything).Return(false, errors.New("timeout")).Once()
		generator.EXPECT().Generate(mock.Anything, mock.Anything, mock.Anything).Return("Titles", nil).Once()

		outcome := composer.New(generator, status).
			GenerateContent(ctx, "topic", composer.TitleSuggestions{}, composer.Focused)

		require.True(t, outcome.OK())
	})

	t.Run("should surface proxy message on failure", func(t *testing.T) {
		generator := mocks.NewMockGenerator(t)
		status := mocks.NewMockCredentialStatus(t)
		status.EXPECT().APIKeyConfigured(mock.Anything).Return(true, nil).Once()
		generator.EXPECT().Generate(mock.Anything, mock.Anything, mock.Anything).
			Return("", domain.NewUpstreamError(http.StatusTooManyRequests, "quota exceeded")).Once()

		outcome := composer.New(generator, status).
			GenerateContent(ctx, "topic", composer.DefaultFullPost(), composer.Balanced)

		require.False(t, outcome.OK())
		require.Empty(t, outcome.Text)
		require.Equal(t, "quota exceeded", outcome.Message())
	})

	t.Run("should fall back to generic message for unclassified failure", func(t *testing.T) {
		generator := mocks.NewMockGenerator(t)
		generator.EXPECT().Generate(mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("boom")).Once()

		outcome := composer.New(generator, nil).
			GenerateContent(ctx, "topic", composer.Introduction{}, composer.Balanced)

		require.Equal(t, composer.GenericErrorMessage, outcome.Message())
	})

	t.Run("should not treat error-like text as failure", func(t *testing.T) {
		generator := mocks.NewMockGenerator(t)
		generator.EXPECT().Generate(mock.Anything, mock.Anything, mock.Anything).
			Return("An error occurred in the plot twist.", nil).Once()

		outcome := composer.New(generator, nil).
			GenerateContent(ctx, "topic", composer.Introduction{}, composer.Balanced)

		require.True(t, outcome.OK())
		require.Equal(t, "An error occurred in the plot twist.", outcome.Text)
	})

	t.Run("should read key status once per composer", func(t *testing.T) {
		generator := mocks.NewMockGenerator(t)
		status := mocks.NewMockCredentialStatus(t)
		status.EXPECT().APIKeyConfigured(mock.Anything).Return(true, nil).Once()
		generator.EXPECT().Generate(mock.Anything, mock.Anything, mock.Anything).Return("text", nil).Times(2)
		generator.EXPECT().Generate(mock.Anything, mock.Anything, jsonConfig()).
			Return(`[{"keyword":"remote","volume":"Low","difficulty":5}]`, nil).Once()

		c := composer.New(generator, status)
		require.True(t, c.GenerateContent(ctx, "one", composer.Introduction{}, composer.Balanced).OK())
		require.True(t, c.GenerateContent(ctx, "two", composer.Outline{}, composer.Balanced).OK())
		_, ok := c.ResearchKeywords(ctx, "remote")
		require.True(t, ok)
	})

	t.Run("should remember a missing key without asking again", func(t *testing.T) {
		generator := mocks.NewMockGenerator(t)
		status := mocks.NewMockCredentialStatus(t)
		status.EXPECT().APIKeyConfigured(mock.Anything).Return(false, nil).Once()

		c := composer.New(generator, status)
		require.ErrorIs(t, c.GenerateContent(ctx, "one", composer.Introduction{}, composer.Balanced).Err,
			composer.ErrAPIKeyMissing)
		require.ErrorIs(t, c.GenerateContent(ctx, "two", composer.Introduction{}, composer.Balanced).Err,
			composer.ErrAPIKeyMissing)
		_, ok := c.SummarizePost(ctx, "# Post")
		require.False(t, ok)
	})

	t.Run("should ask again after a failed status lookup", func(t *testing.T) {
		generator := mocks.NewMockGenerator(t)
		status := mocks.NewMockCredentialStatus(t)
		status.EXPECT().APIKeyConfigured(mock.Anything).Return(false, errors.New("timeout")).Once()
		status.EXPECT().APIKeyConfigured(mock.Anything).Return(false, nil).Once()
		generator.EXPECT().Generate(mock.Anything, mock.Anything, mock.Anything).Return("text", nil).Once()

		c := composer.New(generator, status)
		require.True(t, c.GenerateContent(ctx, "one", composer.Introduction{}, composer.Balanced).OK())
		require.ErrorIs(t, c.GenerateContent(ctx, "two", composer.Introduction{}, composer.Balanced).Err,
			composer.ErrAPIKeyMissing)
	})
}

// memoryEditor is an in-memory editor.Editor.
type memoryEditor struct {
	text     string
	readErr  error
	inserted [][]string
}

func (e *memoryEditor) ReadDocumentText(_ context.Context) (string, error) {
	return e.text, e.readErr
}

func (e *memoryEditor) InsertBlocks(_ context.Context, segments []string) error {
	e.inserted = append(e.inserted, segments)
	return nil
}

func TestComposer_Documents(t *testing.T) {
	ctx := context.Background()

	t.Run("should analyze the text the editor provides", func(t *testing.T) {
		doc := &memoryEditor{text: "# Remote work\n\nWhy it wins."}
		generator := mocks.NewMockGenerator(t)
		generator.EXPECT().Generate(mock.Anything,
			mock.MatchedBy(func(prompt string) bool { return strings.Contains(prompt, "Why it wins.") }),
			jsonConfig(),
		).Return(`{"title":{"score":70,"suggestion":"T","feedback":"F"},`+
			`"metaDescription":{"score":50,"suggestion":"M","feedback":"F"},`+
			`"readability":{"score":80,"feedback":"R"},"keywordDensity":{"score":60,"feedback":"K"}}`, nil).Once()

		seo, ok := composer.New(generator, nil).AnalyzeDocumentSEO(ctx, doc, "remote")

		require.True(t, ok)
		require.Equal(t, 70, seo.Title.Score)
	})

	t.Run("should short-circuit on an empty document", func(t *testing.T) {
		generator := mocks.NewMockGenerator(t)

		summary, ok := composer.New(generator, nil).SummarizeDocument(ctx, &memoryEditor{text: "  \n"})

		require.False(t, ok)
		require.Nil(t, summary)
		generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should signal absence when the document cannot be read", func(t *testing.T) {
		generator := mocks.NewMockGenerator(t)

		summary, ok := composer.New(generator, nil).
			SummarizeDocument(ctx, &memoryEditor{readErr: errors.New("locked")})

		require.False(t, ok)
		require.Nil(t, summary)
	})

	t.Run("should insert accepted text as blocks", func(t *testing.T) {
		doc := &memoryEditor{}

		n, err := composer.Accept(ctx, doc, composer.Outcome{Text: "## Intro\n\nFirst.\n\n\nSecond."})

		require.NoError(t, err)
		require.Equal(t, 3, n)
		require.Equal(t, [][]string{{"## Intro", "First.", "Second."}}, doc.inserted)
	})

	t.Run("should not touch the document for a failed outcome", func(t *testing.T) {
		doc := &memoryEditor{}

		n, err := composer.Accept(ctx, doc, composer.Outcome{Err: composer.ErrAPIKeyMissing})

		require.ErrorIs(t, err, composer.ErrAPIKeyMissing)
		require.Zero(t, n)
		require.Empty(t, doc.inserted)
	})
}

func jsonConfig() domain.GenerationConfig {
	return domain.GenerationConfig{"responseMimeType": "application/json"}
}

func TestComposer_AnalyzeSEO(t *testing.T) {
	ctx := context.Background()

	t.Run("should short-circuit on empty content", func(t *testing.T) {
		generator := mocks.NewMockGenerator(t)
		status := mocks.NewMockCredentialStatus(t)

		seo, ok := composer.New(generator, status).AnalyzeSEO(ctx, "  ", "remote")

		require.False(t, ok)
		require.Nil(t, seo)
		generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
		status.AssertNotCalled(t, "APIKeyConfigured", mock.Anything)
	})

	t.Run("should short-circuit on empty keyword", func(t *testing.T) {
		generator := mocks.NewMockGenerator(t)

		_, ok := composer.New(generator, nil).AnalyzeSEO(ctx, "content", "")

		require.False(t, ok)
	})

	t.Run("should short-circuit when key is missing", func(t *testing.T) {
		generator := mocks.NewMockGenerator(t)
		status := mocks.NewMockCredentialStatus(t)
		status.EXPECT().APIKeyConfigured(mock.Anything).Return(false, nil).Once()

		_, ok := composer.New(generator, status).AnalyzeSEO(ctx, "content", "remote")

		require.False(t, ok)
	})

	t.Run("should parse fenced report", func(t *testing.T) {
		generator := mocks.NewMockGenerator(t)
		generator.EXPECT().Generate(mock.Anything,
			mock.MatchedBy(func(prompt string) bool {
				return strings.Contains(prompt, `keyword "remote"`) && strings.Contains(prompt, "--- My post ---")
			}),
			jsonConfig(),
		).Return("```json\n"+`{"title":{"score":70,"suggestion":"T","feedback":"F"},`+
			`"metaDescription":{"score":50,"suggestion":"M","feedback":"F"},`+
			`"readability":{"score":80,"feedback":"R"},"keywordDensity":{"score":60,"feedback":"K"}}`+"\n```", nil).Once()

		seo, ok := composer.New(generator, nil).AnalyzeSEO(ctx, "My post", "remote")

		require.True(t, ok)
		require.Equal(t, 70, seo.Title.Score)
		require.Equal(t, "M", seo.MetaDescription.Suggestion)
	})

	t.Run("should return absence on proxy failure", func(t *testing.T) {
		generator := mocks.NewMockGenerator(t)
		generator.EXPECT().Generate(mock.Anything, mock.Anything, mock.Anything).
			Return("", domain.NewUpstreamError(http.StatusServiceUnavailable, "")).Once()

		seo, ok := composer.New(generator, nil).AnalyzeSEO(ctx, "My post", "remote")

		require.False(t, ok)
		require.Nil(t, seo)
	})
}

func TestComposer_ResearchKeywords(t *testing.T) {
	ctx := context.Background()

	t.Run("should short-circuit on empty topic", func(t *testing.T) {
		generator := mocks.NewMockGenerator(t)

		list, ok := composer.New(generator, nil).ResearchKeywords(ctx, "")

		require.False(t, ok)
		require.Nil(t, list)
	})

	t.Run("should parse keyword list", func(t *testing.T) {
		generator := mocks.NewMockGenerator(t)
		generator.EXPECT().Generate(mock.Anything, mock.Anything, jsonConfig()).
			Return(`[{"keyword":"remote jobs","volume":"High","difficulty":64}]`, nil).Once()

		list, ok := composer.New(generator, nil).ResearchKeywords(ctx, "remote work")

		require.True(t, ok)
		require.Equal(t, report.KeywordList{{Keyword: "remote jobs", Volume: report.VolumeHigh, Difficulty: 64}}, list)
	})

	t.Run("should return absence for non-JSON text", func(t *testing.T) {
		generator := mocks.NewMockGenerator(t)
		generator.EXPECT().Generate(mock.Anything, mock.Anything, mock.Anything).
			Return("Sorry, I can't help with that.", nil).Once()

		list, ok := composer.New(generator, nil).ResearchKeywords(ctx, "remote work")

		require.False(t, ok)
		require.Nil(t, list)
	})
}

func TestComposer_SummarizePost(t *testing.T) {
	ctx := context.Background()

	t.Run("should short-circuit on empty content", func(t *testing.T) {
		generator := mocks.NewMockGenerator(t)

		summary, ok := composer.New(generator, nil).SummarizePost(ctx, "\n")

		require.False(t, ok)
		require.Nil(t, summary)
	})

	t.Run("should parse summary report", func(t *testing.T) {
		generator := mocks.NewMockGenerator(t)
		generator.EXPECT().Generate(mock.Anything, mock.Anything, jsonConfig()).Return(`{
			"seoScore": 81,
			"keywords": [{"keyword": "remote", "frequency": 7}],
			"readability": {"score": 70, "feedback": "Fine"},
			"structure": {"h1": 1, "h2": 4, "h3": 0},
			"wordCount": 950,
			"tone": "friendly",
			"actionableInsights": ["Shorten intro"]
		}`, nil).Once()

		summary, ok := composer.New(generator, nil).SummarizePost(ctx, "# Post")

		require.True(t, ok)
		require.Equal(t, 81, summary.SEOScore)
		require.Equal(t, 4, summary.Structure.H2)
		require.Equal(t, []string{"Shorten intro"}, summary.ActionableInsights)
	})
}
