// Package gemini implements summarization and token counting with Google Gemini.
package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/taxdoc"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Summarizer implements taxdoc.Summarizer at compile time.
var _ taxdoc.Summarizer = (*Summarizer)(nil)

// Summarizer implements taxdoc.Summarizer using Google Gemini.
type Summarizer struct {
	client *genai.Client
	model  string
}

// NewSummarizer creates a new Summarizer. An empty model selects DefaultModel.
func NewSummarizer(client *genai.Client, model string) *Summarizer {
	if model == "" {
		model = DefaultModel
	}
	return &Summarizer{client: client, model: model}
}

// Summarize returns a structured summary of a legal document.
func (s *Summarizer) Summarize(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", taxdoc.Errorf(taxdoc.EINVALID, "content required")
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(content)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", taxdoc.Errorf(taxdoc.EINTERNAL, "gemini returned nil result")
	}

	return strings.TrimSpace(result.Text()), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.3)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "당신은 세법 전문가입니다. 판례와 해석례를 분석하고 요약합니다. 제공된 문서에 근거해서만 답하십시오.",
			}},
		},
		Temperature:     &temp,
		MaxOutputTokens: 2048,
	}
}

// BuildUserPrompt builds the user prompt asking for a case summary of content.
func BuildUserPrompt(content string) string {
	var sb strings.Builder
	sb.WriteString("다음 문서를 아래 형식으로 요약하십시오.\n\n")
	sb.WriteString("1. 사건 개요\n2. 쟁점\n3. 당사자 주장\n4. 판단 요지\n5. 결론\n\n")
	sb.WriteString("<document>\n")
	sb.WriteString(content)
	sb.WriteString("\n</document>")
	return sb.String()
}
