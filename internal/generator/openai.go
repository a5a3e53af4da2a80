package generator

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = `You are a BRS document editor.
You receive change requests and the current document content.
You must implement only the requested changes while preserving all existing content unless explicitly asked to modify it.
Each screen must maintain the format:
H2 heading (numbered),
optional description, diagram section,
and extra data section.

You should be expected to think beyond what you were asked to do. Think about every possible function and module, down to the very bottom of what each screen is expected to do, and break it down as much as possible in the document. Every module should contain the inputs, how they are processed, and the outputs, leaving no room for assumption for the developer reading the BRS. It should be extremely specific and assume details it doesn't know, explain how each module processes user input and how it displays output, and include plans for the UI. Make sure to include sample data in a table. All tables must have at least 7 rows. The document is not meant to be minimalist; it is meant to be detailed to the core.

For your reference, this is the current document content:
"%s"

Please update the document following these requirements:
1. Keep the existing document structure
2. Only make changes specified in the overview
3. Maintain all existing content unless explicitly asked to change/remove it
4. Return the complete updated document

Extra important things to follow:
5. Do not prefix any part of the BRS with a heading (for example, do not put a description or title before the text)
6. Diagrams are code blocks containing JSON {"brsDiagram": {}}. Do not modify this blank diagram template.`

const userPromptFormat = `Hello, please make these changes:
%s

If you receive something that looks like a BRS file itself as user input, improve the document and modify it as appropriate.`

// newVersionSchema is the strict response contract: a single required
// newVersion string and nothing else.
var newVersionSchema = json.RawMessage(`{
	"type": "object",
	"required": ["newVersion"],
	"properties": {
		"newVersion": {
			"type": "string",
			"description": "Updated version of the document with changes the user requested implemented"
		}
	},
	"additionalProperties": false
}`)

// OpenAIGenerator implements Generator against the OpenAI chat completions API.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator builds a generator for the given API key and model.
func NewOpenAIGenerator(apiKey, model string) *OpenAIGenerator {
	return &OpenAIGenerator{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// NewVersion asks the model to apply the requested change to the given content
// and returns the full updated document. A single attempt: provider faults,
// contract violations, and parse failures are surfaced, never retried.
func (g *OpenAIGenerator) NewVersion(ctx context.Context, overview, fileContents string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:               g.model,
		ReasoningEffort:     "high",
		MaxCompletionTokens: 10000,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(systemPrompt, fileContents),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(userPromptFormat, overview),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "version_response",
				Schema: newVersionSchema,
				Strict: true,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("generator: chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrNoCompletion
	}

	return parseNewVersion(resp.Choices[0].Message.Content)
}
