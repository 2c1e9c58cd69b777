package gemini

import (
	"context"
	"encoding/json"
	"strings"

	genai "google.golang.org/genai"

	"github.com/springlab/osmu/internal/artifact"
)

// sceneSchema constrains the planner response to an array of
// {visualPrompt, caption} objects so the reply is machine-parseable.
var sceneSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"visualPrompt": {
				Type:        genai.TypeString,
				Description: "Detailed visual description for an image generator.",
			},
			"caption": {
				Type:        genai.TypeString,
				Description: "Korean caption for this scene.",
			},
		},
		Required: []string{"visualPrompt", "caption"},
	},
}

// GenerateScenePlan asks the text model for an ordered storyboard plan.
// Malformed or non-array output resolves to an empty plan, nil error;
// only transport failures surface as errors.
func (c *Client) GenerateScenePlan(ctx context.Context, topic string) ([]artifact.Scene, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   sceneSchema,
	}
	prompt := scenePlanPrompt(topic, c.sceneCount)
	resp, err := c.generate(ctx, "scene_plan", c.textModel, prompt, cfg)
	if err != nil {
		return nil, err
	}

	raw := textOr(resp, "[]")
	scenes := decodeScenePlan([]byte(raw))
	if len(scenes) == 0 {
		c.logger.Warn("scene plan unusable, storyboard will be empty", "raw_len", len(raw))
	}
	return scenes, nil
}

// decodeScenePlan parses planner JSON into scenes. Anything that is not
// a well-formed array of complete scene objects decodes to nil.
func decodeScenePlan(raw []byte) []artifact.Scene {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return nil
	}

	var scenes []artifact.Scene
	if err := json.Unmarshal([]byte(trimmed), &scenes); err != nil {
		return nil
	}

	// Drop entries missing either field; a scene without a visual
	// prompt cannot be rendered and a scene without a caption cannot
	// be displayed.
	out := scenes[:0]
	for _, s := range scenes {
		if s.VisualPrompt == "" || s.Caption == "" {
			continue
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
