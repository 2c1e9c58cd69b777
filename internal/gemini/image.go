package gemini

import (
	"context"
	"encoding/base64"

	genai "google.golang.org/genai"
)

// storyboard frames and cover illustrations share a 16:9 frame
const imageAspectRatio = "16:9"

// GenerateImage renders a cinematic illustration for the visual prompt
// and returns it as a data URI. When the model answers without an image
// payload the result is an empty string; callers must treat empty as
// "no image", not as success.
func (c *Client) GenerateImage(ctx context.Context, visualPrompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{AspectRatio: imageAspectRatio},
	}
	resp, err := c.generate(ctx, "image", c.imageModel, imagePrompt(visualPrompt), cfg)
	if err != nil {
		return "", err
	}
	return imageDataURI(resp), nil
}

// imageDataURI extracts the first inline image payload of the first
// candidate as a base64 data URI. Returns "" when no payload exists.
func imageDataURI(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		mime := part.InlineData.MIMEType
		if mime == "" {
			mime = "image/png"
		}
		return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(part.InlineData.Data)
	}
	return ""
}
