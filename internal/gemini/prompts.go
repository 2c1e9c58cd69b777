package gemini

import "fmt"

// Prompt templates. The studio targets a Korean readership, so the
// instructions and fallback copy are written in Korean; visual prompts
// for the image model stay in English because the image model follows
// English descriptions more reliably.

const (
	articlePromptFmt = "다음 키워드/아이디어를 바탕으로 고품질의 기사나 이야기를 한국어로 작성해 주세요: %s. 독자의 흥미를 끌 수 있도록 전문적이고 매력적인 어조를 사용하세요."

	summaryPromptFmt = "다음 텍스트를 소셜 미디어 게시물이나 카드뉴스 형식에 적합하도록 한국어로 핵심만 요약해 주세요: %s"

	webPromptFmt = "이 내용을 바탕으로 한국어로 된 깔끔하고 반응형인 단일 페이지 HTML 레이아웃(Tailwind CSS 사용)을 생성해 주세요: %s. <div> 태그 안에 직접 렌더링할 수 있는 HTML 코드만 반환하세요. <html>이나 <body> 태그는 포함하지 마세요. 인라인 스타일보다는 Tailwind 클래스를 적극 활용하세요."

	imagePromptFmt = "A high-quality cinematic illustration for: %s. Artistic and professional style, 4k resolution, highly detailed."

	refinePromptFmt = "원본 %s: %s\n\n사용자 요청: %s\n\n위 요청에 맞춰 원본을 수정해 주세요. 수정된 내용만 반환해 주세요."

	scenePlanPromptFmt = "다음 주제에 대해 %d개의 핵심 장면으로 구성된 영상 스토리보드를 기획해 주세요: %s. 각 장면은 이미지 생성 모델을 위한 상세한 영어 묘사(visualPrompt)와 영상 하단에 들어갈 짧은 한국어 자막(caption)을 포함해야 합니다."
)

// Fallback values returned when the model answers but produces nothing
// usable. These are successes from the orchestrator's point of view.
const (
	fallbackArticle = "텍스트 생성에 실패했습니다."
	fallbackSummary = "요약 생성에 실패했습니다."
	fallbackWeb     = "<div>웹 미리보기 생성에 실패했습니다.</div>"
)

// refineLabels names the content kind inside the refinement prompt.
var refineLabels = map[string]string{
	"text":    "기사",
	"summary": "요약본",
	"web":     "웹 HTML 코드",
}

func articlePrompt(topic string) string { return fmt.Sprintf(articlePromptFmt, topic) }

func summaryPrompt(text string) string { return fmt.Sprintf(summaryPromptFmt, text) }

func webPrompt(text string) string { return fmt.Sprintf(webPromptFmt, text) }

func imagePrompt(visual string) string { return fmt.Sprintf(imagePromptFmt, visual) }

func refinePrompt(kind, original, instruction string) string {
	label, ok := refineLabels[kind]
	if !ok {
		label = refineLabels["text"]
	}
	return fmt.Sprintf(refinePromptFmt, label, original, instruction)
}

func scenePlanPrompt(topic string, scenes int) string {
	return fmt.Sprintf(scenePlanPromptFmt, scenes, topic)
}
