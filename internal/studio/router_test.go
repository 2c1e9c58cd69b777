package studio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/springlab/osmu/internal/artifact"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		hasOpen bool
		want    route
	}{
		{"no open content always generates", "요약을 수정해줘", false, routeGenerate},
		{"plain topic with open content", "가을 단풍 이야기", true, routeGenerate},
		{"modify hint", "문장을 수정해 주세요", true, routeRefine},
		{"change hint", "제목을 바꿔봐", true, routeRefine},
		{"redo hint", "다시 써줘", true, routeRefine},
		{"more hint", "조금 더 길게", true, routeRefine},
		{"please-do hint", "반말로 해줘", true, routeRefine},
		{"summarize hint", "요약이 너무 길어", true, routeRefine},
		{"no hints defaults to new topic", "우주 여행의 역사", true, routeGenerate},
		{"empty string", "", true, routeGenerate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.text, tt.hasOpen))
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	// Same inputs, same route, every time.
	for range 100 {
		assert.Equal(t, routeRefine, classify("더 짧게 수정", true))
		assert.Equal(t, routeGenerate, classify("더 짧게 수정", false))
	}
}

func TestRefineTarget(t *testing.T) {
	tests := []struct {
		name string
		text string
		want target
	}{
		{"summary keyword", "요약을 더 짧게 해줘", targetSummary},
		{"web keyword", "웹 디자인을 바꿔줘", targetWeb},
		{"page keyword", "페이지 색상을 수정해줘", targetWeb},
		{"default to text", "더 재미있게 다시 써줘", targetText},
		{"summary beats web when both present", "웹 페이지 요약을 고쳐줘", targetSummary},
		{"empty", "", targetText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, refineTarget(tt.text))
		})
	}
}

func TestTargetKind(t *testing.T) {
	assert.Equal(t, artifact.KindSummary, targetSummary.kind())
	assert.Equal(t, artifact.KindWeb, targetWeb.kind())
	assert.Equal(t, artifact.KindText, targetText.kind())
}
