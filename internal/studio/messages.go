package studio

// Transcript copy and task labels shown to the user. The studio speaks
// Korean; the presentation layer renders these strings verbatim.
const (
	msgGreeting = "안녕하세요! OSMU 콘텐츠 스튜디오입니다. 원하시는 주제를 말씀해 주시면 봄의 생명력을 담은 기사와 이미지, 카드뉴스, 웹페이지, 그리고 스토리보드 영상을 제작해 드립니다."

	msgArticleDone    = "기사 작성이 완료되었습니다! 이제 싱그러운 이미지와 요약본, 웹페이지를 준비합니다."
	msgAllDone        = "모든 콘텐츠 제작이 마무리되었습니다. 스튜디오에서 확인해 보세요!"
	msgGenerateFailed = "콘텐츠 생성 중 예기치 못한 오류가 발생했습니다."
	msgRefineDone     = "요청하신 대로 콘텐츠를 정성껏 수정했습니다!"
	msgRefineFailed   = "수정 중 오류가 발생했습니다."
)

// Task labels, updated at each phase boundary before the phase's first
// model call so observers always see a label consistent with in-flight
// work.
const (
	taskArticle    = "메인 기사 생성 중..."
	taskDerive     = "멀티 플랫폼 최적화 중..."
	taskStoryboard = "AI 스토리보드 영상 제작 중..."
	taskRefine     = "콘텐츠 수정 중..."
)
