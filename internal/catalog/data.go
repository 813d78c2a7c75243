package catalog

import "github.com/mi-raf/rule-look/internal/models"

var defaultSchools = []models.School{
	{Id: 1, Name: "Seoul National University", Korean: "서울대학교", Location: "Seoul"},
	{Id: 2, Name: "Yonsei University", Korean: "연세대학교", Location: "Seoul"},
	{Id: 3, Name: "Korea University", Korean: "고려대학교", Location: "Seoul"},
	{Id: 4, Name: "Sungkyunkwan University", Korean: "성균관대학교", Location: "Seoul"},
	{Id: 5, Name: "Hanyang University", Korean: "한양대학교", Location: "Seoul"},
	{Id: 6, Name: "Kyung Hee University", Korean: "경희대학교", Location: "Seoul"},
	{Id: 7, Name: "Chung-Ang University", Korean: "중앙대학교", Location: "Seoul"},
	{Id: 8, Name: "Ewha Womans University", Korean: "이화여자대학교", Location: "Seoul"},
	{Id: 9, Name: "Dongyang Mirae University", Korean: "동양미래대학교", Location: "Seoul"},
	{Id: 10, Name: "Seoul National University of Science and Technology", Korean: "서울과학기술대학교", Location: "Seoul"},
	{Id: 11, Name: "Korea Polytechnics", Korean: "한국폴리텍대학교", Location: "Seoul"},
	{Id: 12, Name: "Konkuk University", Korean: "건국대학교", Location: "Seoul"},
}

var defaultCategories = []CategoryInfo{
	{Category: models.CategoryQuestion, Label: "질문"},
	{Category: models.CategoryInfo, Label: "정보공유"},
	{Category: models.CategoryFree, Label: "자유"},
}

var defaultFAQs = []models.FAQ{
	{
		Id:       1,
		Question: "룰룩(Rule-Look)은 무엇인가요?",
		Answer:   "룰룩은 학교 학칙을 쉽게 찾아보고 궁금한 점을 물어볼 수 있는 학칙 챗봇 서비스입니다. AI 기반 챗봇을 통해 학칙에 대한 질문에 빠르게 답변을 받을 수 있습니다.",
	},
	{
		Id:       2,
		Question: "어떤 학교를 지원하나요?",
		Answer:   "현재 서울대학교, 연세대학교, 고려대학교, 성균관대학교, 한양대학교, 경희대학교, 중앙대학교, 이화여자대학교, 동양미래대학교, 서울과학기술대학교, 한국폴리텍대학교, 건국대학교 등을 지원합니다. 앞으로 더 많은 학교를 추가할 예정입니다.",
	},
	{
		Id:       3,
		Question: "챗봇 사용 방법을 알려주세요.",
		Answer:   "1. 홈 화면에서 \"학칙 챗봇\" 카드를 클릭합니다.\n2. 학교를 선택합니다.\n3. 학칙에 대해 궁금한 점을 입력하면 AI가 답변해드립니다.\n4. 추가 질문이 있다면 계속 대화를 이어갈 수 있습니다.",
	},
	{
		Id:       4,
		Question: "커뮤니티에서 무엇을 할 수 있나요?",
		Answer:   "커뮤니티에서는 학생들이 학칙 관련 질문을 공유하고 답변할 수 있습니다. 학사일정, 수업, 휴학/복학, 장학금 등 다양한 주제로 소통할 수 있으며, 좋아요와 댓글 기능을 통해 의견을 나눌 수 있습니다.",
	},
	{
		Id:       5,
		Question: "게시글은 익명으로 작성되나요?",
		Answer:   "네, 모든 게시글과 댓글은 기본적으로 익명으로 작성됩니다. 사용자의 개인정보는 보호되며, 다른 사용자에게는 \"익명\"으로만 표시됩니다.",
	},
	{
		Id:       6,
		Question: "학교를 변경하려면 어떻게 하나요?",
		Answer:   "프로필 > 학교 변경 메뉴에서 소속 학교를 변경할 수 있습니다. 학교를 변경하면 해당 학교의 학칙 정보를 챗봇으로 조회할 수 있습니다.",
	},
	{
		Id:       7,
		Question: "비밀번호를 잊어버렸어요.",
		Answer:   "죄송하지만 현재 비밀번호 찾기 기능은 준비 중입니다. 빠른 시일 내에 지원할 예정입니다. 불편을 드려 죄송합니다.",
	},
	{
		Id:       8,
		Question: "계정을 탈퇴하려면 어떻게 하나요?",
		Answer:   "프로필 > 위험 영역 > 계정 탈퇴 메뉴에서 탈퇴할 수 있습니다. 탈퇴 시 모든 데이터가 삭제되며 복구할 수 없으니 신중하게 결정해주세요.",
	},
}
