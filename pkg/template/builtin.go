package template

import "tableflip.dev/prasia/pkg/model"

// Builtins returns the templates every registry starts with.
func Builtins() []Template {
	return []Template{covenant(), leveling(), daily(), weekly()}
}

func covenant() Template {
	return Template{
		Name:        ProtectedName,
		Description: "맹약 단계까지 우호도를 올리기 위한 준비",
		Tasks: []Task{
			{
				Title:      "우호도 결속 달성",
				Type:       model.TypeFavor,
				FavorStage: model.FavorBond,
				Priority:   3,
				Tags:       []string{"맹약", "우호도"},
				Checklist:  Checklist{"세력 의뢰 완료", "우호도 아이템 납품"},
			},
			{
				Title:      "우호도 신의 달성",
				Type:       model.TypeFavor,
				FavorStage: model.FavorFaith,
				Priority:   3,
				Tags:       []string{"맹약", "우호도"},
				Checklist:  Checklist{"세력 의뢰 완료", "우호도 아이템 납품"},
			},
			{
				Title:     "토벌 1단계",
				Type:      model.TypeHunt,
				TobelStep: model.Int(model.TobelStepFirst),
				Tags:      []string{"맹약", "토벌"},
			},
			{
				Title:     "토벌 15단계",
				Type:      model.TypeHunt,
				TobelStep: model.Int(model.TobelStepLast),
				Tags:      []string{"맹약", "토벌"},
			},
			{
				Title:      "맹약서 구매",
				Type:       model.TypePurchase,
				FavorStage: model.FavorCovenant,
				Priority:   4,
				Tags:       []string{"맹약", "구매"},
				Checklist:  Checklist{"재화 확인", "맹약서 구매"},
			},
		},
	}
}

func leveling() Template {
	return Template{
		Name:        "레벨링",
		Description: "효율적인 레벨업을 위한 할일 목록",
		Tasks: []Task{
			{
				Title:     "일일 퀘스트 완료",
				Type:      model.TypeRequest,
				Tags:      []string{"일일", "레벨업"},
				Checklist: Checklist{"일일 퀘스트 1", "일일 퀘스트 2", "일일 퀘스트 3", "일일 퀘스트 4", "일일 퀘스트 5"},
			},
			{
				Title:     "던전 클리어",
				Type:      model.TypeHunt,
				Tags:      []string{"던전", "레벨업"},
				Checklist: Checklist{"일반 던전 3회", "하드 던전 2회", "헬 던전 1회"},
			},
			{
				Title:     "경험치 부스터 사용",
				Type:      model.TypeOther,
				Tags:      []string{"부스터", "레벨업"},
				Checklist: Checklist{"경험치 부스터 활성화", "경험치 부스터 시간 확인"},
			},
		},
	}
}

func daily() Template {
	return Template{
		Name:        "일일 루틴",
		Description: "매일 해야 할 기본적인 할일들",
		Tasks: []Task{
			{
				Title:     "일일 출석",
				Type:      model.TypeOther,
				Tags:      []string{"일일", "출석"},
				Checklist: Checklist{"출석 체크", "출석 보상 수령"},
			},
			{
				Title:     "일일 미션",
				Type:      model.TypeRequest,
				Tags:      []string{"일일", "미션"},
				Checklist: Checklist{"일일 미션 1", "일일 미션 2", "일일 미션 3"},
			},
			{
				Title:     "에너지 소모",
				Type:      model.TypeOther,
				Tags:      []string{"일일", "에너지"},
				Checklist: Checklist{"에너지 확인", "에너지 소모 계획"},
			},
		},
	}
}

func weekly() Template {
	return Template{
		Name:        "주간 루틴",
		Description: "주간 단위로 해야 할 할일들",
		Tasks: []Task{
			{
				Title:     "주간 던전",
				Type:      model.TypeHunt,
				Tags:      []string{"주간", "던전"},
				Checklist: Checklist{"주간 던전 1", "주간 던전 2", "주간 던전 3"},
			},
			{
				Title:     "주간 보스",
				Type:      model.TypeHunt,
				Tags:      []string{"주간", "보스"},
				Checklist: Checklist{"주간 보스 1", "주간 보스 2"},
			},
			{
				Title:     "주간 상점",
				Type:      model.TypePurchase,
				Tags:      []string{"주간", "상점"},
				Checklist: Checklist{"주간 상점 확인", "필요한 아이템 구매"},
			},
		},
	}
}
