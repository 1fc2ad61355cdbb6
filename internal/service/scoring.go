package service

import (
	"assessment_engine/internal/model"
	"assessment_engine/internal/util"
	"fmt"
)

// questionScorer 判定单题是否答对
type questionScorer interface {
	correct(q *model.Question, selected model.OptionIDs) bool
}

type booleanScorer struct{}

// 判断题必须恰好选择一个且为正确选项
func (booleanScorer) correct(q *model.Question, selected model.OptionIDs) bool {
	if len(selected) != 1 {
		return false
	}
	for _, o := range q.Options {
		if o.ID == selected[0] {
			return o.IsCorrect
		}
	}
	return false
}

type multipleScorer struct{}

// 多选题所选集合必须与正确集合完全一致，不给部分分
func (multipleScorer) correct(q *model.Question, selected model.OptionIDs) bool {
	want := model.OptionIDs(q.CorrectOptionIDs()).Sorted()
	if len(selected) == 0 || len(selected) != len(want) {
		return false
	}
	for i := range want {
		if want[i] != selected[i] {
			return false
		}
	}
	return true
}

func scorerFor(t model.QuestionType) (questionScorer, error) {
	switch t {
	case model.QuestionBoolean:
		return booleanScorer{}, nil
	case model.QuestionMultiple:
		return multipleScorer{}, nil
	}
	return nil, fmt.Errorf("no scorer for question type %q", t)
}

// gradedAnswers 评分结果，Answers 尚未关联作答ID
type gradedAnswers struct {
	Answers []model.Answer
	Correct int
	Total   int
}

func (g gradedAnswers) Score() float64 {
	return computeScore(g.Correct, g.Total)
}

// computeScore 百分制，保留两位小数；无题目时为 0
func computeScore(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(100 * float64(correct) / float64(total))
}

// gradeAnswers 校验并评分；每道题都会生成一条答案记录，未作答视为错误
func gradeAnswers(e *model.Evaluation, selections map[uint][]uint) (gradedAnswers, error) {
	questions := make(map[uint]*model.Question, len(e.Questions))
	for i := range e.Questions {
		questions[e.Questions[i].ID] = &e.Questions[i]
	}

	for questionID, optionIDs := range selections {
		q, ok := questions[questionID]
		if !ok {
			return gradedAnswers{}, util.ValidationError("question %d does not belong to this evaluation", questionID)
		}
		for _, optionID := range optionIDs {
			if !q.HasOption(optionID) {
				return gradedAnswers{}, util.ValidationError("option %d does not belong to question %d", optionID, questionID)
			}
		}
	}

	graded := gradedAnswers{
		Answers: make([]model.Answer, 0, len(e.Questions)),
		Total:   len(e.Questions),
	}
	for i := range e.Questions {
		q := &e.Questions[i]
		scorer, err := scorerFor(q.Type)
		if err != nil {
			return gradedAnswers{}, err
		}
		selected := model.OptionIDs(selections[q.ID]).Sorted()
		ok := scorer.correct(q, selected)
		if ok {
			graded.Correct++
		}
		graded.Answers = append(graded.Answers, model.Answer{
			QuestionID:        q.ID,
			SelectedOptionIDs: selected,
			IsCorrect:         ok,
		})
	}
	return graded, nil
}
