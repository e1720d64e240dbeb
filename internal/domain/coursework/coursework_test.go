package coursework

import (
	"reflect"
	"testing"
)

func TestQuestionOrder_FollowsQuizThenLexical(t *testing.T) {
	key := map[string]string{"q3": "C", "q1": "A", "zz": "B", "extra": "D"}
	questions := []Question{{ID: "q3"}, {ID: "q2"}, {ID: "q1"}}
	got := QuestionOrder(key, questions)
	want := []string{"q3", "q1", "extra", "zz"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("QuestionOrder: got %v want %v", got, want)
	}
}

func TestQuestionOrder_EmptyKey(t *testing.T) {
	if got := QuestionOrder(map[string]string{}, []Question{{ID: "q1"}}); len(got) != 0 {
		t.Fatalf("expected empty order, got %v", got)
	}
}

func TestFlagUpdate(t *testing.T) {
	u, ok := FlagUpdate(FlagColabComplete, true)
	if !ok || u.ColabComplete == nil || !*u.ColabComplete || u.GuideComplete != nil {
		t.Fatalf("unexpected update: %+v ok=%v", u, ok)
	}
	if _, ok := FlagUpdate("quizPercent", true); ok {
		t.Fatalf("quizPercent must not be settable as a flag")
	}
	if !(ProgressUpdate{}).Empty() {
		t.Fatalf("zero update should be empty")
	}
}

func TestGuideSource_PathCandidates(t *testing.T) {
	g := GuideSource{HTMLPath: "b.html", Path: "d.html", GuideURL: "https://x"}
	if got := g.PathCandidates(); !reflect.DeepEqual(got, []string{"b.html", "d.html"}) {
		t.Fatalf("PathCandidates: got %v", got)
	}
}
