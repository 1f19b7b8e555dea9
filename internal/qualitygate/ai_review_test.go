package qualitygate

import (
	"context"
	"errors"
	"testing"

	"reviewgate/internal/ai"
	"reviewgate/internal/pr"
	"reviewgate/internal/slogutil"
)

var reviewFiles = []pr.ChangedFile{
	{Path: "app/orders.py", Content: "def place(order):\n    save(order)\n", Language: "python"},
}

func TestReviewParsesIssues(t *testing.T) {
	client := &ai.MockClient{Response: `Here is my review:
{"issues":[{"severity":"warning","category":"Correctness","message":"No input validation","file_path":"app/orders.py","line_number":1,"suggestion":"Validate the order"}]}
Done.`}
	r := NewAIReviewer(client, slogutil.NewDiscardLogger())

	got := r.Review(context.Background(), reviewFiles)
	if len(got) != 1 {
		t.Fatalf("Review returned %d issues, want 1", len(got))
	}
	if got[0].Level != LevelWarning {
		t.Errorf("Level = %s, want warning", got[0].Level)
	}
	if got[0].FilePath != "app/orders.py" || got[0].LineNumber != 1 {
		t.Errorf("location = %s:%d, want app/orders.py:1", got[0].FilePath, got[0].LineNumber)
	}
}

func TestReviewDegradesOnFailure(t *testing.T) {
	tests := []struct {
		name   string
		client *ai.MockClient
	}{
		{"provider error", &ai.MockClient{Err: errors.New("timeout")}},
		{"no json", &ai.MockClient{Response: "everything looks fine"}},
		{"malformed json", &ai.MockClient{Response: `{"issues": [broken`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewAIReviewer(tt.client, slogutil.NewDiscardLogger())
			if got := r.Review(context.Background(), reviewFiles); got != nil {
				t.Errorf("Review = %+v, want nil", got)
			}
		})
	}
}

func TestReviewNilClient(t *testing.T) {
	r := NewAIReviewer(nil, slogutil.NewDiscardLogger())
	if got := r.Review(context.Background(), reviewFiles); got != nil {
		t.Errorf("Review = %+v, want nil without a client", got)
	}
}

func TestReviewNothingToSend(t *testing.T) {
	client := &ai.MockClient{Response: `{"issues":[]}`}
	r := NewAIReviewer(client, slogutil.NewDiscardLogger())

	got := r.Review(context.Background(), []pr.ChangedFile{{Path: "deleted.py"}})
	if got != nil {
		t.Errorf("Review = %+v, want nil", got)
	}
	if len(client.Prompts) != 0 {
		t.Errorf("provider called %d times, want 0", len(client.Prompts))
	}
}

func TestLevelFromSeverity(t *testing.T) {
	tests := []struct {
		severity string
		want     Level
	}{
		{"blocking", LevelBlocking},
		{"Critical", LevelBlocking},
		{"HIGH", LevelBlocking},
		{"warning", LevelWarning},
		{"medium", LevelWarning},
		{"advisory", LevelAdvisory},
		{"low", LevelAdvisory},
		{"", LevelAdvisory},
		{"nonsense", LevelAdvisory},
	}

	for _, tt := range tests {
		if got := levelFromSeverity(tt.severity); got != tt.want {
			t.Errorf("levelFromSeverity(%q) = %s, want %s", tt.severity, got, tt.want)
		}
	}
}

func TestGateMergesReviewerIssues(t *testing.T) {
	client := &ai.MockClient{Response: `{"issues":[{"severity":"blocking","category":"Security","message":"Order ID echoed unsanitized","file_path":"app/orders.py","line_number":2}]}`}
	g := New(slogutil.NewDiscardLogger(),
		WithAIReviewer(NewAIReviewer(client, slogutil.NewDiscardLogger())))

	result := g.AnalyzePR(context.Background(), reviewFiles)
	if result.Passed {
		t.Error("a blocking AI issue must fail the gate")
	}
	if len(result.Blocking) != 1 {
		t.Errorf("Blocking = %d, want 1", len(result.Blocking))
	}
}
