package classify

import (
	"context"
	"errors"
	"testing"

	"line-faq-bot/pkg/llm"
	"line-faq-bot/pkg/store"
)

type fakeProvider struct {
	reply string
	err   error

	calls       int
	lastHistory []llm.Message
	lastOptions llm.Options
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.calls++
	f.lastHistory = history
	f.lastOptions = llm.Options{}
	for _, opt := range opts {
		opt(&f.lastOptions)
	}
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		reply        string
		err          error
		wantCategory store.Category
		wantDegraded bool
	}{
		{
			name:         "exact label",
			reply:        "給与・勤務",
			wantCategory: store.CategoryPayroll,
		},
		{
			name:         "label with surrounding whitespace",
			reply:        " スタッフルール\n",
			wantCategory: store.CategoryStaffRule,
		},
		{
			name:         "out-of-set answer falls back",
			reply:        "給与に関する質問だと思います",
			wantCategory: store.DefaultCategory,
			wantDegraded: true,
		},
		{
			name:         "empty answer falls back",
			reply:        "",
			wantCategory: store.DefaultCategory,
			wantDegraded: true,
		},
		{
			name:         "transport error falls back",
			err:          errors.New("connection refused"),
			wantCategory: store.DefaultCategory,
			wantDegraded: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{reply: tt.reply, err: tt.err}
			classifier := NewClassifier(provider, "test-model", "system prompt")

			result := classifier.Classify(context.Background(), "質問です")

			if result.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", result.Category, tt.wantCategory)
			}
			if result.Degraded != tt.wantDegraded {
				t.Errorf("Degraded = %v, want %v", result.Degraded, tt.wantDegraded)
			}
			if tt.wantDegraded && result.Cause == nil {
				t.Error("Degraded result must carry a cause")
			}
		})
	}
}

func TestClassifyCallShape(t *testing.T) {
	provider := &fakeProvider{reply: "イベント"}
	classifier := NewClassifier(provider, "test-model", "system prompt")

	classifier.Classify(context.Background(), "開催時間は？")

	if provider.calls != 1 {
		t.Fatalf("calls = %d, want 1", provider.calls)
	}
	if provider.lastOptions.Temperature != 0 {
		t.Errorf("Temperature = %v, want 0", provider.lastOptions.Temperature)
	}
	if provider.lastOptions.Model != "test-model" {
		t.Errorf("Model = %q, want %q", provider.lastOptions.Model, "test-model")
	}
	if len(provider.lastHistory) != 2 {
		t.Fatalf("history length = %d, want 2", len(provider.lastHistory))
	}
	if provider.lastHistory[0].Role != llm.RoleSystem {
		t.Errorf("first message role = %q, want system", provider.lastHistory[0].Role)
	}
	if provider.lastHistory[1].Content != "ユーザーの質問: 開催時間は？" {
		t.Errorf("user message = %q", provider.lastHistory[1].Content)
	}
}
