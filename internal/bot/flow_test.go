package bot

import (
	"context"
	"errors"
	"testing"

	"contratobot/internal/auth"
	"contratobot/internal/sheets"
)

type fakeFetcher struct {
	snap  *sheets.Snapshot
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(context.Context) (*sheets.Snapshot, error) {
	f.calls++
	return f.snap, f.err
}

type fakeGenerator struct {
	answer string
	err    error
	calls  int
	rows   [][]string
	asked  string
}

func (g *fakeGenerator) Answer(_ context.Context, rows [][]string, question string) (string, error) {
	g.calls++
	g.rows = rows
	g.asked = question
	return g.answer, g.err
}

func newTestFlow(fetcher *fakeFetcher, gen *fakeGenerator) *Flow {
	return NewFlow(
		auth.NewMemoryStore(),
		[]string{"raphael", "mariana", "nilza", "matheus"},
		fetcher,
		gen,
	)
}

func TestFlowGateRejectsUnknownName(t *testing.T) {
	flow := newTestFlow(&fakeFetcher{}, &fakeGenerator{})

	d, err := flow.HandleText(context.Background(), 1, "eduardo")
	if err != nil {
		t.Fatalf("HandleText: %v", err)
	}
	if d.Action != ActionReply || d.Text != MsgUnauthorized {
		t.Fatalf("unexpected decision: %+v", d)
	}
}

func TestFlowGateAcceptsAllowedNameCaseInsensitive(t *testing.T) {
	flow := newTestFlow(&fakeFetcher{}, &fakeGenerator{})

	d, err := flow.HandleText(context.Background(), 1, "  RaPhAeL ")
	if err != nil {
		t.Fatalf("HandleText: %v", err)
	}
	if d.Action != ActionReplyMenu || d.Text != MsgAuthorized {
		t.Fatalf("unexpected decision: %+v", d)
	}
}

func TestFlowGateDoesNotLeakAcrossChats(t *testing.T) {
	flow := newTestFlow(&fakeFetcher{}, &fakeGenerator{})
	ctx := context.Background()

	if _, err := flow.HandleText(ctx, 1, "mariana"); err != nil {
		t.Fatalf("HandleText: %v", err)
	}

	// Chat 2 is still gated even though chat 1 authorized.
	d, err := flow.HandleText(ctx, 2, BtnContractTerm)
	if err != nil {
		t.Fatalf("HandleText: %v", err)
	}
	if d.Text != MsgUnauthorized {
		t.Fatalf("chat 2 bypassed the gate: %+v", d)
	}
}

func TestFlowCannedContractReply(t *testing.T) {
	fetcher := &fakeFetcher{}
	gen := &fakeGenerator{}
	flow := newTestFlow(fetcher, gen)
	ctx := context.Background()

	if _, err := flow.HandleText(ctx, 1, "nilza"); err != nil {
		t.Fatalf("authorize: %v", err)
	}
	d, err := flow.HandleText(ctx, 1, BtnContractTerm)
	if err != nil {
		t.Fatalf("HandleText: %v", err)
	}
	if d.Action != ActionReply || d.Text != MsgContractTerm {
		t.Fatalf("unexpected decision: %+v", d)
	}
	if fetcher.calls != 0 || gen.calls != 0 {
		t.Fatalf("canned reply hit the pipeline: fetch=%d gen=%d", fetcher.calls, gen.calls)
	}
}

func TestFlowClearHistoryButton(t *testing.T) {
	flow := newTestFlow(&fakeFetcher{}, &fakeGenerator{})
	ctx := context.Background()

	if _, err := flow.HandleText(ctx, 1, "matheus"); err != nil {
		t.Fatalf("authorize: %v", err)
	}
	d, err := flow.HandleText(ctx, 1, "🗑 limpar histórico")
	if err != nil {
		t.Fatalf("HandleText: %v", err)
	}
	if d.Action != ActionClearHistory {
		t.Fatalf("unexpected decision: %+v", d)
	}
}

func TestFlowQuestionPipeline(t *testing.T) {
	fetcher := &fakeFetcher{
		snap: &sheets.Snapshot{Rows: [][]string{{"Contrato", "71"}}},
	}
	gen := &fakeGenerator{answer: "O contrato 71 vence em abril."}
	flow := newTestFlow(fetcher, gen)
	ctx := context.Background()

	if _, err := flow.HandleText(ctx, 1, "raphael"); err != nil {
		t.Fatalf("authorize: %v", err)
	}
	d, err := flow.HandleText(ctx, 1, "Qual a vigência do contrato 71?")
	if err != nil {
		t.Fatalf("HandleText: %v", err)
	}
	if d.Action != ActionReply || d.Text != gen.answer {
		t.Fatalf("unexpected decision: %+v", d)
	}
	if gen.asked != "qual a vigência do contrato 71?" {
		t.Fatalf("question not normalized: %q", gen.asked)
	}
	if len(gen.rows) != 1 {
		t.Fatalf("rows not forwarded to generator")
	}
}

func TestFlowEmptySnapshotSkipsGenerator(t *testing.T) {
	fetcher := &fakeFetcher{snap: &sheets.Snapshot{}}
	gen := &fakeGenerator{}
	flow := newTestFlow(fetcher, gen)
	ctx := context.Background()

	if _, err := flow.HandleText(ctx, 1, "matheus"); err != nil {
		t.Fatalf("authorize: %v", err)
	}
	d, err := flow.HandleText(ctx, 1, "tem algum dado?")
	if err != nil {
		t.Fatalf("HandleText: %v", err)
	}
	if d.Text != MsgSheetEmpty {
		t.Fatalf("text = %q, want %q", d.Text, MsgSheetEmpty)
	}
	if gen.calls != 0 {
		t.Fatalf("generator called on empty snapshot")
	}
}

func TestFlowFetchFailureSkipsGenerator(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"auth", &sheets.FetchError{Kind: sheets.KindAuth, Err: errors.New("forbidden")}, MsgSheetAuth},
		{"rate limited", &sheets.FetchError{Kind: sheets.KindRateLimited, Err: errors.New("quota")}, MsgSheetRateLimited},
		{"not found", &sheets.FetchError{Kind: sheets.KindNotFound, Err: errors.New("gone")}, MsgSheetNotFound},
		{"network", &sheets.FetchError{Kind: sheets.KindNetwork, Err: errors.New("dial")}, MsgSheetNetwork},
		{"unclassified", errors.New("boom"), MsgSheetNetwork},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := &fakeFetcher{err: tc.err}
			gen := &fakeGenerator{}
			flow := newTestFlow(fetcher, gen)
			ctx := context.Background()

			if _, err := flow.HandleText(ctx, 1, "mariana"); err != nil {
				t.Fatalf("authorize: %v", err)
			}
			d, err := flow.HandleText(ctx, 1, "pergunta qualquer")
			if err != nil {
				t.Fatalf("HandleText: %v", err)
			}
			if d.Text != tc.want {
				t.Fatalf("text = %q, want %q", d.Text, tc.want)
			}
			if gen.calls != 0 {
				t.Fatalf("generator called despite fetch failure")
			}
		})
	}
}

func TestFlowGeneratorFailureFallback(t *testing.T) {
	fetcher := &fakeFetcher{snap: &sheets.Snapshot{Rows: [][]string{{"a"}}}}
	gen := &fakeGenerator{err: errors.New("model unavailable")}
	flow := newTestFlow(fetcher, gen)
	ctx := context.Background()

	if _, err := flow.HandleText(ctx, 1, "nilza"); err != nil {
		t.Fatalf("authorize: %v", err)
	}
	d, err := flow.HandleText(ctx, 1, "pergunta")
	if err != nil {
		t.Fatalf("HandleText: %v", err)
	}
	if d.Text != MsgAnswerFailed {
		t.Fatalf("text = %q, want %q", d.Text, MsgAnswerFailed)
	}
}

func TestFlowGreetRevokesAuthorization(t *testing.T) {
	flow := newTestFlow(&fakeFetcher{}, &fakeGenerator{})
	ctx := context.Background()

	if _, err := flow.HandleText(ctx, 1, "raphael"); err != nil {
		t.Fatalf("authorize: %v", err)
	}

	d, err := flow.Greet(ctx, 1)
	if err != nil {
		t.Fatalf("Greet: %v", err)
	}
	if d.Text != MsgWelcome {
		t.Fatalf("unexpected greeting: %+v", d)
	}

	// After /start the chat must identify again.
	d, err = flow.HandleText(ctx, 1, BtnContractTerm)
	if err != nil {
		t.Fatalf("HandleText: %v", err)
	}
	if d.Text != MsgUnauthorized {
		t.Fatalf("gate not reset after Greet: %+v", d)
	}
}
