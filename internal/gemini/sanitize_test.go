package gemini

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips markdown asterisks",
			in:   "O contrato **71** vence em *abril*.",
			want: "O contrato 71 vence em abril.",
		},
		{
			name: "keeps accented portuguese",
			in:   "A vigência começa em março e a renovação é automática.",
			want: "A vigência começa em março e a renovação é automática.",
		},
		{
			name: "keeps currency and punctuation",
			in:   "Valor mensal: € 1.200,50 - reajuste de 8%!",
			want: "Valor mensal € 1.200,50 - reajuste de 8%!",
		},
		{
			name: "drops emoji and brackets",
			in:   "📌 [Contrato 71] (ver anexo)",
			want: "Contrato 71 ver anexo",
		},
		{
			name: "trims whitespace",
			in:   "  \n resposta \t ",
			want: "resposta",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Sanitize(tc.in); got != tc.want {
				t.Fatalf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	in := "**Contrato 71**: vigência até 29/04/2025 📅"
	once := Sanitize(in)
	twice := Sanitize(once)
	if once != twice {
		t.Fatalf("second pass changed output: %q vs %q", once, twice)
	}
}

func TestBuildPromptContainsDataAndQuestion(t *testing.T) {
	rows := [][]string{
		{"Contrato", "Vigência"},
		{"71", "29/04/2025"},
	}
	prompt, err := buildPrompt(rows, "qual a vigência do contrato 71?")
	if err != nil {
		t.Fatalf("buildPrompt: %v", err)
	}
	for _, want := range []string{"29/04/2025", "qual a vigência do contrato 71?", "formato JSON"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
