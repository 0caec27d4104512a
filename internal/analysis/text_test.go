package analysis

import (
	"errors"
	"reflect"
	"testing"

	"github.com/analyticore/analysis-service/pkg/models"
)

// --- Tokenize tests ---

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "splits on whitespace",
			input:    "el dia esta nublado",
			expected: []string{"el", "dia", "esta", "nublado"},
		},
		{
			name:     "lowercases",
			input:    "Bueno DIA",
			expected: []string{"bueno", "dia"},
		},
		{
			name:     "splits on punctuation runs",
			input:    "malo, pesimo; horrible: fin?!",
			expected: []string{"malo", "pesimo", "horrible", "fin"},
		},
		{
			name:     "leading and trailing separators",
			input:    "  ...hola mundo!!  ",
			expected: []string{"hola", "mundo"},
		},
		{
			name:     "tabs and newlines",
			input:    "uno\tdos\n\ntres",
			expected: []string{"uno", "dos", "tres"},
		},
		{
			name:     "vertical tab and form feed",
			input:    "uno\vdos\fTres\r\ncuatro",
			expected: []string{"uno", "dos", "tres", "cuatro"},
		},
		{
			name:     "no-break space is not a separator",
			input:    "bueno\u00a0dia",
			expected: []string{"bueno\u00a0dia"},
		},
		{
			name:     "unicode line and ideographic spaces are not separators",
			input:    "malo\u0085dia\u3000fin",
			expected: []string{"malo\u0085dia\u3000fin"},
		},
		{
			name:     "only separators",
			input:    " .,?!;: ",
			expected: []string{},
		},
		{
			name:     "empty",
			input:    "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) == 0 && len(tt.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("\nexpected: %q\ngot:      %q", tt.expected, got)
			}
		})
	}
}

func TestTokenize_NeverEmptyTokens(t *testing.T) {
	inputs := []string{"a,,b", "  ", "!!!", "x . y", ",start", "end."}
	for _, in := range inputs {
		for _, tok := range Tokenize(in) {
			if tok == "" {
				t.Errorf("Tokenize(%q) produced an empty token", in)
			}
		}
	}
}

func TestTokenize_InsensitiveToCaseAndSeparatorRuns(t *testing.T) {
	a := Tokenize("Bueno!!  dia")
	b := Tokenize("bueno dia")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("expected identical tokens, got %q and %q", a, b)
	}
}

// --- ClassifySentiment tests ---

func TestClassifySentiment(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected models.Sentiment
	}{
		{"positive words", "El producto es excelente y bueno", models.SentimentPositive},
		{"negative words", "Este servicio es malo, pesimo y horrible", models.SentimentNegative},
		{"no lexicon matches", "El dia esta nublado", models.SentimentNeutral},
		{"substring counts", "un producto buenote", models.SentimentPositive},
		{"tie is neutral", "bueno pero malo", models.SentimentNeutral},
		{"token matching both lexicons", "buenomalo", models.SentimentNeutral},
		{"majority wins", "fantastico excelente horrible", models.SentimentPositive},
		{"empty", "", models.SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifySentiment(Tokenize(tt.text))
			if got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestClassifySentiment_TokenCountsOncePerLexicon(t *testing.T) {
	// "buenobueno" contains "bueno" twice but is a single positive token.
	got := ClassifySentiment([]string{"buenobueno", "malo", "horrible"})
	if got != models.SentimentNegative {
		t.Errorf("expected NEGATIVE, got %s", got)
	}
}

// --- ExtractKeywords tests ---

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "orders by frequency",
			text:     "gato gato perro gato perro pez",
			expected: []string{"gato", "perro", "pez"},
		},
		{
			name:     "ties break by first occurrence",
			text:     "beta alfa beta alfa gamma",
			expected: []string{"beta", "alfa", "gamma"},
		},
		{
			name:     "drops stop words and short tokens",
			text:     "El producto es excelente y bueno",
			expected: []string{"producto", "excelente", "bueno"},
		},
		{
			name:     "caps at five",
			text:     "uno dos tres cuatro cinco seis siete",
			expected: []string{"uno", "dos", "tres", "cuatro", "cinco"},
		},
		{
			name:     "rune length not byte length",
			text:     "día él",
			expected: []string{"día"},
		},
		{
			name:     "only stop words and short tokens",
			text:     "el la de y a en ya yo",
			expected: []string{},
		},
		{
			name:     "empty",
			text:     "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractKeywords(Tokenize(tt.text), MaxKeywords)
			if got == nil {
				t.Fatal("expected non-nil slice")
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("\nexpected: %q\ngot:      %q", tt.expected, got)
			}
		})
	}
}

func TestExtractKeywords_Deterministic(t *testing.T) {
	tokens := Tokenize("rojo azul verde amarillo negro blanco gris rojo azul")
	first := ExtractKeywords(tokens, MaxKeywords)
	for i := 0; i < 50; i++ {
		got := ExtractKeywords(tokens, MaxKeywords)
		if !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: expected %q, got %q", i, first, got)
		}
	}
	expected := []string{"rojo", "azul", "verde", "amarillo", "negro"}
	if !reflect.DeepEqual(first, expected) {
		t.Errorf("\nexpected: %q\ngot:      %q", expected, first)
	}
}

// --- Analyze tests ---

func TestAnalyze(t *testing.T) {
	result, err := Analyze("Este servicio es malo, pesimo y horrible")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Sentiment != models.SentimentNegative {
		t.Errorf("expected NEGATIVE, got %s", result.Sentiment)
	}
	expected := []string{"este", "servicio", "malo", "pesimo", "horrible"}
	if !reflect.DeepEqual(result.Keywords, expected) {
		t.Errorf("\nexpected: %q\ngot:      %q", expected, result.Keywords)
	}
}

func TestAnalyze_EmptyText(t *testing.T) {
	result, err := Analyze("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Sentiment != models.SentimentNeutral {
		t.Errorf("expected NEUTRAL, got %s", result.Sentiment)
	}
	if result.Keywords == nil || len(result.Keywords) != 0 {
		t.Errorf("expected empty keyword slice, got %#v", result.Keywords)
	}
}

func TestAnalyze_InvalidEncoding(t *testing.T) {
	_, err := Analyze("bueno \xff\xfe")
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("expected ErrInvalidEncoding, got %v", err)
	}
}

func TestTextAnalyzer_MatchesAnalyze(t *testing.T) {
	text := "Fantastico servicio, fantastico precio"
	want, _ := Analyze(text)
	got, err := TextAnalyzer{}.Analyze(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}
