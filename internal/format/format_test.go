package format

import (
	"testing"
)

func TestOutputFormat_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format OutputFormat
		want   bool
	}{
		{
			name:   "text format",
			format: TextFormat,
			want:   true,
		},
		{
			name:   "json format",
			format: JSONFormat,
			want:   true,
		},
		{
			name:   "invalid format",
			format: "invalid",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.format.IsValid(); got != tt.want {
				t.Errorf("OutputFormat.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	if f, err := Parse(" JSON "); err != nil || f != JSONFormat {
		t.Errorf("Parse(JSON) = %v, %v", f, err)
	}
	if _, err := Parse("yaml"); err == nil {
		t.Error("Parse(yaml) should fail")
	}
}

func TestFormatOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		text       string
		suggestion string
		format     OutputFormat
		want       string
		wantErr    bool
	}{
		{
			name:       "text format",
			text:       "The quick brown",
			suggestion: " fox jumps",
			format:     TextFormat,
			want:       " fox jumps",
		},
		{
			name:       "json format",
			text:       "The quick brown",
			suggestion: " fox jumps",
			format:     JSONFormat,
			want:       "{\n  \"text\": \"The quick brown\",\n  \"suggestion\": \" fox jumps\"\n}",
		},
		{
			name:       "json escapes quotes",
			text:       `say "hi"`,
			suggestion: "",
			format:     JSONFormat,
			want:       "{\n  \"text\": \"say \\\"hi\\\"\",\n  \"suggestion\": \"\"\n}",
		},
		{
			name:    "invalid format",
			format:  "invalid",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := FormatOutput(tt.text, tt.suggestion, tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("FormatOutput() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("FormatOutput() = %q, want %q", got, tt.want)
			}
		})
	}
}
