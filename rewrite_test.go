package attackcsv_test

import (
	"testing"

	"github.com/bjaus/attackcsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewritePlain(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input string
		want  string
	}{
		"canonical heading": {
			input: "# Intro #\nSee <code>a<b</code> and https://attack.mitre.org/techniques/T1548/001",
			want:  "# Intro #\nSee `a<b` and T1548.001",
		},
		"heading tidied": {
			input: "## Detection\nbody",
			want:  "# Detection #\nbody",
		},
		"heading at end": {
			input: "text\n# Notes",
			want:  "text\n# Notes #\n",
		},
		"code": {
			input: "run <code>whoami</code> then <code>id</code>",
			want:  "run `whoami` then `id`",
		},
		"bold untouched": {
			input: "**Note** this",
			want:  "**Note** this",
		},
		"link label kept": {
			input: "[Sudo](https://attack.mitre.org/techniques/T1548/003)",
			want:  "[Sudo](T1548.003)",
		},
		"tactic and software": {
			input: "https://attack.mitre.org/tactics/TA0004 and https://attack.mitre.org/software/S0002",
			want:  "TA0004 and S0002",
		},
		"quoted url": {
			input: `href="https://attack.mitre.org/techniques/T1059"`,
			want:  `href="T1059"`,
		},
		"trailing slash": {
			input: "https://attack.mitre.org/techniques/T1003/",
			want:  "T1003",
		},
		"line break": {
			input: "a<br>b",
			want:  "a\nb",
		},
		"heading after line break": {
			input: "a<br>## Detection",
			want:  "a\n# Detection #\n",
		},
		"crlf heading": {
			input: "# Intro\r\nbody",
			want:  "# Intro #\nbody",
		},
		"foreign url": {
			input: "https://example.com/techniques/T1",
			want:  "https://example.com/techniques/T1",
		},
		"empty": {
			input: "",
			want:  "",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, attackcsv.Rewrite(tt.input, attackcsv.ModePlain))
		})
	}
}

func TestRewriteHTML(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input string
		want  string
	}{
		"heading": {
			input: "# Intro\nbody",
			want:  "<b><u>Intro</u></b><br/>body",
		},
		"crlf heading": {
			input: "## Intro\r\nbody",
			want:  "<b><u>Intro</u></b><br/>body",
		},
		"code escaped": {
			input: "<code>a<b</code>",
			want:  "<code>a&lt;b</code>",
		},
		"bold": {
			input: "**Note** this",
			want:  "<b>Note</b> this",
		},
		"link": {
			input: "[MITRE](https://example.com)",
			want:  `<a href="https://example.com">MITRE</a>`,
		},
		"technique link becomes anchor": {
			input: "[Sudo](https://attack.mitre.org/techniques/T1548/003)",
			want:  `<a href="#T1548.003">Sudo</a>`,
		},
		"tactic link kept": {
			input: "[Escalation](https://attack.mitre.org/tactics/TA0004)",
			want:  `<a href="https://attack.mitre.org/tactics/TA0004">Escalation</a>`,
		},
		"bare technique url kept": {
			input: "https://attack.mitre.org/techniques/T1059",
			want:  "https://attack.mitre.org/techniques/T1059",
		},
		"newlines": {
			input: "a\nb\n",
			want:  "a<br/>b<br/>",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, attackcsv.Rewrite(tt.input, attackcsv.ModeHTML))
		})
	}
}

func TestRewritePlainIdempotent(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"# Intro #\nSee <code>a<b</code> and https://attack.mitre.org/techniques/T1548/001",
		"## Detection\nMonitor [Sudo](https://attack.mitre.org/techniques/T1548/003) use.",
		"Adversaries may abuse https://attack.mitre.org/software/S0002 to dump credentials.",
		"plain text with nothing to do",
		"# Heading",
		"a<br>## Detection<br>body",
		"# A<br># B<br>see https://attack.mitre.org/techniques/T1003<br>next",
		"# Intro\r\nbody\r\n## Usage #\r\n",
	}
	for _, s := range inputs {
		once := attackcsv.Rewrite(s, attackcsv.ModePlain)
		assert.Equal(t, once, attackcsv.Rewrite(once, attackcsv.ModePlain), s)
	}
}

func TestParseMode(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    attackcsv.Mode
		wantErr require.ErrorAssertionFunc
	}{
		"plain":   {input: "plain", want: attackcsv.ModePlain, wantErr: require.NoError},
		"text":    {input: "text", want: attackcsv.ModePlain, wantErr: require.NoError},
		"html":    {input: "HTML", want: attackcsv.ModeHTML, wantErr: require.NoError},
		"unknown": {input: "rtf", want: attackcsv.ModePlain, wantErr: require.Error},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := attackcsv.ParseMode(tt.input)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseModeSentinel(t *testing.T) {
	t.Parallel()
	_, err := attackcsv.ParseMode("rtf")
	assert.ErrorIs(t, err, attackcsv.ErrInvalidMode)
	assert.Equal(t, "html", attackcsv.ModeHTML.String())
	assert.Equal(t, "plain", attackcsv.ModePlain.String())
}
