package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/attackcsv"
)

func TestObjectMarkdown(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		doc  string
		want string
	}{
		"technique": {
			doc: `{"type": "attack-pattern", "id": "attack-pattern--1", "modified": "2022-04-19",
				"name": "Sudo", "description": "See https://attack.mitre.org/techniques/T1548/003 now.",
				"external_references": [{"source_name": "mitre-attack", "external_id": "T1548.003"}]}`,
			want: "# Sudo\n\n" +
				"> **ATT&CK ID:** T1548.003 | **Type:** attack-pattern | **STIX ID:** attack-pattern--1\n" +
				">\n> **Modified:** 2022-04-19\n" +
				"\n---\n\nSee T1548.003 now.\n",
		},
		"no name or description": {
			doc:  `{"type": "relationship", "id": "relationship--1"}`,
			want: "# relationship--1\n\n> **Type:** relationship | **STIX ID:** relationship--1\n",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var r attackcsv.Record
			require.NoError(t, json.Unmarshal([]byte(tt.doc), &r))
			assert.Equal(t, tt.want, objectMarkdown(r))
		})
	}
}

func TestFlagName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "attack-version", flagName("attack_version"))
	assert.Equal(t, "workers", flagName("workers"))
}
