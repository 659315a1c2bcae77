package handlers

import "testing"

func TestMissingParamsMessage(t *testing.T) {
	tests := []struct {
		name   string
		params []param
		want   string
	}{
		{
			name:   "all present",
			params: []param{{"email", "a@x.com"}, {"age", 25}, {"name", "A"}},
			want:   "",
		},
		{
			name:   "empty string",
			params: []param{{"email", ""}, {"name", "A"}},
			want:   "Invalid or missing params: email",
		},
		{
			name:   "single space counts as missing",
			params: []param{{"name", " "}},
			want:   "Invalid or missing params: name",
		},
		{
			name:   "two spaces count as present",
			params: []param{{"name", "  "}},
			want:   "",
		},
		{
			name:   "numeric zero counts as missing",
			params: []param{{"duration", int64(0)}},
			want:   "Invalid or missing params: duration",
		},
		{
			name:   "int zero counts as missing",
			params: []param{{"age", 0}},
			want:   "Invalid or missing params: age",
		},
		{
			name:   "false counts as missing",
			params: []param{{"flag", false}},
			want:   "Invalid or missing params: flag",
		},
		{
			name:   "nil counts as missing",
			params: []param{{"role", nil}},
			want:   "Invalid or missing params: role",
		},
		{
			name: "multiple missing listed in input order",
			params: []param{
				{"email", ""},
				{"password", "secret1"},
				{"role", ""},
				{"age", 0},
			},
			want: "Invalid or missing params: email, role, age",
		},
		{
			name:   "negative numbers are present",
			params: []param{{"offset", -1}},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := missingParamsMessage(tt.params)
			if got != tt.want {
				t.Fatalf("missingParamsMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
