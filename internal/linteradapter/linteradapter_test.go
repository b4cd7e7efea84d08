package linteradapter

import "testing"

func TestParseRubocop_CorrectableMapsToEnforced(t *testing.T) {
	stdout := []byte(`{
		"files": [{
			"path": "app.rb",
			"offenses": [
				{"cop_name": "Layout/TrailingWhitespace", "message": "Trailing whitespace", "correctable": true, "location": {"line": 3, "column": 1}},
				{"cop_name": "Metrics/MethodLength", "message": "Too long", "correctable": false, "location": {"line": 10, "column": 2}}
			]
		}]
	}`)
	diags := parseRubocop(stdout)
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(diags))
	}
	if diags[0].Rule != "rubocop/Layout/TrailingWhitespace" {
		t.Errorf("rule = %q", diags[0].Rule)
	}
	if !diags[0].Enforced {
		t.Errorf("expected first diagnostic enforced")
	}
	if diags[1].Enforced {
		t.Errorf("expected second diagnostic not enforced")
	}
	want := "[app.rb:3:1] Trailing whitespace"
	if diags[0].Message != want {
		t.Errorf("message = %q, want %q", diags[0].Message, want)
	}
}

func TestParseRuff_SafeApplicabilityMapsToEnforced(t *testing.T) {
	stdout := []byte(`[
		{"filename": "main.py", "code": "F401", "message": "unused import", "location": {"row": 1, "column": 1}, "fix": {"applicability": "safe"}},
		{"filename": "main.py", "code": "E501", "message": "line too long", "location": {"row": 5, "column": 80}}
	]`)
	diags := parseRuff(stdout)
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(diags))
	}
	if diags[0].Rule != "ruff/F401" || !diags[0].Enforced {
		t.Errorf("unexpected first diagnostic: %+v", diags[0])
	}
	if diags[1].Enforced {
		t.Errorf("expected second diagnostic without fix to be unenforced")
	}
}

func TestParseESLint_FixPresenceMapsToEnforced(t *testing.T) {
	stdout := []byte(`[{
		"filePath": "index.js",
		"messages": [
			{"ruleId": "semi", "message": "Missing semicolon", "line": 2, "column": 10, "fix": {"range": [1,2]}},
			{"ruleId": "no-unused-vars", "message": "unused", "line": 4, "column": 1}
		]
	}]`)
	diags := parseESLint(stdout)
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(diags))
	}
	if diags[0].Rule != "eslint/semi" || !diags[0].Enforced {
		t.Errorf("unexpected first diagnostic: %+v", diags[0])
	}
	if diags[1].Enforced {
		t.Errorf("expected second diagnostic unenforced")
	}
}

func TestParseClippy_MachineApplicableMapsToEnforced(t *testing.T) {
	stdout := []byte(`{"reason":"compiler-artifact"}
{"reason":"compiler-message","message":{"code":{"code":"clippy::needless_return"},"message":"unneeded return","spans":[{"file_name":"main.rs","line_start":7,"column_start":5,"suggestion_applicability":"MachineApplicable"}]}}
{"reason":"compiler-message","message":{"code":{"code":"clippy::too_many_arguments"},"message":"too many args","spans":[{"file_name":"main.rs","line_start":20,"column_start":1,"suggestion_applicability":"MaybeIncorrect"}]}}
`)
	diags := parseClippy(stdout)
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(diags))
	}
	if diags[0].Rule != "clippy/clippy::needless_return" || !diags[0].Enforced {
		t.Errorf("unexpected first diagnostic: %+v", diags[0])
	}
	if diags[1].Enforced {
		t.Errorf("expected second diagnostic unenforced")
	}
}

func TestParse_MalformedJSONYieldsNoDiagnostics(t *testing.T) {
	if diags := parseRubocop([]byte("not json")); diags != nil {
		t.Errorf("expected nil diagnostics for malformed rubocop output, got %v", diags)
	}
	if diags := parseRuff([]byte("{not an array}")); diags != nil {
		t.Errorf("expected nil diagnostics for malformed ruff output, got %v", diags)
	}
	if diags := parseESLint([]byte("garbage")); diags != nil {
		t.Errorf("expected nil diagnostics for malformed eslint output, got %v", diags)
	}
}

func TestParseClippy_SkipsNonCompilerMessageReasons(t *testing.T) {
	stdout := []byte(`{"reason":"build-script-executed"}
{"reason":"compiler-artifact"}
`)
	if diags := parseClippy(stdout); diags != nil {
		t.Errorf("expected nil diagnostics, got %v", diags)
	}
}

func TestToolName_StripsDirectoryPrefix(t *testing.T) {
	if got := toolName("/usr/local/bin/rubocop"); got != "rubocop" {
		t.Errorf("toolName = %q", got)
	}
	if got := toolName("eslint"); got != "eslint" {
		t.Errorf("toolName = %q", got)
	}
}

func TestTailBuffer_RetainsOnlyLastBytesWritten(t *testing.T) {
	tb := newTailBuffer(4)
	_, _ = tb.Write([]byte("hello world"))
	if got := tb.String(); len(got) > 4 {
		t.Errorf("expected tail buffer bounded to 4 bytes, got %q (%d bytes)", got, len(got))
	}
}
