package ruby

import "testing"

func TestCheckCommentSpace_FlagsMissingSpace(t *testing.T) {
	diags := checkCommentSpace("#comment with no space\n")
	if len(diags) != 1 {
		t.Fatalf("expected 1 violation, got %+v", diags)
	}
	if diags[0].Enforced {
		t.Error("ruby/comment-space must not be enforced")
	}
}

func TestCheckCommentSpace_AllowsSpacedComment(t *testing.T) {
	diags := checkCommentSpace("# a properly spaced comment\n")
	if len(diags) != 0 {
		t.Fatalf("expected no violations, got %+v", diags)
	}
}

func TestCheckCommentSpace_AllowsShebang(t *testing.T) {
	diags := checkCommentSpace("#!/usr/bin/env ruby\nputs 1\n")
	if len(diags) != 0 {
		t.Fatalf("expected no violations for shebang line, got %+v", diags)
	}
}

func TestCheckCommentSpace_VerbatimLanguageSpecialCase(t *testing.T) {
	diags := checkCommentSpace("# language: en\nputs 1\n")
	if len(diags) != 0 {
		t.Fatalf("expected the first-line ' language' special case to suppress, got %+v", diags)
	}
}

func TestCheckFileTooLong_ExcludesCommentsAndBlanks(t *testing.T) {
	source := "# comment\n\ncode\ncode\n"
	diags := checkFileTooLong(source, 1)
	if len(diags) != 1 {
		t.Fatalf("expected 1 violation (2 code lines > max 1), got %+v", diags)
	}
	if diags[0].Enforced {
		t.Error("ruby/file-too-long must not be enforced")
	}
}
