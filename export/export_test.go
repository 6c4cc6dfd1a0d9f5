package export

import (
	"errors"
	"strings"
	"testing"

	"github.com/levkoz/blockpress/post"
)

func validPost() post.Post {
	return post.Post{
		Title:    "My First Post",
		Category: "Systems",
		Date:     "2025-03-09",
		Blocks:   []post.Block{{ID: "block-0", Type: post.BlockParagraph, Content: "hello"}},
	}
}

func TestRunProducesArtifacts(t *testing.T) {
	var pl Pipeline
	res, err := pl.Run(validPost())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !strings.Contains(res.PageHTML, "<!DOCTYPE html>") {
		t.Errorf("page HTML missing document skeleton")
	}
	if !strings.Contains(res.IndexCardHTML, `<article class="post-card">`) {
		t.Errorf("index card missing card wrapper")
	}
	if res.Filename != "my-first-post.html" {
		t.Errorf("Filename = %q, want %q", res.Filename, "my-first-post.html")
	}
}

func TestRunReportsStagesInOrder(t *testing.T) {
	var events []Progress
	pl := Pipeline{Progress: func(p Progress) { events = append(events, p) }}
	if _, err := pl.Run(validPost()); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	want := []Progress{
		{StageValidate, 20, "Validating inputs..."},
		{StageProcess, 40, "Processing content blocks..."},
		{StageRenderHTML, 60, "Generating HTML..."},
		{StageRenderIndexCard, 80, "Creating index snippet..."},
		{StagePrepare, 100, "Preparing download..."},
	}
	if len(events) != len(want) {
		t.Fatalf("event count = %d, want %d", len(events), len(want))
	}
	for i, w := range want {
		if events[i] != w {
			t.Errorf("event %d = %+v, want %+v", i, events[i], w)
		}
	}
}

func TestRunHaltsOnValidationFailure(t *testing.T) {
	var events []Progress
	pl := Pipeline{Progress: func(p Progress) { events = append(events, p) }}

	p := validPost()
	p.Category = ""
	res, err := pl.Run(p)
	if err == nil {
		t.Fatalf("Run succeeded on invalid post")
	}

	var se *StageError
	if !errors.As(err, &se) {
		t.Fatalf("error type = %T, want *StageError", err)
	}
	if se.Stage != StageValidate {
		t.Errorf("failed stage = %q, want validate", se.Stage)
	}
	if res.PageHTML != "" || res.IndexCardHTML != "" || res.Filename != "" {
		t.Errorf("failed run produced artifacts: %+v", res)
	}
	if len(events) != 1 || events[0].Stage != StageValidate {
		t.Errorf("events after failure = %+v, want only the validate event", events)
	}
}

func TestValidateNamesMissingField(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*post.Post)
		field  string
	}{
		{"missing title", func(p *post.Post) { p.Title = "" }, "title"},
		{"missing category", func(p *post.Post) { p.Category = "" }, "category"},
		{"missing date", func(p *post.Post) { p.Date = "" }, "date"},
		{"malformed date", func(p *post.Post) { p.Date = "March 9" }, "date"},
		{"no blocks", func(p *post.Post) { p.Blocks = nil }, "blocks"},
	}
	for _, tt := range tests {
		p := validPost()
		tt.mutate(&p)
		err := Validate(p)
		if err == nil {
			t.Errorf("%s: Validate passed", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.field) {
			t.Errorf("%s: error %q does not name field %q", tt.name, err, tt.field)
		}
	}
}

func TestValidateAcceptsCompletePost(t *testing.T) {
	if err := Validate(validPost()); err != nil {
		t.Errorf("Validate(%+v) = %v", validPost(), err)
	}
}

func TestRunNormalizesBeforeRendering(t *testing.T) {
	p := validPost()
	p.HeroColor = "plaid"
	p.Blocks = append(p.Blocks, post.Block{
		ID: "block-1", Type: post.BlockList, Items: []string{"keep", "  "},
	})

	var pl Pipeline
	res, err := pl.Run(p)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if strings.Contains(res.PageHTML, "plaid") {
		t.Errorf("unclamped hero color reached the page")
	}
	if !strings.Contains(res.PageHTML, "<li>keep</li>") || strings.Contains(res.PageHTML, "<li>  </li>") {
		t.Errorf("list items not filtered: %q", res.PageHTML)
	}
}
