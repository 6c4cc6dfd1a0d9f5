// Package export turns a finished post into its publishable artifacts
// through a short linear pipeline: validate, normalize, render the full
// page, render the index card, stage the download. Each stage reports a
// completion percentage and a status message so the surrounding UI can
// repaint between stages.
package export

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/levkoz/blockpress/post"
	"github.com/levkoz/blockpress/render"
)

// Stage names the pipeline's five steps.
type Stage string

// Pipeline stages, in execution order.
const (
	StageValidate        Stage = "validate"
	StageProcess         Stage = "process"
	StageRenderHTML      Stage = "html"
	StageRenderIndexCard Stage = "index"
	StagePrepare         Stage = "prepare"
)

// stagePlan fixes each stage's completion percentage and status message.
// Percentages increase monotonically through the run.
var stagePlan = []struct {
	stage   Stage
	percent int
	message string
}{
	{StageValidate, 20, "Validating inputs..."},
	{StageProcess, 40, "Processing content blocks..."},
	{StageRenderHTML, 60, "Generating HTML..."},
	{StageRenderIndexCard, 80, "Creating index snippet..."},
	{StagePrepare, 100, "Preparing download..."},
}

// Progress is one stage-entry event delivered to the observer.
type Progress struct {
	Stage   Stage  `json:"stage"`
	Percent int    `json:"percent"`
	Message string `json:"message"`
}

// Result holds the terminal artifacts of a successful run.
type Result struct {
	PageHTML      string `json:"postHtml"`
	IndexCardHTML string `json:"indexHtml"`
	Filename      string `json:"filename"`
}

// StageError reports the stage a failed run halted at. The pipeline does
// not roll back or retry; the caller surfaces Err's message and the user
// edits and re-exports.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Pipeline runs exports. The zero value is usable; Progress and Renderer
// are optional.
type Pipeline struct {
	// Renderer produces the HTML artifacts.
	Renderer render.Renderer

	// Progress, when set, observes each stage as it begins. It runs on
	// the calling goroutine between stages.
	Progress func(Progress)
}

// Run executes the five stages against a snapshot of the post. On
// validation failure it halts with a *StageError and produces no
// artifacts.
func (pl *Pipeline) Run(p post.Post) (Result, error) {
	pl.report(0)
	if err := Validate(p); err != nil {
		return Result{}, &StageError{Stage: StageValidate, Err: err}
	}

	pl.report(1)
	p = p.Normalize()

	pl.report(2)
	page := pl.Renderer.FullPage(p)

	pl.report(3)
	card := pl.Renderer.IndexCard(p)

	pl.report(4)
	return Result{
		PageHTML:      page,
		IndexCardHTML: card,
		Filename:      render.Filename(p.Title),
	}, nil
}

func (pl *Pipeline) report(i int) {
	if pl.Progress != nil {
		s := stagePlan[i]
		pl.Progress(Progress{Stage: s.stage, Percent: s.percent, Message: s.message})
	}
}

// Validate checks the post is exportable: title, category and a
// well-formed date are required, and the block sequence must not be
// empty. The returned error message names the offending field.
func Validate(p post.Post) error {
	err := validation.Errors{
		"title":    validation.Validate(p.Title, validation.Required),
		"category": validation.Validate(p.Category, validation.Required),
		"date":     validation.Validate(p.Date, validation.Required, validation.Date("2006-01-02")),
	}.Filter()
	if err != nil {
		return err
	}
	if len(p.Blocks) == 0 {
		return fmt.Errorf("blocks: add at least one content block")
	}
	return nil
}
