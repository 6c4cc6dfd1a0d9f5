package blockpress

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/levkoz/blockpress/export"
	"github.com/levkoz/blockpress/post"
	"github.com/levkoz/blockpress/youtube"
)

// withDoc locates the editor session and runs fn under its lock,
// translating an unknown id into a 404.
func (a *App) withDoc(c echo.Context, fn func(doc *post.Document)) error {
	if ok := a.registry.With(c.Param("id"), fn); !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "unknown document"})
	}
	return nil
}

func (a *App) handleCreateDocument(c echo.Context) error {
	id := a.registry.Create(post.NewDocument())
	return c.JSON(http.StatusCreated, map[string]string{"id": id})
}

func (a *App) handleGetDocument(c echo.Context) error {
	var p post.Post
	if err := a.withDoc(c, func(doc *post.Document) { p = doc.Post() }); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (a *App) handleDeleteDocument(c echo.Context) error {
	a.registry.Delete(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

func (a *App) handleSetMetadata(c echo.Context) error {
	var m post.Metadata
	if err := c.Bind(&m); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed metadata"})
	}
	return a.withDoc(c, func(doc *post.Document) { doc.SetMetadata(m) })
}

type blockTypeRequest struct {
	Type post.BlockType `json:"type"`
}

func (a *App) handleAppendBlock(c echo.Context) error {
	var req blockTypeRequest
	if err := c.Bind(&req); err != nil || !req.Type.Valid() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown block type"})
	}
	var blockID string
	if err := a.withDoc(c, func(doc *post.Document) { blockID = doc.Append(req.Type) }); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"blockId": blockID})
}

func (a *App) handleUpdateBlock(c echo.Context) error {
	var patch post.BlockPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed patch"})
	}
	blockID := c.Param("blockID")
	return a.withDoc(c, func(doc *post.Document) { doc.Update(blockID, patch) })
}

func (a *App) handleChangeBlockType(c echo.Context) error {
	var req blockTypeRequest
	if err := c.Bind(&req); err != nil || !req.Type.Valid() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown block type"})
	}
	blockID := c.Param("blockID")
	return a.withDoc(c, func(doc *post.Document) { doc.ChangeType(blockID, req.Type) })
}

type moveRequest struct {
	Direction string `json:"direction"` // "up" or "down"
}

func (a *App) handleMoveBlock(c echo.Context) error {
	var req moveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed move"})
	}
	var dir post.Direction
	switch req.Direction {
	case "up":
		dir = post.MoveUp
	case "down":
		dir = post.MoveDown
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "direction must be up or down"})
	}
	blockID := c.Param("blockID")
	return a.withDoc(c, func(doc *post.Document) { doc.Move(blockID, dir) })
}

func (a *App) handleRemoveBlock(c echo.Context) error {
	blockID := c.Param("blockID")
	return a.withDoc(c, func(doc *post.Document) { doc.Remove(blockID) })
}

func (a *App) handleSetReferences(c echo.Context) error {
	var refs []post.Reference
	if err := c.Bind(&refs); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed references"})
	}
	return a.withDoc(c, func(doc *post.Document) { doc.SetReferences(refs) })
}

type videoRequest struct {
	URL string `json:"url"`
}

type videoResponse struct {
	VideoID           string `json:"videoId"`
	Timestamp         int    `json:"timestamp,omitempty"`
	Thumbnail         string `json:"thumbnail"`
	FallbackThumbnail string `json:"fallbackThumbnail"`
}

// handleSetVideo resolves a pasted URL against the accepted shapes. A
// failed resolution is non-fatal and scoped to this block: the error
// message is returned inline and the rest of the document is untouched.
func (a *App) handleSetVideo(c echo.Context) error {
	var req videoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request"})
	}
	ref, err := youtube.Resolve(req.URL)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}
	blockID := c.Param("blockID")
	if err := a.withDoc(c, func(doc *post.Document) {
		doc.SetVideo(blockID, ref.VideoID, req.URL, ref.Timestamp)
	}); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, videoResponse{
		VideoID:           ref.VideoID,
		Timestamp:         ref.Timestamp,
		Thumbnail:         youtube.ThumbnailURL(ref.VideoID),
		FallbackThumbnail: youtube.FallbackThumbnailURL(ref.VideoID),
	})
}

// handlePreview renders the live preview fragment for the current
// document state.
func (a *App) handlePreview(c echo.Context) error {
	var p post.Post
	if err := a.withDoc(c, func(doc *post.Document) { p = doc.Post() }); err != nil {
		return err
	}
	return RenderHTML(c, a.renderer.Component(p))
}

type exportResponse struct {
	Events    []export.Progress `json:"events"`
	Stage     export.Stage      `json:"stage,omitempty"`
	Error     string            `json:"error,omitempty"`
	PostHTML  string            `json:"postHtml,omitempty"`
	IndexHTML string            `json:"indexHtml,omitempty"`
	Filename  string            `json:"filename,omitempty"`
}

// handleExport runs the pipeline and returns the collected progress
// events alongside either the artifacts or the failed stage.
func (a *App) handleExport(c echo.Context) error {
	var p post.Post
	if err := a.withDoc(c, func(doc *post.Document) { p = doc.Post() }); err != nil {
		return err
	}

	var events []export.Progress
	pipeline := export.Pipeline{
		Renderer: a.renderer,
		Progress: func(ev export.Progress) { events = append(events, ev) },
	}
	result, err := pipeline.Run(p)
	if err != nil {
		resp := exportResponse{Events: events, Error: err.Error()}
		var stageErr *export.StageError
		if errors.As(err, &stageErr) {
			resp.Stage = stageErr.Stage
			resp.Error = stageErr.Err.Error()
		}
		return c.JSON(http.StatusUnprocessableEntity, resp)
	}
	return c.JSON(http.StatusOK, exportResponse{
		Events:    events,
		PostHTML:  result.PageHTML,
		IndexHTML: result.IndexCardHTML,
		Filename:  result.Filename,
	})
}

// handleDownload serves the exported full page as an attachment named by
// the title's slug.
func (a *App) handleDownload(c echo.Context) error {
	var p post.Post
	if err := a.withDoc(c, func(doc *post.Document) { p = doc.Post() }); err != nil {
		return err
	}
	result, err := (&export.Pipeline{Renderer: a.renderer}).Run(p)
	if err != nil {
		var stageErr *export.StageError
		if errors.As(err, &stageErr) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{
				"stage": string(stageErr.Stage),
				"error": stageErr.Err.Error(),
			})
		}
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, result.Filename))
	return c.HTML(http.StatusOK, result.PageHTML)
}

func (a *App) handleDraftSave(c echo.Context) error {
	var p post.Post
	if err := a.withDoc(c, func(doc *post.Document) { p = doc.Post() }); err != nil {
		return err
	}
	if err := a.Drafts.Save(p); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (a *App) handleDraftLoad(c echo.Context) error {
	p, err := a.Drafts.Load()
	if err == ErrNoDraft {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no draft found"})
	}
	if err != nil {
		return err
	}
	if err := a.withDoc(c, func(doc *post.Document) { doc.Load(p) }); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (a *App) handleDraftClear(c echo.Context) error {
	if err := a.Drafts.Clear(); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
