package editor

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/circlemark/circlemark/internal/debug"
	"github.com/circlemark/circlemark/internal/geom"
	"github.com/circlemark/circlemark/internal/imaging"
	"github.com/circlemark/circlemark/internal/region"
	"github.com/circlemark/circlemark/internal/render"
)

// parseInts parses exactly n integer arguments.
func parseInts(args []string, n int) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("want %d coordinates, got %d", n, len(args))
	}
	vals := make([]int, n)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("bad coordinate %q", a)
		}
		vals[i] = v
	}
	return vals, nil
}

// === Drawing ===

func (e *Editor) cmdPress(args []string) error {
	v, err := parseInts(args, 2)
	if err != nil {
		return err
	}
	p := image.Pt(v[0], v[1])
	e.drag = &dragState{start: p, last: p}
	c := e.view.ImagePoint(p)
	e.printf("drag started at image (%d, %d)\n", c.X, c.Y)
	return nil
}

func (e *Editor) cmdDrag(args []string) error {
	v, err := parseInts(args, 2)
	if err != nil {
		return err
	}
	if e.drag == nil {
		e.printf("no active drag\n")
		return nil
	}
	e.drag.last = image.Pt(v[0], v[1])
	center := e.view.ImagePoint(e.drag.start)
	radius := geom.Radius(center, e.view.ImagePoint(e.drag.last))
	e.printf("preview: center (%d, %d) radius %d\n", center.X, center.Y, radius)
	return nil
}

func (e *Editor) cmdRelease(args []string) error {
	v, err := parseInts(args, 2)
	if err != nil {
		return err
	}
	if e.drag == nil {
		e.printf("no active drag\n")
		return nil
	}
	start := e.drag.start
	e.drag = nil
	e.commitCircle(start, image.Pt(v[0], v[1]))
	return nil
}

func (e *Editor) cmdDraw(args []string) error {
	v, err := parseInts(args, 4)
	if err != nil {
		return err
	}
	e.drag = nil
	e.commitCircle(image.Pt(v[0], v[1]), image.Pt(v[2], v[3]))
	return nil
}

// commitCircle appends the dragged circle, resolved to image coordinates
// under the current view, and opens the label sub-state for it.
func (e *Editor) commitCircle(startDisp, endDisp image.Point) {
	ent := e.batch.Current()
	center := e.view.ImagePoint(startDisp)
	radius := geom.Radius(center, e.view.ImagePoint(endDisp))
	r := ent.Append(center, radius, e.kind, "")
	e.pending = &pendingLabel{id: r.ID}
	e.printf("region #%d %s center (%d, %d) radius %d\n",
		r.ID, r.Kind, r.Center.X, r.Center.Y, r.Radius)
	e.printf("label: ")
}

// === Regions ===

func (e *Editor) cmdMode(args []string) error {
	if len(args) == 0 {
		e.printf("mode: %s\n", e.kind)
		for i, k := range region.Kinds() {
			e.printf("  %d  %s\n", i+1, k)
		}
		return nil
	}
	k, ok := region.ParseKind(args[0])
	if !ok {
		return fmt.Errorf("unknown effect kind: %s", args[0])
	}
	e.kind = k
	e.printf("mode: %s\n", e.kind)
	return nil
}

func (e *Editor) cmdUndo() error {
	r, ok := e.batch.Current().Undo()
	if !ok {
		e.printf("nothing to undo\n")
		return nil
	}
	e.printf("removed #%d %q\n", r.ID, r.Label)
	return nil
}

func (e *Editor) cmdList() error {
	ent := e.batch.Current()
	regions := ent.Store.List()
	if len(regions) == 0 {
		e.printf("no regions on %s\n", ent.Source.Name)
		return nil
	}
	e.printf("%d regions on %s:\n", len(regions), ent.Source.Name)
	for _, r := range regions {
		e.printf("  #%d [%s] center (%d, %d) radius %d %q\n",
			r.ID, r.Kind.Tag(), r.Center.X, r.Center.Y, r.Radius, r.Label)
	}
	return nil
}

func (e *Editor) cmdClear() error {
	n := e.batch.Current().Clear()
	e.printf("cleared %d regions\n", n)
	return nil
}

// cmdEdit opens the label sub-state for an existing region: an explicit
// id when given, otherwise whatever the configured edit policy targets.
func (e *Editor) cmdEdit(args []string) error {
	ent := e.batch.Current()
	regions := ent.Store.List()
	if len(regions) == 0 {
		e.printf("no regions to edit\n")
		return nil
	}

	var target region.Region
	switch {
	case len(args) > 0:
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("bad region id %q", args[0])
		}
		found := false
		for _, r := range regions {
			if r.ID == id {
				target, found = r, true
				break
			}
		}
		if !found {
			e.printf("no region #%d\n", id)
			return nil
		}
	case e.cfg.LabelEditTarget == "id":
		return errors.New("edit needs a region id")
	default:
		target = regions[len(regions)-1]
	}

	e.pending = &pendingLabel{id: target.ID}
	e.printf("editing #%d %q\n", target.ID, target.Label)
	e.printf("label: ")
	return nil
}

func (e *Editor) cmdLabels() error {
	e.showLabels = !e.showLabels
	if e.showLabels {
		e.printf("labels on\n")
	} else {
		e.printf("labels off\n")
	}
	return nil
}

// === View ===

func (e *Editor) cmdZoom(args []string) error {
	if len(args) == 0 {
		return errors.New("zoom needs a direction: in or out")
	}
	var factor float64
	switch strings.ToLower(args[0]) {
	case "in":
		factor = e.cfg.Zoom.Step
	case "out":
		factor = 1 / e.cfg.Zoom.Step
	default:
		return fmt.Errorf("bad zoom direction %q", args[0])
	}

	cursor := image.Pt(e.cfg.Display.MaxWidth/2, e.cfg.Display.MaxHeight/2)
	if len(args) > 1 {
		v, err := parseInts(args[1:], 2)
		if err != nil {
			return err
		}
		cursor = image.Pt(v[0], v[1])
	}

	e.view = e.mapper.ZoomAt(e.view, cursor, factor)
	e.printf("zoom %.2f\n", e.view.Zoom)
	return nil
}

func (e *Editor) cmdPan(args []string) error {
	v, err := parseInts(args, 2)
	if err != nil {
		return err
	}
	e.view = e.view.Shifted(float64(v[0]), float64(v[1]))
	e.printf("pan (%.0f, %.0f)\n", e.view.PanX, e.view.PanY)
	return nil
}

func (e *Editor) cmdReset() error {
	e.view = geom.Identity()
	e.printf("view reset\n")
	return nil
}

func (e *Editor) cmdFit() error {
	e.view = e.fitView(e.batch.Current())
	e.printf("fit zoom %.2f\n", e.view.Zoom)
	return nil
}

// === Batch ===

func (e *Editor) cmdNext() error {
	if !e.batch.Next() {
		e.printf("already at last image\n")
		return nil
	}
	e.enterCurrent()
	return nil
}

func (e *Editor) cmdPrev() error {
	if !e.batch.Prev() {
		e.printf("already at first image\n")
		return nil
	}
	e.enterCurrent()
	return nil
}

// enterCurrent resets per-screen state after the cursor moved. Stores and
// statuses are untouched; only the view and drag belong to the screen.
func (e *Editor) enterCurrent() {
	e.drag = nil
	e.view = e.fitView(e.batch.Current())
	e.printHeader()
}

func (e *Editor) cmdSave(advance bool) error {
	ent := e.batch.Current()
	p := &filePersister{
		cache:  e.cache,
		comp:   e.comp,
		exp:    e.exp,
		opts:   e.renderOpts(),
		outDir: e.outDir,
	}
	if err := e.batch.Persist(ent, p); err != nil {
		e.log.Error("save failed", "image", ent.Source.Name, "error", err)
		e.printf("save failed: %v\n", err)
		return nil
	}
	e.printf("saved %s to %s\n", ent.Source.Name, e.outDir)
	if advance {
		return e.cmdNext()
	}
	return nil
}

// === Reporting ===

func (e *Editor) cmdSnapshot(args []string) error {
	if len(args) != 1 {
		return errors.New("snapshot needs a file path")
	}
	frame, err := e.frame()
	if err != nil {
		return fmt.Errorf("failed to render frame: %w", err)
	}
	vp := render.Viewport(frame, e.view, e.cfg.Display.MaxWidth, e.cfg.Display.MaxHeight)
	if err := imaging.SaveImage(args[0], vp); err != nil {
		return err
	}
	e.printf("snapshot written to %s\n", args[0])
	return nil
}

func (e *Editor) cmdStatus() error {
	for i, ent := range e.batch.Entries() {
		marker := " "
		if i == e.batch.Index() {
			marker = ">"
		}
		e.printf("%s %d/%d %s %s, %d regions\n",
			marker, i+1, e.batch.Len(), ent.Source.Name, ent.Status(), ent.Store.Len())
	}
	e.printf("view: zoom %.2f pan (%.0f, %.0f), mode %s\n",
		e.view.Zoom, e.view.PanX, e.view.PanY, e.kind)
	return nil
}

func (e *Editor) cmdMem() error {
	total := 0
	for _, ent := range e.batch.Entries() {
		total += ent.Store.Len()
	}
	e.printf("%s\n", debug.ReadMemory())
	e.printf("%d images, %d regions, %d decoded images retained\n",
		e.batch.Len(), total, e.cache.Len())
	return nil
}

const helpText = `drawing
  press X Y / drag X Y / release X Y   drag out a circle (display coords)
  draw X0 Y0 X1 Y1                     one-shot circle from center to edge
  <line>                               after a draw or edit: the label (empty line keeps it)
regions
  mode NAME|1..7                       effect for new regions (mode alone lists choices)
  undo | u                             remove the newest region
  list | l                             list regions on this image
  clear | c                            remove all regions on this image
  edit [ID] | e                        rewrite a label
  labels | t                           toggle label chips
view
  zoom in|out [X Y]                    zoom toward a display point
  pan DX DY                            shift the view
  reset | r                            back to 1:1
  fit                                  fit the image to the display
batch
  next | d / prev | a                  move between images
  save | s [next]                      write annotated image + records, optionally advance
  snapshot PATH                        write the current display frame
session
  status                               batch overview
  mem | m                              memory usage
  help | h                             this text
  quit | q                             summary export and exit
`

func (e *Editor) cmdHelp() error {
	e.printf("%s", helpText)
	return nil
}
