package editor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/circlemark/circlemark/internal/config"
	"github.com/circlemark/circlemark/internal/effect"
	"github.com/circlemark/circlemark/internal/export"
	"github.com/circlemark/circlemark/internal/geom"
	"github.com/circlemark/circlemark/internal/imaging"
	"github.com/circlemark/circlemark/internal/region"
	"github.com/circlemark/circlemark/internal/render"
	"github.com/circlemark/circlemark/internal/session"
)

// Params configures a new Editor.
type Params struct {
	Log    *slog.Logger
	Config *config.Config
	Batch  *session.Batch
	Cache  *imaging.ImageCache

	// OutDir receives persisted images, record files and the session
	// summary. It is created on first use.
	OutDir string

	// Out receives command responses. Defaults to os.Stdout.
	Out io.Writer

	// Clock overrides the export timestamp source, mainly for tests.
	// Defaults to time.Now.
	Clock func() time.Time
}

// Editor runs the interactive labeling loop over a batch of images.
//
// It is single-threaded: one input line in, one response out. All region
// and status mutations go through the session entry under the batch
// cursor, so the editor holds only presentation state of its own: the
// view transform, the active effect mode, the in-progress drag and the
// pending label.
type Editor struct {
	log    *slog.Logger
	cfg    *config.Config
	batch  *session.Batch
	cache  *imaging.ImageCache
	comp   *effect.Compositor
	mapper geom.Mapper
	exp    *export.Exporter
	outDir string
	out    io.Writer

	view       geom.ViewState
	kind       region.Kind
	showLabels bool
	drag       *dragState
	pending    *pendingLabel
	quitting   bool
}

// dragState is an in-progress pointer drag in display coordinates.
type dragState struct {
	start image.Point
	last  image.Point
}

// pendingLabel is the modal label sub-state: the next input line becomes
// the label of the region with this id.
type pendingLabel struct {
	id int
}

// New creates an editor over the given batch. The first entry's image is
// fitted to the display budget.
func New(p Params) *Editor {
	log := p.Log
	if log == nil {
		log = slog.Default()
	}
	out := p.Out
	if out == nil {
		out = os.Stdout
	}

	exp := export.NewExporter()
	if p.Clock != nil {
		exp.Clock = p.Clock
	}

	comp := effect.NewCompositor()
	comp.HighlightStrength = p.Config.Effects.HighlightStrength
	comp.DarkenStrength = p.Config.Effects.DarkenStrength
	comp.BlurRadiusRatio = p.Config.Effects.BlurRadiusRatio
	comp.PixelateBlock = p.Config.Effects.PixelateBlock
	comp.OutlineThickness = p.Config.Effects.OutlineThickness
	comp.OutlineColor = p.Config.MarkerColor(region.KindOutline)

	e := &Editor{
		log:        log,
		cfg:        p.Config,
		batch:      p.Batch,
		cache:      p.Cache,
		comp:       comp,
		mapper:     geom.Mapper{MinZoom: p.Config.Zoom.Min, MaxZoom: p.Config.Zoom.Max},
		exp:        exp,
		outDir:     p.OutDir,
		out:        out,
		kind:       region.KindHighlight,
		showLabels: p.Config.ShowLabels,
		view:       geom.Identity(),
	}
	if ent := e.batch.Current(); ent != nil {
		e.view = e.fitView(ent)
	}
	return e
}

// Run reads commands line by line until quit or end of input, then writes
// the session summary. Blank lines are ignored unless a label is pending,
// where a blank line is the empty-label commit.
func (e *Editor) Run(ctx context.Context, in io.Reader) error {
	e.printHeader()

	scanner := bufio.NewScanner(in)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}
		line := scanner.Text()
		if e.pending == nil && strings.TrimSpace(line) == "" {
			continue
		}
		if err := e.Exec(line); err != nil {
			e.printf("error: %v\n", err)
		}
		if e.quitting {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("input error: %w", err)
	}

	return e.teardown(ctx)
}

// Exec runs one input line. While a label is pending the line is consumed
// verbatim as the label; otherwise it is parsed as a command. Malformed
// commands return an error; expected idle conditions, like undo on an
// empty store or a release without a drag, only print a notice.
func (e *Editor) Exec(line string) error {
	if e.pending != nil {
		e.commitLabel(line)
		return nil
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	if e.batch.Len() == 0 {
		return errors.New("no images loaded")
	}

	// Uppercase S is the save-and-advance shortcut, checked before the
	// case fold below collapses it into plain save.
	if fields[0] == "S" {
		return e.cmdSave(true)
	}

	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	// Drawing
	case "press":
		return e.cmdPress(args)
	case "drag":
		return e.cmdDrag(args)
	case "release":
		return e.cmdRelease(args)
	case "draw":
		return e.cmdDraw(args)

	// Regions
	case "mode":
		return e.cmdMode(args)
	case "1", "2", "3", "4", "5", "6", "7":
		return e.cmdMode([]string{cmd})
	case "undo", "u":
		return e.cmdUndo()
	case "list", "l":
		return e.cmdList()
	case "clear", "c":
		return e.cmdClear()
	case "edit", "e":
		return e.cmdEdit(args)
	case "labels", "t":
		return e.cmdLabels()

	// View
	case "zoom":
		return e.cmdZoom(args)
	case "pan":
		return e.cmdPan(args)
	case "reset", "r":
		return e.cmdReset()
	case "fit":
		return e.cmdFit()

	// Batch
	case "next", "d":
		return e.cmdNext()
	case "prev", "a":
		return e.cmdPrev()
	case "save", "s":
		return e.cmdSave(len(args) > 0 && strings.EqualFold(args[0], "next"))

	// Reporting
	case "snapshot":
		return e.cmdSnapshot(args)
	case "status":
		return e.cmdStatus()
	case "mem", "m":
		return e.cmdMem()
	case "help", "h":
		return e.cmdHelp()

	case "quit", "q":
		e.quitting = true
		return nil

	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// commitLabel consumes line as the pending region's label. An empty line
// commits the region unchanged, which for a freshly drawn region means an
// empty label.
func (e *Editor) commitLabel(line string) {
	p := e.pending
	e.pending = nil

	ent := e.batch.Current()
	if ent == nil {
		return
	}
	if line == "" {
		e.printf("region #%d committed\n", p.id)
		return
	}
	r, ok := ent.EditLabelByID(p.id, line)
	if !ok {
		e.printf("region #%d no longer exists\n", p.id)
		return
	}
	e.printf("region #%d labeled %q\n", r.ID, r.Label)
}

// teardown writes the batch summary files. It runs on quit and at end of
// input; failures are reported and returned but never keep the session
// from ending.
func (e *Editor) teardown(ctx context.Context) error {
	sum := e.batch.Summarize()

	if err := os.MkdirAll(e.outDir, 0o755); err != nil {
		err = fmt.Errorf("failed to create output directory: %w", err)
		e.printf("summary export failed: %v\n", err)
		return err
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		return writeSummaryFile(filepath.Join(e.outDir, "summary.csv"), func(w io.Writer) error {
			return export.WriteSummaryCSV(w, sum)
		})
	})
	g.Go(func() error {
		return writeSummaryFile(filepath.Join(e.outDir, "summary.json"), func(w io.Writer) error {
			return export.WriteSummaryJSON(w, sum)
		})
	})
	if err := g.Wait(); err != nil {
		e.log.Error("summary export failed", "error", err)
		e.printf("summary export failed: %v\n", err)
		return err
	}

	e.printf("session summary: %d images, %d edited, %d saved, %d regions\n",
		sum.TotalImages, sum.EditedImages, sum.SavedImages, sum.TotalRegions)
	e.printf("summary written to %s\n", e.outDir)
	return nil
}

func writeSummaryFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// frame renders the current image with all committed regions and, during
// a drag, the dashed preview circle.
func (e *Editor) frame() (image.Image, error) {
	ent := e.batch.Current()
	src, err := e.cache.Load(ent.Source.Path)
	if err != nil {
		return nil, err
	}
	frame, err := render.Compose(src, ent.Store.List(), e.comp, e.renderOpts())
	if err != nil {
		return nil, err
	}
	if e.drag != nil {
		center := e.view.ImagePoint(e.drag.start)
		radius := geom.Radius(center, e.view.ImagePoint(e.drag.last))
		frame = render.Preview(frame, center, radius, e.cfg.MarkerColor(e.kind))
	}
	return frame, nil
}

func (e *Editor) renderOpts() render.Options {
	return render.Options{
		ShowLabels: e.showLabels,
		Colors:     e.cfg.MarkerPalette(),
		RingWidth:  e.cfg.Effects.RingWidth,
	}
}

// fitView returns the view that fits the entry's image inside the display
// budget. The zoom floor can stop a very large image from fitting
// completely; the view is then as far out as the mapper allows.
func (e *Editor) fitView(ent *session.Entry) geom.ViewState {
	z := geom.FitZoom(ent.Source.Width, ent.Source.Height,
		e.cfg.Display.MaxWidth, e.cfg.Display.MaxHeight)
	return geom.ViewState{Zoom: e.mapper.ClampZoom(z)}
}

// printHeader announces the image under the cursor.
func (e *Editor) printHeader() {
	ent := e.batch.Current()
	if ent == nil {
		return
	}
	e.printf("image %d/%d: %s (%dx%d) %s, %d regions\n",
		e.batch.Index()+1, e.batch.Len(), ent.Source.Name,
		ent.Source.Width, ent.Source.Height, ent.Status(), ent.Store.Len())
}

func (e *Editor) printf(format string, args ...interface{}) {
	fmt.Fprintf(e.out, format, args...)
}
