package editor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/circlemark/circlemark/internal/effect"
	"github.com/circlemark/circlemark/internal/export"
	"github.com/circlemark/circlemark/internal/imaging"
	"github.com/circlemark/circlemark/internal/render"
	"github.com/circlemark/circlemark/internal/session"
)

// filePersister writes one entry's outputs into the session output
// directory: the annotated image under its original name, plus the region
// records as <name>.json and <name>.txt.
type filePersister struct {
	cache  *imaging.ImageCache
	comp   *effect.Compositor
	exp    *export.Exporter
	opts   render.Options
	outDir string
}

func (p *filePersister) Persist(snap session.Snapshot) error {
	src, err := p.cache.Load(snap.Source.Path)
	if err != nil {
		return err
	}
	frame, err := render.Compose(src, snap.Regions, p.comp, p.opts)
	if err != nil {
		return fmt.Errorf("failed to compose output image: %w", err)
	}
	if err := imaging.SaveImage(filepath.Join(p.outDir, snap.Source.Name), frame); err != nil {
		return err
	}

	recs := p.exp.Records(snap)
	base := strings.TrimSuffix(snap.Source.Name, filepath.Ext(snap.Source.Name))

	if err := writeRecordFile(filepath.Join(p.outDir, base+".json"), recs, export.WriteRecords); err != nil {
		return err
	}
	return writeRecordFile(filepath.Join(p.outDir, base+".txt"), recs, export.WriteTable)
}

func writeRecordFile(path string, recs []export.Record, write func(io.Writer, []export.Record) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	if err := write(f, recs); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
