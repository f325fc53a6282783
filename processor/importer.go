package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"plantflow/services"
	"sort"
	"strings"
	"time"
)

type uploader interface {
	Ingest(ctx context.Context, filename string, src io.Reader) (*services.UploadResult, error)
}

type importer struct {
	dir          string
	processedDir string
	failedDir    string
	up           uploader
	now          func() time.Time
}

type importSummary struct {
	Imported int
	Failed   int
}

// pending lists the .xlsx files in dir, oldest first, so that when several
// files land on the same day the newest one ends up as the day's batch.
func (im *importer) pending() ([]string, error) {
	entries, err := os.ReadDir(im.dir)
	if err != nil {
		return nil, err
	}

	type item struct {
		path string
		mod  time.Time
	}
	var items []item
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".xlsx") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, err
		}
		items = append(items, item{path: filepath.Join(im.dir, e.Name()), mod: info.ModTime()})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].mod.Before(items[j].mod) })

	paths := make([]string, len(items))
	for i, it := range items {
		paths[i] = it.path
	}
	return paths, nil
}

func (im *importer) run(ctx context.Context) (importSummary, error) {
	var sum importSummary
	files, err := im.pending()
	if err != nil {
		return sum, err
	}
	if len(files) == 0 {
		log.Printf("[Import] No files in %s", im.dir)
		return sum, nil
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if err := im.importFile(ctx, path); err != nil {
			sum.Failed++
			log.Printf("[Import] %s failed: %v", filepath.Base(path), err)
			if mvErr := im.move(path, im.failedDir); mvErr != nil {
				return sum, mvErr
			}
			continue
		}
		sum.Imported++
		if err := im.move(path, im.processedDir); err != nil {
			return sum, err
		}
	}
	return sum, nil
}

func (im *importer) importFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := im.up.Ingest(ctx, filepath.Base(path), f)
	if err != nil {
		return err
	}
	log.Printf("[Import] %s stored as batch %d (%s), %d rows", filepath.Base(path), res.BatchID, res.UploadDate, res.RowCount)
	return nil
}

// move relocates a handled file, prefixing a timestamp when the name is taken.
func (im *importer) move(path, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	dest := filepath.Join(dir, filepath.Base(path))
	if _, err := os.Stat(dest); err == nil {
		dest = filepath.Join(dir, fmt.Sprintf("%d_%s", im.now().Unix(), filepath.Base(path)))
	}
	return os.Rename(path, dest)
}
