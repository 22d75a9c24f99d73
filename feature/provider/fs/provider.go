package fs

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"photo-sync/core/reconcile"
	"photo-sync/feature/provider"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Provider reads a <root>/<YYYY-MM-DD>/<user>/<photo> tree.
type Provider struct {
	fs      afero.Fs
	root    string
	workers int
	logger  *zap.Logger
}

// NewProvider creates a provider scanning root on fsys.
// Use afero.NewOsFs() for the local disk.
func NewProvider(fsys afero.Fs, root string, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{
		fs:      fsys,
		root:    root,
		workers: runtime.NumCPU(),
		logger:  logger,
	}
}

// WithWorkers bounds how many photos are hashed concurrently.
func (p *Provider) WithWorkers(n int) *Provider {
	if n > 0 {
		p.workers = n
	}
	return p
}

// Name implements reconcile.Provider.
func (p *Provider) Name() string {
	return "fs:" + p.root
}

type photoFile struct {
	day  reconcile.Day
	user reconcile.UserLabel
	path string
}

// Snapshot implements reconcile.Provider. Hidden entries and plain files at
// the day and user levels are skipped, as are folders inside a user folder.
func (p *Provider) Snapshot(ctx context.Context) (reconcile.Snapshot, error) {
	builder := provider.NewBuilder()
	var files []photoFile

	days, err := p.dirs(p.root)
	if err != nil {
		return nil, err
	}

	for _, dayName := range days {
		dayPath := filepath.Join(p.root, dayName)
		day, err := provider.ParseDayFolder(dayName)
		if err != nil {
			return nil, &ScanError{Kind: KindParseDate, Path: dayPath, Err: err}
		}
		builder.AddDay(day)

		users, err := p.dirs(dayPath)
		if err != nil {
			return nil, err
		}
		for _, userName := range users {
			user := reconcile.UserLabel(userName)
			userPath := filepath.Join(dayPath, userName)
			builder.AddUser(day, user)

			names, err := p.files(userPath)
			if err != nil {
				return nil, err
			}
			for _, name := range names {
				files = append(files, photoFile{day: day, user: user, path: filepath.Join(userPath, name)})
			}
		}
	}

	ids, err := p.hashAll(ctx, files)
	if err != nil {
		return nil, err
	}
	for i, f := range files {
		builder.AddPhoto(f.day, f.user, ids[i])
	}

	snapshot := builder.Snapshot()
	p.logger.Debug("Scanned photo tree",
		zap.String("root", p.root),
		zap.Int("days", len(snapshot)),
		zap.Int("photos", len(files)),
	)
	return snapshot, nil
}

func (p *Provider) hashAll(ctx context.Context, files []photoFile) ([]reconcile.PhotoID, error) {
	ids := make([]reconcile.PhotoID, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			id, err := p.hashFile(f.path)
			if err != nil {
				return err
			}
			ids[i] = id
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (p *Provider) hashFile(path string) (reconcile.PhotoID, error) {
	f, err := p.fs.Open(path)
	if err != nil {
		return "", &ScanError{Kind: KindReadFile, Path: path, Err: err}
	}
	defer f.Close()

	id, err := provider.HashPhoto(f)
	if err != nil {
		return "", &ScanError{Kind: KindReadFile, Path: path, Err: err}
	}
	return id, nil
}

// dirs returns the visible sub-directory names of path, sorted.
func (p *Provider) dirs(path string) ([]string, error) {
	return p.entries(path, true)
}

// files returns the visible regular file names of path, sorted.
func (p *Provider) files(path string) ([]string, error) {
	return p.entries(path, false)
}

func (p *Provider) entries(path string, wantDirs bool) ([]string, error) {
	infos, err := afero.ReadDir(p.fs, path)
	if err != nil {
		return nil, &ScanError{Kind: KindReadDir, Path: path, Err: err}
	}

	var names []string
	for _, info := range infos {
		name := info.Name()
		if provider.IsHidden(name) {
			continue
		}
		if info.Mode()&os.ModeSymlink != 0 {
			// Follow links so that linked user folders and photos count
			info, err = p.fs.Stat(filepath.Join(path, name))
			if err != nil {
				return nil, &ScanError{Kind: KindDirEntry, Path: filepath.Join(path, name), Err: err}
			}
		}
		if wantDirs && info.IsDir() || !wantDirs && info.Mode().IsRegular() {
			names = append(names, name)
		}
	}
	return names, nil
}
