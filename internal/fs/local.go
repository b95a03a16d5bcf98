package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/kk-code-lab/rpane/internal/location"
	"golang.org/x/text/unicode/norm"
)

// LocalProvider reads and mutates the host filesystem.
type LocalProvider struct {
	goos    string
	homeDir func() (string, error)
}

// NewLocalProvider constructs a provider for the running OS.
func NewLocalProvider() *LocalProvider {
	return &LocalProvider{goos: runtime.GOOS, homeDir: os.UserHomeDir}
}

func (p *LocalProvider) native(loc location.Location) string {
	return loc.Native(p.goos)
}

func (p *LocalProvider) List(ctx context.Context, loc location.Location) ([]Item, error) {
	dirPath := p.native(loc)
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, pathError("list", loc, err)
	}

	items := make([]Item, 0, len(entries))
	for i, e := range entries {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		rawName := e.Name()
		fullPath := filepath.Join(dirPath, rawName)
		if ShouldHideFromListing(fullPath, rawName) {
			continue
		}

		info, err := e.Info()
		if err != nil {
			continue
		}
		items = append(items, p.itemFromInfo(loc.Join(norm.NFC.String(rawName)), fullPath, info))
	}

	SortItems(items)
	return items, nil
}

func (p *LocalProvider) itemFromInfo(loc location.Location, fullPath string, info os.FileInfo) Item {
	name := norm.NFC.String(info.Name())
	isDir := info.IsDir()
	isSymlink := info.Mode()&os.ModeSymlink != 0

	// Symlinks take the kind of their target.
	if isSymlink {
		if target, err := os.Stat(fullPath); err == nil {
			isDir = target.IsDir()
		}
	}

	item := Item{
		Name:     name,
		Kind:     KindFile,
		Modified: info.ModTime(),
		FullPath: loc,
		Hidden:   IsHidden(fullPath, name),
		Symlink:  isSymlink,
	}
	if isDir {
		item.Kind = KindDirectory
	} else {
		item.Size = info.Size()
		item.HasSize = true
		item.Extension = extensionOf(name)
	}
	return item
}

func (p *LocalProvider) Stat(_ context.Context, loc location.Location) (Item, error) {
	fullPath := p.native(loc)
	info, err := os.Lstat(fullPath)
	if err != nil {
		return Item{}, pathError("stat", loc, err)
	}
	item := p.itemFromInfo(loc, fullPath, info)
	if loc.IsRoot() {
		item.Name = loc.Base()
		item.Kind = KindDrive
	}
	return item, nil
}

func (p *LocalProvider) Drives(_ context.Context) ([]Drive, error) {
	return hostDrives(), nil
}

func (p *LocalProvider) Home() (location.Location, error) {
	home, err := p.homeDir()
	if err != nil {
		return "", pathError("home", "", err)
	}
	return location.Normalize(home), nil
}

// SpecialFolders returns the home folder and those well-known folders
// beneath it that exist.
func (p *LocalProvider) SpecialFolders() []Place {
	home, err := p.Home()
	if err != nil {
		return nil
	}
	places := []Place{{Name: "Home", Location: home}}
	for _, name := range specialFolderNames {
		loc := home.Join(name)
		if info, err := os.Stat(p.native(loc)); err == nil && info.IsDir() {
			places = append(places, Place{Name: name, Location: loc})
		}
	}
	return places
}

func (p *LocalProvider) Mutate(ctx context.Context, op Op) error {
	var err error
	switch op.Kind {
	case OpCopy:
		err = p.copy(ctx, op.Source, op.Target)
	case OpMove:
		err = p.move(ctx, op.Source, op.Target)
	case OpDelete:
		if op.Source.IsRoot() || op.Source.IsZero() {
			return &OperationError{Op: op.Kind, Path: op.Source, Reason: "refusing to delete a root"}
		}
		err = os.RemoveAll(p.native(op.Source))
	case OpCreateDirectory:
		err = os.MkdirAll(p.native(op.Target), 0o755)
	default:
		return &OperationError{Op: op.Kind, Path: op.Subject(), Reason: "unsupported operation"}
	}
	if err != nil {
		var opErr *OperationError
		if errors.As(err, &opErr) {
			return err
		}
		return operationError(op.Kind, op.Subject(), err)
	}
	return nil
}

func (p *LocalProvider) checkDestination(kind OpKind, src, dst location.Location) error {
	if src == dst || src.Contains(dst) {
		return &OperationError{Op: kind, Path: src, Reason: "destination is inside source"}
	}
	if _, err := os.Lstat(p.native(dst)); err == nil {
		return &OperationError{Op: kind, Path: dst, Reason: "destination already exists"}
	}
	return nil
}

func (p *LocalProvider) copy(ctx context.Context, src, dst location.Location) error {
	if err := p.checkDestination(OpCopy, src, dst); err != nil {
		return err
	}
	srcPath, dstPath := p.native(src), p.native(dst)
	info, err := os.Stat(srcPath)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return copyFile(srcPath, dstPath, info.Mode())
	}

	return filepath.WalkDir(srcPath, func(path string, d iofs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(srcPath, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dstPath, rel)
		info, err := d.Info()
		if err != nil {
			return err
		}
		switch {
		case d.IsDir():
			return os.MkdirAll(target, info.Mode().Perm()|0o700)
		case info.Mode()&os.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		default:
			return copyFile(path, target, info.Mode())
		}
	})
}

func copyFile(src, dst string, mode os.FileMode) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode.Perm())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return nil
}

func (p *LocalProvider) move(ctx context.Context, src, dst location.Location) error {
	if err := p.checkDestination(OpMove, src, dst); err != nil {
		return err
	}
	err := os.Rename(p.native(src), p.native(dst))
	if err == nil {
		return nil
	}
	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) || errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) {
		return err
	}

	// Cross-device rename: copy then remove.
	if err := p.copy(ctx, src, dst); err != nil {
		return err
	}
	return os.RemoveAll(p.native(src))
}
