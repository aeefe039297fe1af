package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/Chris91ss/Proper-Trench-Coats-App/model"
)

// codec turns a dataset into one on-disk representation and back. Each
// file-backed kind is the same FileStore with a different codec plugged in.
type codec interface {
	encode(w io.Writer, items []model.Item) error
	decode(r io.Reader) ([]model.Item, error)
}

// FileStore keeps the whole dataset in memory, ordered by ID, and rewrites
// the backing file after every mutation. Records re-created by an undo get
// their old ID back and therefore their old position in List.
type FileStore struct {
	path  string
	codec codec
	items []model.Item
}

// NewTextStore opens a store over a pipe-delimited line-record file.
func NewTextStore(path string) (*FileStore, error) {
	return openFileStore(path, textCodec{})
}

// NewCSVStore opens a store over a CSV file with a header row.
func NewCSVStore(path string) (*FileStore, error) {
	return openFileStore(path, csvCodec{})
}

// NewHTMLStore opens a store over an HTML table document.
func NewHTMLStore(path string) (*FileStore, error) {
	return openFileStore(path, htmlCodec{})
}

func openFileStore(path string, c codec) (*FileStore, error) {
	s := &FileStore{path: path, codec: c}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		// Write the empty dataset now so an unusable location fails
		// construction instead of the first mutation.
		if err := s.flush(); err != nil {
			return nil, err
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open store file: %w", err)
	}
	defer f.Close()

	items, err := c.decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	s.items = items
	return s, nil
}

func (s *FileStore) Create(item model.Item) (model.Item, error) {
	pos := sort.Search(len(s.items), func(i int) bool { return s.items[i].ID >= item.ID })
	if item.ID == 0 {
		item.ID = s.nextID()
		pos = len(s.items)
	} else if pos < len(s.items) && s.items[pos].ID == item.ID {
		return model.Item{}, ErrDuplicateID
	}

	s.items = append(s.items, model.Item{})
	copy(s.items[pos+1:], s.items[pos:])
	s.items[pos] = item

	if err := s.flush(); err != nil {
		s.items = append(s.items[:pos], s.items[pos+1:]...)
		return model.Item{}, err
	}
	return item, nil
}

func (s *FileStore) Read(id int64) (model.Item, error) {
	pos := s.index(id)
	if pos < 0 {
		return model.Item{}, ErrNotFound
	}
	return s.items[pos], nil
}

func (s *FileStore) Update(id int64, item model.Item) error {
	pos := s.index(id)
	if pos < 0 {
		return ErrNotFound
	}
	item.ID = id
	prev := s.items[pos]
	s.items[pos] = item
	if err := s.flush(); err != nil {
		s.items[pos] = prev
		return err
	}
	return nil
}

func (s *FileStore) Delete(id int64) error {
	pos := s.index(id)
	if pos < 0 {
		return ErrNotFound
	}
	prev := s.items[pos]
	s.items = append(s.items[:pos], s.items[pos+1:]...)
	if err := s.flush(); err != nil {
		s.items = append(s.items, model.Item{})
		copy(s.items[pos+1:], s.items[pos:])
		s.items[pos] = prev
		return err
	}
	return nil
}

func (s *FileStore) List() ([]model.Item, error) {
	return append([]model.Item(nil), s.items...), nil
}

// Close is a no-op: the file handle is only held during flush.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) index(id int64) int {
	pos := sort.Search(len(s.items), func(i int) bool { return s.items[i].ID >= id })
	if pos < len(s.items) && s.items[pos].ID == id {
		return pos
	}
	return -1
}

func (s *FileStore) nextID() int64 {
	if len(s.items) == 0 {
		return 1
	}
	return s.items[len(s.items)-1].ID + 1
}

func (s *FileStore) flush() error {
	return writeFileAtomic(s.path, func(w io.Writer) error {
		return s.codec.encode(w, s.items)
	})
}

// writeFileAtomic writes via a temp file in the same directory, fsyncs and
// renames over path, so a crash mid-write leaves the previous contents.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
