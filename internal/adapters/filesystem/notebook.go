package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"folio/internal/domain"
	"folio/internal/logging"
	"folio/internal/ports"
)

// IndexFile holds a folder's own intro and metadata. It is not listed
// as a file.
const IndexFile = "index.md"

// readWorkers bounds the number of notes read concurrently
const readWorkers = 8

// Notebook implements ports.TreeSource over a directory of markdown
// notes: directories are folders and *.md files are files.
type Notebook struct {
	root     string
	registry *IDRegistry
	log      logrus.FieldLogger
}

// Ensure Notebook implements TreeSource
var _ ports.TreeSource = (*Notebook)(nil)

// NewNotebook creates a notebook rooted at root. A nil registry keeps
// ids in memory only.
func NewNotebook(root string, registry *IDRegistry, log logrus.FieldLogger) *Notebook {
	// Expand ~ to home directory
	if strings.HasPrefix(root, "~") {
		home, _ := os.UserHomeDir()
		root = filepath.Join(home, root[1:])
	}
	if registry == nil {
		registry, _ = LoadIDRegistry(nil)
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Notebook{root: root, registry: registry, log: log}
}

// Root returns the notebook directory
func (n *Notebook) Root() string {
	return n.root
}

// readJob is a note whose contents are read after the scan
type readJob struct {
	node   *domain.Node
	path   string
	folder bool
}

// Load scans the notebook and returns its tree. Directory structure is
// read first, then note contents are read in parallel.
func (n *Notebook) Load() (*domain.Node, error) {
	info, err := os.Stat(n.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read notebook: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("notebook %s is not a directory", n.root)
	}

	seen := make(map[string]bool)
	var jobs []readJob

	root, err := n.scanDir(n.root, ".", seen, &jobs)
	if err != nil {
		return nil, err
	}

	var g errgroup.Group
	g.SetLimit(readWorkers)
	for _, job := range jobs {
		g.Go(func() error {
			return n.readNote(job)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	n.registry.Retain(seen)
	if err := n.registry.Save(); err != nil {
		n.log.WithError(err).Warn("node ids will not survive a restart")
	}

	n.log.WithFields(logrus.Fields{
		"root":  n.root,
		"nodes": domain.Count(root),
	}).Debug("notebook loaded")
	return root, nil
}

func (n *Notebook) scanDir(dir, rel string, seen map[string]bool, jobs *[]readJob) (*domain.Node, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	folder := &domain.Node{
		ID:   n.registry.ID(rel),
		Type: domain.NodeTypeFolder,
		Name: DisplayName(filepath.Base(dir)),
		Path: dir,
	}
	seen[rel] = true

	var dirs, files []fs.DirEntry
	indexed := false
	for _, entry := range entries {
		name := entry.Name()
		switch {
		case strings.HasPrefix(name, "."):
			continue
		case entry.IsDir():
			dirs = append(dirs, entry)
		case strings.EqualFold(name, IndexFile):
			if indexed {
				continue
			}
			indexed = true
			*jobs = append(*jobs, readJob{node: folder, path: filepath.Join(dir, name), folder: true})
		case strings.EqualFold(filepath.Ext(name), ".md"):
			files = append(files, entry)
		}
	}

	sortEntries(dirs)
	sortEntries(files)

	for _, entry := range dirs {
		child, err := n.scanDir(filepath.Join(dir, entry.Name()), filepath.Join(rel, entry.Name()), seen, jobs)
		if err != nil {
			return nil, err
		}
		folder.Children = append(folder.Children, child)
	}

	for _, entry := range files {
		childRel := filepath.Join(rel, entry.Name())
		file := &domain.Node{
			ID:   n.registry.ID(childRel),
			Type: domain.NodeTypeFile,
			Name: DisplayName(entry.Name()),
			Path: filepath.Join(dir, entry.Name()),
		}
		seen[childRel] = true
		folder.Children = append(folder.Children, file)
		*jobs = append(*jobs, readJob{node: file, path: file.Path})
	}

	return folder, nil
}

// readNote fills a node from its note. Each job owns its node, so jobs
// can run concurrently.
func (n *Notebook) readNote(job readJob) error {
	content, err := os.ReadFile(job.path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", job.path, err)
	}

	fm, body, err := ParseFrontmatter(string(content))
	if err != nil {
		n.log.WithError(err).WithField("path", job.path).Warn("ignoring frontmatter")
		fm = nil
	}
	if fm == nil {
		fm = &Frontmatter{}
	}

	node := job.node
	switch {
	case fm.Title != "":
		node.Name = fm.Title
	case !job.folder:
		if title := HeadingTitle([]byte(body)); title != "" {
			node.Name = title
		}
	}

	node.CreatedAt = fm.Created
	if node.CreatedAt == "" && !job.folder {
		if info, err := os.Stat(job.path); err == nil {
			node.CreatedAt = info.ModTime().Format(time.DateOnly)
		}
	}

	if job.folder {
		node.Intro = fm.Intro
		if node.Intro == "" {
			node.Intro = strings.TrimSpace(body)
		}
		return nil
	}

	node.Intro = fm.Intro
	node.Body = body
	return nil
}

// sortEntries orders entries by name the way people read them: case
// folded, with digit runs compared as numbers.
func sortEntries(entries []fs.DirEntry) {
	c := collate.New(language.Und, collate.IgnoreCase, collate.Numeric)
	sort.SliceStable(entries, func(i, j int) bool {
		return c.CompareString(entries[i].Name(), entries[j].Name()) < 0
	})
}
