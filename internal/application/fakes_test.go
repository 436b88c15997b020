package application

import (
	"folio/internal/domain"
	"folio/internal/ports"
)

type memBlob struct {
	data   map[string][]byte
	getErr error
	putErr error
	puts   int
}

func newMemBlob() *memBlob {
	return &memBlob{data: make(map[string][]byte)}
}

func (m *memBlob) Get(key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, ports.ErrBlobNotFound
	}
	return v, nil
}

func (m *memBlob) Put(key string, value []byte) error {
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memBlob) Close() error { return nil }

// fakePane is a scroll pane of content rows shown through a viewport
type fakePane struct {
	offset   int
	viewport int
	content  int
}

func (p *fakePane) Offset() int { return p.offset }

func (p *fakePane) SetOffset(offset int) {
	offset = min(offset, p.content-p.viewport)
	p.offset = max(offset, 0)
}

func (p *fakePane) ViewportHeight() int { return p.viewport }
func (p *fakePane) ContentHeight() int  { return p.content }

type fakeBars struct {
	panes        map[string]*fakePane
	recalculated int
	onRecalc     func()
}

func newFakeBars() *fakeBars {
	return &fakeBars{panes: make(map[string]*fakePane)}
}

func (b *fakeBars) Mount(container string) {
	if _, ok := b.panes[container]; !ok {
		b.panes[container] = &fakePane{}
	}
}

func (b *fakeBars) Unmount(container string) {
	delete(b.panes, container)
}

func (b *fakeBars) Recalculate(container string) {
	b.recalculated++
	if b.onRecalc != nil {
		b.onRecalc()
	}
}

func (b *fakeBars) InstanceFor(container string) (ports.ScrollPane, bool) {
	p, ok := b.panes[container]
	if !ok {
		return nil, false
	}
	return p, true
}

// rowTable locates rows by index in a fixed list, one line each
type rowTable map[int]int

func (r rowTable) RowBounds(id int) (int, int, bool) {
	top, ok := r[id]
	return top, 1, ok
}

// displayLocator locates rows in the session's current display
type displayLocator struct {
	session *Session
}

func (d displayLocator) RowBounds(id int) (int, int, bool) {
	for i, row := range d.session.Rows() {
		if row.Node.ID == id {
			return i, 1, true
		}
	}
	return 0, 0, false
}

type nativeCall struct {
	id   int
	opts ports.ScrollOptions
}

type fakeNative struct {
	calls []nativeCall
}

func (n *fakeNative) ScrollIntoView(id int, opts ports.ScrollOptions) {
	n.calls = append(n.calls, nativeCall{id: id, opts: opts})
}

func sampleTree() *domain.Node {
	return domain.NewFolder(1, "root",
		domain.NewFolder(2, "A",
			domain.NewFile(3, "A-1"),
			domain.NewFile(4, "A-2"),
		),
		domain.NewFolder(5, "B",
			domain.NewFolder(6, "B-1",
				domain.NewFile(7, "B-1-1"),
				domain.NewFile(8, "B-1-2"),
			),
			domain.NewFolder(9, "B-2",
				domain.NewFile(10, "B-2-1"),
				domain.NewFile(11, "B-2-2"),
			),
		),
		domain.NewFolder(12, "Empty"),
	)
}

func rowIDs(rows []DisplayRow) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Node.ID
	}
	return out
}
